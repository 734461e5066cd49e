package viewport

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/robinovitch61/uiscroll/internal/dev"
	"github.com/robinovitch61/uiscroll/internal/message"
	"github.com/robinovitch61/uiscroll/internal/scroll"
)

// Terminology:
// - element: the rendered form of one item, a block of one or more lines
// - offset: the scroll position along the axis, in lines when vertical and columns when horizontal
// - xOffset: the number of columns panned right when vertical and lines overflow the viewport
//
// vertical:
//                     element   offset
// first item line 1   0         0
// first item line 2   0         1
// second item         1         2
//
// horizontal, each element followed by a one column gap:
// first  second third
// line 2 line 2
//
// offset 0 is column 0, offset 7 is the start of "second"

var errUnknownElement = errors.New("element is not in the viewport")

// Element is a rendered item, laid out as a block of lines
type Element struct {
	lines  []string
	width  int
	height int
}

func newElement(content string, horizontal bool) *Element {
	e := &Element{lines: strings.Split(content, "\n")}
	for _, line := range e.lines {
		e.width = max(e.width, runewidth.StringWidth(line))
	}
	e.height = len(e.lines)
	if horizontal {
		e.width++
	}
	return e
}

// Dimensions returns the width and height of the element in terminal cells
func (e *Element) Dimensions() (int, int) {
	return e.width, e.height
}

// Lines returns the rendered lines of the element
func (e *Element) Lines() []string {
	return e.lines
}

// Model is a terminal viewport the scroll engine renders into. The engine and the bubbletea program touch it from
// different goroutines, so all state is guarded
type Model[T any] struct {
	FooterStyle lipgloss.Style

	mu sync.RWMutex

	keyMap KeyMap

	// render turns an item into the text of its element
	render func(scroll.Item[T]) string

	elements []*Element

	// horizontal lays elements out left to right instead of top to bottom
	horizontal bool

	// continuationIndicator is the string to use to indicate that a line has been truncated from the left or right
	continuationIndicator string

	// footerEnabled reserves the last line for the position footer
	footerEnabled bool

	// width is the width of the entire viewport in terminal columns
	width int

	// height is the height of the entire viewport in lines, including the footer
	height int

	offset int

	xOffset int
}

// New creates a new viewport model with reasonable defaults
func New[T any](width, height int, keyMap KeyMap, render func(scroll.Item[T]) string) *Model[T] {
	m := &Model[T]{
		FooterStyle:           lipgloss.NewStyle(),
		keyMap:                keyMap,
		render:                render,
		continuationIndicator: "...",
		footerEnabled:         true,
	}
	m.setWidthHeight(width, height)
	return m
}

// Update processes messages, returning a command that reports the new offset if the user scrolled
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	dev.DebugUpdateMsg("Viewport", msg)

	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.offset

	switch msg := msg.(type) {
	case tea.KeyMsg:
		page := m.axisSize()
		switch {
		case key.Matches(msg, m.keyMap.Up):
			m.scrollBy(-1)

		case key.Matches(msg, m.keyMap.Down):
			m.scrollBy(1)

		case key.Matches(msg, m.keyMap.Left):
			if m.horizontal {
				m.scrollBy(-max(1, m.width/4))
			} else {
				m.pan(-max(1, m.width/4))
			}

		case key.Matches(msg, m.keyMap.Right):
			if m.horizontal {
				m.scrollBy(max(1, m.width/4))
			} else {
				m.pan(max(1, m.width/4))
			}

		case key.Matches(msg, m.keyMap.HalfPageUp):
			m.scrollBy(-max(1, page/2))

		case key.Matches(msg, m.keyMap.HalfPageDown):
			m.scrollBy(max(1, page/2))

		case key.Matches(msg, m.keyMap.PageUp):
			m.scrollBy(-max(1, page))

		case key.Matches(msg, m.keyMap.PageDown):
			m.scrollBy(max(1, page))

		case key.Matches(msg, m.keyMap.Top):
			m.offset = 0

		case key.Matches(msg, m.keyMap.Bottom):
			m.offset = m.maxOffset()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
		case tea.MouseButtonWheelLeft:
			if !m.horizontal {
				m.pan(-3)
			}
		case tea.MouseButtonWheelRight:
			if !m.horizontal {
				m.pan(3)
			}
		}
	}

	if m.offset == prev {
		return nil
	}
	offset := m.offset
	return func() tea.Msg {
		return message.ScrolledMsg{Offset: offset}
	}
}

// View renders the viewport
func (m *Model[T]) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lines := m.visibleLines()
	if m.footerEnabled && m.height > 0 {
		for len(lines) < m.contentHeight() {
			lines = append(lines, "")
		}
		lines = append(lines, m.footer())
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(strings.Join(lines, "\n"))
}

// VisibleText returns the content currently in view, without the footer
func (m *Model[T]) VisibleText() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return strings.Join(m.visibleLines(), "\n")
}

// Lines returns every rendered line in display order. Horizontal elements are returned one after another
func (m *Model[T]) Lines() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []string
	for _, e := range m.elements {
		res = append(res, e.lines...)
	}
	return res
}

func (m *Model[T]) SetKeyMap(keyMap KeyMap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyMap = keyMap
}

// SetHorizontal lays elements out left to right. Must be called before any element is inserted
func (m *Model[T]) SetHorizontal(horizontal bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.horizontal = horizontal
	m.xOffset = 0
}

// SetFooterEnabled sets whether the viewport reserves its last line for the footer
func (m *Model[T]) SetFooterEnabled(footerEnabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.footerEnabled = footerEnabled
}

// SetWidthHeight sets the viewport's dimensions, including the footer
func (m *Model[T]) SetWidthHeight(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setWidthHeight(width, height)
}

// ScrollOffset returns the scroll position along the axis
func (m *Model[T]) ScrollOffset() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offset
}

// SetScrollOffset moves the scroll position without clamping it to the content, which may not be rendered yet
func (m *Model[T]) SetScrollOffset(offset int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = max(0, offset)
}

// Size returns the dimensions of the content area
func (m *Model[T]) Size() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.width, m.contentHeight()
}

// Elements returns the rendered elements in display order
func (m *Model[T]) Elements() []scroll.Element {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]scroll.Element, len(m.elements))
	for i, e := range m.elements {
		res[i] = e
	}
	return res
}

// InsertElement renders item and inserts it at position pos
func (m *Model[T]) InsertElement(pos int, item scroll.Item[T]) (scroll.Element, error) {
	content := m.render(item)
	m.mu.Lock()
	defer m.mu.Unlock()
	if pos < 0 || pos > len(m.elements) {
		return nil, fmt.Errorf("insert position %d outside 0..%d", pos, len(m.elements))
	}
	e := newElement(content, m.horizontal)
	m.elements = slices.Insert(m.elements, pos, e)
	return e, nil
}

// RemoveElement removes a previously inserted element
func (m *Model[T]) RemoveElement(el scroll.Element) error {
	e, ok := el.(*Element)
	if !ok {
		return fmt.Errorf("%w: %T", errUnknownElement, el)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.elements, e)
	if i < 0 {
		return errUnknownElement
	}
	m.elements = slices.Delete(m.elements, i, i+1)
	m.xOffset = clampValMinMax(m.xOffset, 0, m.maxXOffset())
	return nil
}

func (m *Model[T]) setWidthHeight(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)
}

func (m *Model[T]) contentHeight() int {
	if m.footerEnabled {
		return max(0, m.height-1)
	}
	return m.height
}

func (m *Model[T]) axisSize() int {
	if m.horizontal {
		return m.width
	}
	return m.contentHeight()
}

func (m *Model[T]) extent() int {
	n := 0
	for _, e := range m.elements {
		if m.horizontal {
			n += e.width
		} else {
			n += e.height
		}
	}
	return n
}

func (m *Model[T]) maxOffset() int {
	return max(0, m.extent()-m.axisSize())
}

func (m *Model[T]) maxXOffset() int {
	if m.horizontal {
		return 0
	}
	widest := 0
	for _, e := range m.elements {
		widest = max(widest, e.width)
	}
	return max(0, widest-m.width)
}

// scrollBy moves the offset by n, clamped to the rendered content. An offset already past the content, e.g. while a
// page is loading, does not move further
func (m *Model[T]) scrollBy(n int) {
	m.offset = clampValMinMax(m.offset+n, 0, max(m.offset, m.maxOffset()))
}

func (m *Model[T]) pan(n int) {
	m.xOffset = clampValMinMax(m.xOffset+n, 0, m.maxXOffset())
}

func (m *Model[T]) visibleLines() []string {
	height := m.contentHeight()
	if height == 0 || m.width == 0 {
		return nil
	}
	if m.horizontal {
		return m.visibleColumns(height)
	}

	var res []string
	pos := 0
	for _, e := range m.elements {
		if pos+e.height <= m.offset {
			pos += e.height
			continue
		}
		for _, line := range e.lines {
			if pos >= m.offset && pos < m.offset+height {
				res = append(res, truncate(line, m.xOffset, m.width, m.continuationIndicator))
			}
			pos++
		}
		if pos >= m.offset+height {
			break
		}
	}
	return res
}

func (m *Model[T]) visibleColumns(height int) []string {
	rows := make([]strings.Builder, height)
	pos := 0
	for _, e := range m.elements {
		if pos+e.width <= m.offset {
			pos += e.width
			continue
		}
		if pos >= m.offset+m.width {
			break
		}
		for r := range rows {
			line := ""
			if r < len(e.lines) {
				line = e.lines[r]
			}
			rows[r].WriteString(line)
			rows[r].WriteString(strings.Repeat(" ", e.width-runewidth.StringWidth(line)))
		}
		pos += e.width
	}

	// rows start at the first element intersecting the view
	skip := m.offset - m.firstColumnStart()
	res := make([]string, height)
	for r := range rows {
		res[r] = strings.TrimRight(take(rows[r].String(), skip, m.width), " ")
	}
	return res
}

func (m *Model[T]) firstColumnStart() int {
	pos := 0
	for _, e := range m.elements {
		if pos+e.width > m.offset {
			return pos
		}
		pos += e.width
	}
	return pos
}

// footer shows the position of the last visible element among the rendered ones, e.g. "50% (5/10)"
func (m *Model[T]) footer() string {
	if len(m.elements) == 0 || m.extent() <= m.axisSize() {
		return ""
	}
	numerator := 0
	pos := 0
	end := m.offset + m.axisSize()
	for i, e := range m.elements {
		if pos >= end {
			break
		}
		numerator = i + 1
		if m.horizontal {
			pos += e.width
		} else {
			pos += e.height
		}
	}
	denominator := len(m.elements)
	footerString := fmt.Sprintf("%d%% (%d/%d)", percent(numerator, denominator), numerator, denominator)
	return m.FooterStyle.Render(truncate(footerString, 0, m.width, m.continuationIndicator))
}
