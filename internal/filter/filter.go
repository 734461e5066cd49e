package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/uiscroll/internal/dev"
	"github.com/robinovitch61/uiscroll/internal/keymap"
	"github.com/robinovitch61/uiscroll/internal/style"
)

// Mode is what the typed text will be applied to
type Mode int

const (
	ModeNone Mode = iota
	// ModeRemove removes loaded items containing the text
	ModeRemove
	// ModeRemoveRegex removes loaded items matching the text as a regular expression
	ModeRemoveRegex
	// ModeGoto reloads the collection at the typed index
	ModeGoto
)

type filterKeyMap struct {
	Forward     key.Binding
	Back        key.Binding
	Remove      key.Binding
	RemoveRegex key.Binding
	Goto        key.Binding
}

// Model is the single line input at the bottom of the app
type Model struct {
	KeyMap    filterKeyMap
	mode      Mode
	regexp    *regexp.Regexp
	textinput textinput.Model
}

func New(km keymap.KeyMap) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorHide)

	return Model{
		KeyMap: filterKeyMap{
			Forward:     km.Enter,
			Back:        km.Clear,
			Remove:      km.Remove,
			RemoveRegex: km.RemoveRegex,
			Goto:        km.Goto,
		},
		textinput: ti,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Filter", msg)
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	m.updateRegexp()
	return m, cmd
}

func (m Model) View() string {
	if !m.textinput.Focused() {
		hint := fmt.Sprintf(
			"'%s' or '%s' to remove matching items, '%s' to go to an index",
			m.KeyMap.Remove.Help().Key,
			m.KeyMap.RemoveRegex.Help().Key,
			m.KeyMap.Goto.Help().Key,
		)
		return style.Regular.PaddingLeft(1).Render(hint)
	}

	m.textinput.PromptStyle = style.Inverse
	m.textinput.TextStyle = style.Inverse
	m.textinput.Cursor.Style = lipgloss.NewStyle()
	m.textinput.Cursor.TextStyle = lipgloss.NewStyle()
	m.textinput.Prompt = m.label()
	return m.textinput.TextStyle.PaddingLeft(1).Render(m.textinput.View())
}

func (m Model) label() string {
	switch m.mode {
	case ModeRemove:
		return "remove matching: "
	case ModeRemoveRegex:
		if m.regexp == nil {
			return "invalid regex: "
		}
		return "remove matching regex: "
	case ModeGoto:
		if _, err := m.Index(); err != nil && m.Value() != "" {
			return "invalid index: "
		}
		return "go to index: "
	}
	return ""
}

// Matches reports whether s should be removed. Nothing matches an empty filter. An invalid regex falls back to
// plain string matching
func (m Model) Matches(s string) bool {
	if m.Value() == "" {
		return false
	}
	if m.mode == ModeRemoveRegex && m.regexp != nil {
		return m.regexp.MatchString(s)
	}
	return strings.Contains(s, m.Value())
}

// Index parses the typed text as an item index
func (m Model) Index() (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(m.Value()))
	if err != nil {
		return 0, fmt.Errorf("%q is not an index: %w", m.Value(), err)
	}
	return i, nil
}

func (m Model) Value() string {
	return m.textinput.Value()
}

func (m Model) Mode() Mode {
	return m.mode
}

func (m Model) Focused() bool {
	return m.textinput.Focused()
}

func (m *Model) SetValue(value string) {
	m.textinput.SetValue(value)
	m.updateRegexp()
}

func (m *Model) Focus(mode Mode) {
	m.mode = mode
	m.updateRegexp()
	m.textinput.Cursor.SetMode(cursor.CursorBlink)
	m.textinput.Focus()
}

func (m *Model) BlurAndClear() {
	m.textinput.Cursor.SetMode(cursor.CursorHide)
	m.textinput.Blur()
	m.textinput.SetValue("")
	m.mode = ModeNone
	m.regexp = nil
}

func (m *Model) updateRegexp() {
	if m.mode != ModeRemoveRegex {
		m.regexp = nil
		return
	}
	regex, err := regexp.Compile(m.textinput.Value())
	if err == nil {
		m.regexp = regex
	} else {
		m.regexp = nil
	}
}
