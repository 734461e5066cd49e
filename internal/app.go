package internal

// NOTE: Searching for `// #` will walk you through the main flow of the application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/muesli/reflow/wrap"
	"github.com/robinovitch61/uiscroll/internal/command"
	"github.com/robinovitch61/uiscroll/internal/constants"
	"github.com/robinovitch61/uiscroll/internal/dev"
	"github.com/robinovitch61/uiscroll/internal/eventbus"
	"github.com/robinovitch61/uiscroll/internal/fileio"
	"github.com/robinovitch61/uiscroll/internal/filter"
	"github.com/robinovitch61/uiscroll/internal/help"
	"github.com/robinovitch61/uiscroll/internal/keymap"
	"github.com/robinovitch61/uiscroll/internal/message"
	"github.com/robinovitch61/uiscroll/internal/prompt"
	"github.com/robinovitch61/uiscroll/internal/scroll"
	"github.com/robinovitch61/uiscroll/internal/style"
	"github.com/robinovitch61/uiscroll/internal/toast"
	"github.com/robinovitch61/uiscroll/internal/util"
	"github.com/robinovitch61/uiscroll/internal/viewport"
)

// topBarHeight and filterHeight are the single lines above and below the viewport
const (
	topBarHeight = 1
	filterHeight = 1
)

type Model struct {
	config            Config
	keyMap            keymap.KeyMap
	width, height     int
	initialized       bool
	toast             toast.Model
	prompt            prompt.Model
	whenPromptConfirm func(Model) (Model, tea.Cmd)
	filter            filter.Model
	err               error
	helpText          string
	footerHidden      bool

	viewport     *viewport.Model[string]
	workflow     *scroll.Workflow[string]
	snapshot     scroll.Snapshot
	lastRendered time.Time
	added        int

	bus         *eventbus.Bus
	events      chan eventbus.Event
	unsubscribe []func()
	cancel      context.CancelFunc
	stopped     <-chan struct{}
	closeSource func() error
	log         logr.Logger
	flushLog    func()
}

func InitialModel(c Config) Model {
	return Model{
		config:   c,
		keyMap:   c.KeyMap,
		log:      logr.Discard(),
		flushLog: func() {},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	dev.DebugUpdateMsg("App", msg)
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case message.CleanupCompleteMsg:
		m.cleanup()
		return m, tea.Quit

	// #3: The user presses a key. Scrolling keys go to the viewport, everything else drives the workflow
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if m.initialized && m.err == nil {
			return m, m.viewport.Update(msg)
		}
		return m, nil

	case message.ErrMsg:
		m.err = msg.Err
		return m, nil

	// #1: WindowSizeMsg arrives once on startup, then again every time the window is resized. The first one builds
	// the viewport, starts the workflow, and starts listening for engine events
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.initialized {
			var err error
			m, cmd, err = initializedModel(m)
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, cmd
		}
		return m.handleWindowSizeMsg()

	// #4: The user scrolled. The workflow works out the direction and loads what is missing
	case message.ScrolledMsg:
		m.workflow.Scroll()
		return m, nil

	// #2: The workflow published an event. Refresh the status and listen for the next one
	case message.EngineEventMsg:
		m, cmd = m.handleEngineEvent(msg.Event)
		cmds = append(cmds, cmd, command.WaitForEngineEventCmd(m.events))
		return m, tea.Batch(cmds...)

	case message.EngineStoppedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, scroll.ErrDisposed) && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		return m, nil

	case message.TickMsg:
		return m, tea.Tick(constants.StatusRefreshInterval, func(time.Time) tea.Msg { return message.TickMsg{} })

	case fileio.SaveCompleteMsg:
		toastMsg := msg.SuccessMessage
		if toastMsg == "" {
			toastMsg = msg.ErrMessage
		}
		return m.withToast(toastMsg)

	case command.ItemsCopiedMsg:
		toastMsg := fmt.Sprintf("Copied %d visible lines to clipboard", msg.Count)
		if msg.Err != nil {
			toastMsg = fmt.Sprintf("Error copying to clipboard: %s", msg.Err.Error())
		}
		return m.withToast(toastMsg)

	case toast.TimeoutMsg:
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd
	}

	if m.filter.Focused() {
		m.filter, cmd = m.filter.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil {
		errString := wrap.String(m.err.Error(), max(1, m.width))
		return lipgloss.JoinVertical(
			lipgloss.Left,
			style.ErrorStyle.Render("Error"),
			"",
			fmt.Sprintf("%s to quit", m.keyMap.Quit.Help().Key),
			"",
			errString,
		)
	}
	if !m.initialized {
		return ""
	}
	topBar := m.topBar()
	if m.helpText != "" {
		centeredHelp := lipgloss.Place(m.width, m.height-topBarHeight, lipgloss.Center, lipgloss.Center, m.helpText)
		return lipgloss.JoinVertical(lipgloss.Left, topBar, centeredHelp)
	}
	if m.prompt.Visible {
		return lipgloss.JoinVertical(lipgloss.Left, topBar, m.prompt.View())
	}
	viewLines := strings.Split(topBar, "\n")
	viewLines = append(viewLines, strings.Split(m.viewport.View(), "\n")...)
	viewLines = append(viewLines, m.filter.View())
	if toastHeight := m.toast.ViewHeight(); m.toast.Visible && toastHeight > 0 && toastHeight < len(viewLines) {
		viewLines = viewLines[:len(viewLines)-toastHeight]
		viewLines = append(viewLines, strings.Split(m.toast.View(), "\n")...)
	}
	return strings.Join(viewLines, "\n")
}

func (m Model) topBar() string {
	padding := "   "
	snap := m.snapshot

	left := fmt.Sprintf("uiscroll %s%s%s%s%s", m.config.Version, padding, m.config.Source, padding, snap.State)
	if snap.Cycle > 0 {
		left += fmt.Sprintf(" #%d", snap.Cycle)
	}
	if snap.Items > 0 {
		left += fmt.Sprintf("%s%d items [%d..%d]", padding, snap.Items, snap.MinIndex, snap.MaxIndex)
	} else {
		left += padding + "no items"
	}
	if snap.Visible {
		left += fmt.Sprintf("%sviewing %d-%d", padding, snap.FirstVisible, snap.LastVisible)
	}
	var edges []string
	if snap.BOF {
		edges = append(edges, "BOF")
	}
	if snap.EOF {
		edges = append(edges, "EOF")
	}
	if len(edges) > 0 {
		left += padding + strings.Join(edges, "/")
	}
	if !m.lastRendered.IsZero() {
		left += fmt.Sprintf("%srendered %s ago", padding, util.TimeSince(m.lastRendered))
	}
	if snap.Loading {
		left += padding + style.LoadingStyle.Render("[LOADING]")
	}
	if snap.Paused {
		left += padding + style.PausedStyle.Render("[PAUSED]")
	}

	right := fmt.Sprintf("%s to quit / %s for help", m.keyMap.Quit.Help().Key, m.keyMap.Help.Help().Key)
	toJoin := []string{left}
	if lipgloss.Width(left)+len(padding)+len(right) < m.width {
		toJoin = append(toJoin, right)
	}
	return style.StatusBarStyle.Render(util.JoinWithEqualSpacing(m.width, toJoin...))
}

func (m Model) contentHeight() int {
	return max(0, m.height-topBarHeight-filterHeight)
}

func (m Model) handleWindowSizeMsg() (Model, tea.Cmd) {
	m.viewport.SetWidthHeight(m.width, m.contentHeight())
	m.prompt.SetWidthAndHeight(m.width, m.height-topBarHeight)
	// a bigger viewport may need more items
	m.workflow.Check()
	return m, nil
}

func (m Model) handleEngineEvent(e eventbus.Event) (Model, tea.Cmd) {
	m.snapshot = m.workflow.Snapshot()
	switch e := e.(type) {
	case scroll.RenderedEvent:
		m.lastRendered = time.Now()
	case scroll.FetchFailedEvent:
		return m.withToast(fmt.Sprintf("Loading failed, %s to retry: %v", m.keyMap.Check.Help().Key, e.Err))
	case scroll.HaltedEvent:
		m.err = e.Err
	}
	return m, nil
}

func (m Model) withToast(text string) (Model, tea.Cmd) {
	m.toast = toast.New(text, style.ToastStyle)
	return m, m.toast.Timeout(constants.ToastDuration)
}

// #5: After a long and prosperous scrolling session, the user quits. The workflow is disposed before exiting
func (m Model) cleanupCmd() tea.Cmd {
	if m.workflow == nil {
		return tea.Quit
	}
	wf, cancel := m.workflow, m.cancel
	return command.CleanupCmd(func() {
		wf.Dispose()
		cancel()
	}, m.stopped, constants.ShutdownTimeout)
}

func (m Model) cleanup() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	if m.bus != nil {
		m.bus.Close()
	}
	if m.closeSource != nil {
		if err := m.closeSource(); err != nil {
			dev.Debug(fmt.Sprintf("closing source: %v", err))
		}
	}
	m.flushLog()
}

// tea.KeyMsg handling
// ---

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	dev.Debug(fmt.Sprintf("App keyMsg: %v", msg))
	defer dev.Debug("App keyMsg complete")

	// typing into the filter must not trigger single key bindings like quit
	if m.filter.Focused() {
		if msg.Type == tea.KeyCtrlC {
			return m, m.cleanupCmd()
		}
		return m.handleFilterKeyMsg(msg)
	}

	if key.Matches(msg, m.keyMap.Quit) {
		return m, m.cleanupCmd()
	}

	// ignore key messages other than exit if an error is present
	if m.err != nil || !m.initialized {
		return m, nil
	}

	// if help text visible, pressing any key will dismiss it
	if m.helpText != "" {
		m.helpText = ""
		return m, nil
	}

	// if prompt is visible, only allow prompt actions
	if m.prompt.Visible {
		return m.handlePromptKeyMsg(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.helpText = help.MakeHelp(m.keyMap, style.KeyHelpStyle)

	case key.Matches(msg, m.keyMap.TogglePause):
		if m.workflow.Snapshot().Paused {
			m.workflow.Resume()
		} else {
			m.workflow.Pause()
		}

	case key.Matches(msg, m.keyMap.Check):
		m.workflow.Check()

	case key.Matches(msg, m.keyMap.Reload):
		items := m.workflow.Snapshot().Items
		if items == 0 {
			m.workflow.Reload()
			return m, nil
		}
		return m.promptToConfirm(
			[]string{
				fmt.Sprintf("Reload from index %d?", m.config.Settings.StartIndex),
				fmt.Sprintf("%d loaded items will be discarded", items),
			},
			"RELOAD",
			func(m Model) (Model, tea.Cmd) {
				m.workflow.Reload()
				return m, nil
			},
		)

	case key.Matches(msg, m.keyMap.Goto):
		m.filter.Focus(filter.ModeGoto)

	case key.Matches(msg, m.keyMap.Remove):
		m.filter.Focus(filter.ModeRemove)

	case key.Matches(msg, m.keyMap.RemoveRegex):
		m.filter.Focus(filter.ModeRemoveRegex)

	case key.Matches(msg, m.keyMap.Append):
		var data []string
		data, m.added = generated(m.added, "appended")
		m.workflow.Append(data...)

	case key.Matches(msg, m.keyMap.Prepend):
		var data []string
		data, m.added = generated(m.added, "prepended")
		m.workflow.Prepend(data...)

	case key.Matches(msg, m.keyMap.RemoveFirst):
		snap := m.workflow.Snapshot()
		if !snap.Visible {
			return m, nil
		}
		first := snap.FirstVisible
		m.workflow.Remove(func(item scroll.Item[string]) bool { return item.Index == first })

	case key.Matches(msg, m.keyMap.Clip):
		m.workflow.Clip()

	case key.Matches(msg, m.keyMap.Copy):
		var lines []string
		for _, line := range strings.Split(m.viewport.VisibleText(), "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		return m, command.CopyItemsCmd(lines)

	case key.Matches(msg, m.keyMap.Save):
		return m, fileio.GetSaveCommand("", m.viewport.Lines())

	case key.Matches(msg, m.keyMap.ToggleFooter):
		m.footerHidden = !m.footerHidden
		m.viewport.SetFooterEnabled(!m.footerHidden)
		m.workflow.Check()

	default:
		return m, m.viewport.Update(msg)
	}
	return m, nil
}

func (m Model) handleFilterKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.filter.KeyMap.Back):
		m.filter.BlurAndClear()
		return m, nil

	case key.Matches(msg, m.filter.KeyMap.Forward):
		applied := m.filter
		m.filter.BlurAndClear()
		return m.applyFilter(applied)
	}
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) applyFilter(f filter.Model) (Model, tea.Cmd) {
	switch f.Mode() {
	case filter.ModeGoto:
		index, err := f.Index()
		if err == nil {
			err = m.workflow.ReloadAt(index)
		}
		if err != nil {
			return m.withToast(err.Error())
		}
	case filter.ModeRemove, filter.ModeRemoveRegex:
		if f.Value() == "" {
			return m, nil
		}
		m.workflow.Remove(func(item scroll.Item[string]) bool { return f.Matches(item.Data) })
	}
	return m, nil
}

func (m Model) promptToConfirm(text []string, action string, onConfirm func(Model) (Model, tea.Cmd)) (Model, tea.Cmd) {
	m.prompt = prompt.New(m.width, m.height-topBarHeight, text, action, prompt.Styles{
		Option:   style.ModalOptionStyle,
		Selected: style.ModalSelectedStyle,
	})
	m.whenPromptConfirm = onConfirm
	return m, nil
}

func (m Model) handlePromptKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keyMap.Enter):
		m.prompt.Visible = false
		if m.prompt.Confirmed() && m.whenPromptConfirm != nil {
			onConfirm := m.whenPromptConfirm
			m.whenPromptConfirm = nil
			return onConfirm(m)
		}
		m.whenPromptConfirm = nil
		return m, nil
	case key.Matches(msg, m.keyMap.Clear):
		m.prompt.Visible = false
		m.whenPromptConfirm = nil
		return m, nil
	}
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// generated returns a batch of new items labelled by kind, numbered after the n items generated before
func generated(n int, kind string) ([]string, int) {
	data := make([]string, constants.AppendBatchSize)
	for i := range data {
		n++
		data[i] = fmt.Sprintf("%s %d", kind, n)
	}
	return data, n
}
