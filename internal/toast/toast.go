package toast

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/uiscroll/internal/dev"
)

var lastID atomic.Int64

// TimeoutMsg hides the toast with the same ID
type TimeoutMsg struct {
	ID int64
}

// Model is a short message shown over the bottom of the screen until it times out. A newer toast replaces an older
// one, so each carries an ID and only its own timeout hides it
type Model struct {
	ID      int64
	Visible bool
	message string
	style   lipgloss.Style
}

func New(message string, style lipgloss.Style) Model {
	return Model{
		ID:      lastID.Add(1),
		Visible: true,
		message: message,
		style:   style,
	}
}

// Timeout returns a command hiding this toast after d
func (m Model) Timeout(d time.Duration) tea.Cmd {
	id := m.ID
	return tea.Tick(d, func(time.Time) tea.Msg { return TimeoutMsg{ID: id} })
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Toast", msg)
	if msg, ok := msg.(TimeoutMsg); ok && msg.ID == m.ID {
		m.Visible = false
	}
	return m, nil
}

func (m Model) View() string {
	if !m.Visible {
		return ""
	}
	return m.style.Render(m.message)
}

func (m Model) ViewHeight() int {
	if !m.Visible {
		return 0
	}
	return lipgloss.Height(m.View())
}
