package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/uiscroll/internal/dev"
)

var (
	toggleKey  = key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l", "tab"))
	confirmKey = key.NewBinding(key.WithKeys("y"))
	cancelKey  = key.NewBinding(key.WithKeys("n"))
)

// Styles renders the two choices
type Styles struct {
	Option   lipgloss.Style
	Selected lipgloss.Style
}

// Model asks the user to confirm a destructive action. Cancel is selected until the user picks the action
type Model struct {
	Visible       bool
	confirmed     bool
	width, height int
	question      []string
	action        string
	styles        Styles
}

// New returns a visible prompt asking question, where action labels the choice that proceeds
func New(width, height int, question []string, action string, styles Styles) Model {
	return Model{
		Visible:  true,
		width:    width,
		height:   height,
		question: question,
		action:   action,
		styles:   styles,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Prompt", msg)
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, toggleKey):
			m.confirmed = !m.confirmed
		case key.Matches(msg, confirmKey):
			m.confirmed = true
		case key.Matches(msg, cancelKey):
			m.confirmed = false
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.Visible {
		return ""
	}
	cancel, proceed := m.styles.Selected.Render("CANCEL"), m.styles.Option.Render(m.action)
	if m.confirmed {
		cancel, proceed = m.styles.Option.Render("CANCEL"), m.styles.Selected.Render(m.action)
	}
	box := lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, m.question...),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, cancel, proceed),
	)
	box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).Render(box)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Confirmed reports whether the action, not cancel, is selected
func (m Model) Confirmed() bool {
	return m.confirmed
}

func (m *Model) SetWidthAndHeight(width, height int) {
	m.width = width
	m.height = height
}
