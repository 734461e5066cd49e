package help

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/uiscroll/internal/keymap"
)

const (
	rowsPerColumn = 10
	columnGap     = "   "
)

// MakeHelp lays out every described key binding in columns of at most rowsPerColumn rows
func MakeHelp(keyMap keymap.KeyMap, keyStyle lipgloss.Style) string {
	title := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Render("uiscroll keys (press any key to close)")
	return lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		formatKeyBindings(keymap.DescriptiveKeyBindings(keyMap), rowsPerColumn, keyStyle),
	)
}

func formatKeyBindings(bindings []key.Binding, rows int, keyStyle lipgloss.Style) string {
	var columns []string
	for start := 0; start < len(bindings); start += rows {
		if start > 0 {
			columns = append(columns, columnGap)
		}
		columns = append(columns, formatColumn(bindings[start:min(start+rows, len(bindings))], keyStyle))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// formatColumn right-aligns the keys next to their left-aligned descriptions
func formatColumn(bindings []key.Binding, keyStyle lipgloss.Style) string {
	keys := make([]string, len(bindings))
	descs := make([]string, len(bindings))
	for i, b := range bindings {
		if k := b.Help().Key; k != "" {
			keys[i] = " " + k + " "
		}
		if d := b.Help().Desc; d != "" {
			descs[i] = " " + d
		}
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		keyStyle.Render(lipgloss.JoinVertical(lipgloss.Right, keys...)),
		lipgloss.JoinVertical(lipgloss.Left, descs...),
	)
}
