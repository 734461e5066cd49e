package command

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// ItemsCopiedMsg reports how many items went to the clipboard
type ItemsCopiedMsg struct {
	Count int
	Err   error
}

// CopyItemsCmd writes items to the system clipboard, one per line
func CopyItemsCmd(items []string) tea.Cmd {
	return func() tea.Msg {
		if len(items) == 0 {
			return ItemsCopiedMsg{}
		}
		err := clipboard.WriteAll(strings.Join(items, "\n"))
		return ItemsCopiedMsg{Count: len(items), Err: err}
	}
}
