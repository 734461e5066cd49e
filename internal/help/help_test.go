package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/uiscroll/internal/keymap"
	"github.com/stretchr/testify/assert"
)

func TestMakeHelp(t *testing.T) {
	h := MakeHelp(keymap.DefaultKeyMap(), lipgloss.NewStyle())
	for _, desc := range []string{"quit", "reload at index", "remove first visible item", "pgdn"} {
		assert.Contains(t, h, desc)
	}
}

func TestFormatKeyBindings_Columns(t *testing.T) {
	var bindings []key.Binding
	for _, k := range []string{"a", "b", "c"} {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, "press "+k)))
	}
	res := formatKeyBindings(bindings, 2, lipgloss.NewStyle())
	lines := strings.Split(res, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "press a")
	assert.Contains(t, lines[0], "press c")
	assert.Contains(t, lines[1], "press b")
	assert.Empty(t, formatKeyBindings(nil, 2, lipgloss.NewStyle()))
}
