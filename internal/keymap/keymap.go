package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/robinovitch61/uiscroll/internal/viewport"
)

type KeyMap struct {
	Append       key.Binding
	Check        key.Binding
	Clear        key.Binding
	Clip         key.Binding
	Copy         key.Binding
	Enter        key.Binding
	Goto         key.Binding
	Help         key.Binding
	Prepend      key.Binding
	Quit         key.Binding
	Reload       key.Binding
	Remove       key.Binding
	RemoveFirst  key.Binding
	RemoveRegex  key.Binding
	Save         key.Binding
	TogglePause  key.Binding
	ToggleFooter key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append items"),
		),
		Check: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "check for more items"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard input"),
		),
		Clip: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clip offscreen items"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy visible items"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply input"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "reload at index"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "show/hide help"),
		),
		Prepend: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "prepend items"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload from start index"),
		),
		Remove: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "remove matching items"),
		),
		RemoveFirst: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove first visible item"),
		),
		RemoveRegex: key.NewBinding(
			key.WithKeys("\\"),
			key.WithHelp("\\", "remove items matching regex"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save loaded items to file"),
		),
		TogglePause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/resume loading"),
		),
		ToggleFooter: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "show/hide footer"),
		),
	}
}

// DescriptiveKeyBindings lists every binding worth showing in help, in display order
func DescriptiveKeyBindings(km KeyMap) []key.Binding {
	vp := viewport.DefaultKeyMap()
	return []key.Binding{
		vp.Up,
		vp.Down,
		vp.Left,
		vp.Right,
		vp.HalfPageUp,
		vp.HalfPageDown,
		vp.PageUp,
		vp.PageDown,
		vp.Top,
		vp.Bottom,
		km.TogglePause,
		km.Check,
		km.Reload,
		km.Goto,
		km.Append,
		km.Prepend,
		km.RemoveFirst,
		km.Remove,
		km.RemoveRegex,
		km.Clip,
		km.Copy,
		km.Save,
		km.ToggleFooter,
		WithDesc(km.Enter, "apply input / confirm"),
		km.Clear,
		km.Quit,
		km.Help,
	}
}

func WithDesc(k key.Binding, d string) key.Binding {
	newK := k
	newK.SetHelp(newK.Help().Key, d)
	return newK
}
