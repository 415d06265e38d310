// Package input maps key events to application actions.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Action int

const (
	OpenLink Action = iota
	OpenHackerNewsLink
	CopyLink
	SelectItem
	ToggleHelp
	Back
	Quit
	ForceQuit
	NavigateUp
	NavigateDown
	NavigateLeft
	NavigateRight
	ToggleSorting
	ToggleComments
	ExpandComment
	ViewUserProfile
	ToggleControl
	Refresh
	ToggleFocusResults
)

// KeyMap binds every action. The bindings double as entries of the help bar.
type KeyMap struct {
	bindings map[Action]key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{bindings: map[Action]key.Binding{
		OpenLink:           key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		OpenHackerNewsLink: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open on HN")),
		CopyLink:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		SelectItem:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		ToggleHelp:         key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Back:               key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:               key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
		NavigateUp:         key.NewBinding(key.WithKeys("up", "i"), key.WithHelp("↑/i", "up")),
		NavigateDown:       key.NewBinding(key.WithKeys("down", "k"), key.WithHelp("↓/k", "down")),
		NavigateLeft:       key.NewBinding(key.WithKeys("left", "j"), key.WithHelp("←/j", "left")),
		NavigateRight:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		ToggleSorting:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sorting")),
		ToggleComments:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "comments")),
		ExpandComment:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "replies")),
		ViewUserProfile:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "author")),
		ToggleControl:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		Refresh:            key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ToggleFocusResults: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "focus results")),
	}}
}

// Is reports whether msg triggers action.
func (k KeyMap) Is(msg tea.KeyMsg, action Action) bool {
	b, ok := k.bindings[action]
	return ok && key.Matches(msg, b)
}

// Binding returns the binding of action.
func (k KeyMap) Binding(action Action) key.Binding {
	return k.bindings[action]
}

// Bindings returns the bindings of actions, in order, for help rendering.
func (k KeyMap) Bindings(actions ...Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		if b, ok := k.bindings[a]; ok {
			out = append(out, b)
		}
	}
	return out
}

// IsTextKey reports whether msg inserts text, so typing into an input is
// not mistaken for a shortcut.
func IsTextKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}
