package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/state"
)

// footerComponent is the bottom line: the flash message while visible,
// otherwise the contextual help of the screen.
type footerComponent struct {
	env      *env
	help     help.Model
	bindings []key.Binding
}

func newFooterComponent(e *env, actions ...input.Action) *footerComponent {
	return &footerComponent{env: e, help: help.New(), bindings: e.keys.Bindings(actions...)}
}

func (c *footerComponent) ID() state.ComponentID { return idFooter }

func (c *footerComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *footerComponent) Update(*state.State) tea.Cmd { return nil }

func (c *footerComponent) HandleInput(*state.State, tea.KeyMsg) (bool, tea.Cmd) {
	return false, nil
}

func (c *footerComponent) Render(st *state.State, width, _ int) string {
	if msg, ok := st.Flash(); ok {
		return FlashStyle.Render(truncateEnd(msg, width-2))
	}
	if c.env.Config != nil && !c.env.Config.UI.ShowContextualHelp {
		return ""
	}
	c.help.Width = width - 1
	return " " + c.help.ShortHelpView(c.bindings)
}
