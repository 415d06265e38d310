package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/state"
)

// Key groups shown on the help screens, one column each.
var (
	helpGroups = [][]input.Action{
		{input.NavigateUp, input.NavigateDown, input.NavigateLeft, input.NavigateRight},
		{input.SelectItem, input.ExpandComment, input.Back, input.ToggleComments, input.ToggleSorting},
		{input.OpenLink, input.OpenHackerNewsLink, input.CopyLink, input.ViewUserProfile, input.Refresh},
		{input.ToggleHelp, input.Quit, input.ForceQuit},
	}
	searchHelpGroups = [][]input.Action{
		{input.NavigateUp, input.NavigateDown, input.NavigateLeft, input.NavigateRight},
		{input.ToggleFocusResults, input.OpenLink, input.OpenHackerNewsLink, input.CopyLink},
		{input.ToggleHelp, input.Back, input.ForceQuit},
	}
)

// helpComponent lists key bindings in a scrollable viewport.
type helpComponent struct {
	env    *env
	title  string
	groups [][]input.Action
	help   help.Model
	vp     viewport.Model
}

func newHelpComponent(e *env, title string, groups [][]input.Action) *helpComponent {
	h := help.New()
	h.ShowAll = true
	return &helpComponent{env: e, title: title, groups: groups, help: h, vp: viewport.New(0, 0)}
}

func (c *helpComponent) ID() state.ComponentID { return idHelp }

func (c *helpComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *helpComponent) Update(*state.State) tea.Cmd { return nil }

func (c *helpComponent) HandleInput(_ *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case c.env.keys.Is(msg, input.NavigateUp):
		c.vp.LineUp(1)
	case c.env.keys.Is(msg, input.NavigateDown):
		c.vp.LineDown(1)
	default:
		return false, nil
	}
	return true, nil
}

func (c *helpComponent) bindings() [][]key.Binding {
	groups := make([][]key.Binding, len(c.groups))
	for i, g := range c.groups {
		groups[i] = c.env.keys.Bindings(g...)
	}
	return groups
}

func (c *helpComponent) Render(_ *state.State, width, height int) string {
	c.help.Width = width - 4
	content := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(c.title, "esc goes back", width-4),
		"",
		c.help.FullHelpView(c.bindings()),
	)
	c.vp.Width, c.vp.Height = max(width-4, 1), max(height-2, 1)
	c.vp.SetContent(content)
	return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(c.vp.View()), true, width, height)
}
