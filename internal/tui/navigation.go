package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/state"
)

type tab struct {
	label string
	route router.Route
}

var tabs = []tab{
	{label: "Home", route: router.Home(hnapi.SectionHome)},
	{label: "Ask HN", route: router.Home(hnapi.SectionAsk)},
	{label: "Show HN", route: router.Home(hnapi.SectionShow)},
	{label: "Jobs", route: router.Home(hnapi.SectionJobs)},
	{label: "Search", route: router.Search()},
	{label: "Settings", route: router.Settings()},
	{label: "Help", route: router.Help()},
}

// tabIndex returns the tab matching route, or -1.
func tabIndex(route router.Route) int {
	for i, t := range tabs {
		if t.route.Kind != route.Kind {
			continue
		}
		if route.IsHome() && t.route.Section != route.Section {
			continue
		}
		return i
	}
	return -1
}

// navigationComponent is the tab bar. On Home, left and right move between
// sections; the other tabs are pushed on top.
type navigationComponent struct {
	env       *env
	debouncer *input.Debouncer
}

func newNavigationComponent(e *env) *navigationComponent {
	return &navigationComponent{env: e, debouncer: input.NewDebouncer(inputDebounceTicks)}
}

func (c *navigationComponent) ID() state.ComponentID { return idNavigation }

func (c *navigationComponent) ShouldUpdate(_ *state.State, elapsed int) bool {
	c.debouncer.Tick(elapsed)
	return false
}

func (c *navigationComponent) Update(*state.State) tea.Cmd { return nil }

func (c *navigationComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := c.env.keys
	left, right := keys.Is(msg, input.NavigateLeft), keys.Is(msg, input.NavigateRight)
	if !c.env.nav.IsOnRootScreen() || (!left && !right) {
		c.debouncer.Release()
		return false, nil
	}
	if !c.debouncer.IsActionAllowed() {
		return true, nil
	}

	i := tabIndex(c.env.nav.Current())
	if left {
		i = (i - 1 + len(tabs)) % len(tabs)
	} else {
		i = (i + 1) % len(tabs)
	}
	next := tabs[i].route
	if next.IsHome() {
		st.SetSection(next.Section)
		c.env.nav.Replace(next)
	} else {
		c.env.nav.Push(next)
	}
	return true, nil
}

func (c *navigationComponent) Render(_ *state.State, width, _ int) string {
	current := tabIndex(c.env.nav.Current())
	parts := []string{LogoStyle.Render(CompactLogo) + " "}
	for i, t := range tabs {
		if i == current {
			parts = append(parts, ActiveTabStyle.Render(t.label))
		} else {
			parts = append(parts, TabStyle.Render(t.label))
		}
	}
	return truncateEnd(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width)
}
