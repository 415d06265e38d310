package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/state"
)

// tickInterval is the fixed rate of the update loop.
const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// App is the bubbletea model. It owns the state and the router and drives
// the component lifecycle of the current screen.
type App struct {
	env        *env
	state      *state.State
	router     *router.Router[Screen]
	keyHandler *KeyHandler
	width      int
	height     int
	quitting   bool
}

func NewApp(deps Deps) *App {
	a := &App{state: state.New()}
	a.env = &env{
		Deps:     deps,
		keys:     input.DefaultKeyMap(),
		nav:      a,
		markdown: newMarkdownRenderer(),
	}
	if deps.Config != nil {
		a.state.SetCommentsPanelVisible(deps.Config.UI.DisplayCommentsPanelByDefault)
	}
	a.keyHandler = NewKeyHandler(a)
	a.router = router.New[Screen](router.Home(hnapi.SectionHome), a.env.buildScreen, a.state)
	return a
}

func (a *App) Init() tea.Cmd {
	return tick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case tickMsg:
		cmd = tea.Batch(a.onTick(), tick())
	case tea.KeyMsg:
		cmd = a.onKey(msg)
	}
	if a.quitting {
		return a, tea.Quit
	}
	return a, cmd
}

// onTick runs ShouldUpdate and Update for every component of the current
// layout. A component that swapped the screen ends the round.
func (a *App) onTick() tea.Cmd {
	a.env.ticks++
	a.state.TickFlash(1)

	screen := a.router.Screen()
	layout := screen.Layout(a.state, a.width, a.height)
	var cmds []tea.Cmd
	for _, c := range screen.Components() {
		if _, ok := layout[c.ID()]; !ok {
			continue
		}
		if c.ShouldUpdate(a.state, 1) {
			cmds = append(cmds, c.Update(a.state))
		}
		if a.router.Screen() != screen {
			break
		}
	}
	return tea.Batch(cmds...)
}

// onKey offers msg to the screen, then to its visible components in order,
// then to the global bindings.
func (a *App) onKey(msg tea.KeyMsg) tea.Cmd {
	if a.env.keys.Is(msg, input.ForceQuit) {
		a.Quit()
		return nil
	}

	screen := a.router.Screen()
	if ok, cmd := screen.HandleInput(a.state, msg); ok {
		return cmd
	}

	layout := screen.Layout(a.state, a.width, a.height)
	for _, c := range screen.Components() {
		if _, ok := layout[c.ID()]; !ok {
			continue
		}
		ok, cmd := c.HandleInput(a.state, msg)
		if ok {
			a.state.SetLatestInteracted(c.ID())
			return cmd
		}
		if a.router.Screen() != screen {
			return cmd
		}
	}

	a.keyHandler.HandleKey(msg)
	return nil
}

func (a *App) Push(route router.Route) {
	a.router.Push(route, a.state)
	debuglog.Debugf("push %s, depth %d", route, a.router.Depth())
}

// Pop leaves the current screen. Popping the root is a no-op.
func (a *App) Pop() {
	if err := a.router.Pop(a.state); err != nil && !errors.Is(err, router.ErrEmptyStack) {
		debuglog.Errorf("%v", err)
	}
}

func (a *App) Replace(route router.Route) {
	a.router.Replace(route, a.state)
}

func (a *App) Current() router.Route {
	return a.router.Current()
}

func (a *App) IsOnRootScreen() bool {
	return a.router.IsOnRootScreen()
}

// Quit unmounts the current screen so its hooks persist what they own, then
// stops the program.
func (a *App) Quit() {
	if a.quitting {
		return
	}
	a.router.Screen().Unmount(a.state)
	a.quitting = true
	debuglog.Infof("quitting from %s", a.router.Current())
}

func (a *App) View() string {
	if a.quitting || a.width == 0 || a.height == 0 {
		return ""
	}
	screen := a.router.Screen()
	layout := screen.Layout(a.state, a.width, a.height)
	rendered := make(map[state.ComponentID]string, len(layout))
	for _, c := range screen.Components() {
		rect, ok := layout[c.ID()]
		if !ok || rect.Width <= 0 || rect.Height <= 0 {
			continue
		}
		rendered[c.ID()] = c.Render(a.state, rect.Width, rect.Height)
	}
	return compose(layout, rendered)
}
