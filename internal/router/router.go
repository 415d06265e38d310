package router

import (
	"errors"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/state"
)

// ErrEmptyStack is returned when a pop would remove the last frame.
var ErrEmptyStack = errors.New("navigation stack cannot be emptied")

// Screen is the part of a screen the router drives.
type Screen interface {
	Route() Route
	// Mount runs once the screen is on top of the stack.
	Mount(st *state.State)
	// Unmount runs before the screen is replaced.
	Unmount(st *state.State)
}

// Router is a LIFO stack of routes plus the screen built for the top one.
// Screens are never retained: every push and pop builds a fresh one.
type Router[S Screen] struct {
	stack  []Route
	screen S
	build  func(Route) S
}

// New builds and mounts the screen of the initial route, which stays at the
// bottom of the stack.
func New[S Screen](initial Route, build func(Route) S, st *state.State) *Router[S] {
	r := &Router[S]{stack: []Route{initial}, build: build}
	r.screen = build(initial)
	r.screen.Mount(st)
	return r
}

func (r *Router[S]) Push(route Route, st *state.State) {
	r.stack = append(r.stack, route)
	r.swap(route, st)
}

// Pop removes the top route and rebuilds the screen of the new top. Popping
// the last frame fails with ErrEmptyStack and changes nothing.
func (r *Router[S]) Pop(st *state.State) error {
	if len(r.stack) <= 1 {
		return ErrEmptyStack
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.swap(r.stack[len(r.stack)-1], st)
	return nil
}

// Replace swaps the top route for route.
func (r *Router[S]) Replace(route Route, st *state.State) {
	r.stack[len(r.stack)-1] = route
	r.swap(route, st)
}

func (r *Router[S]) swap(route Route, st *state.State) {
	r.screen.Unmount(st)
	r.screen = r.build(route)
	r.screen.Mount(st)
	debuglog.Debugf("router: %s (depth %d)", route, len(r.stack))
}

func (r *Router[S]) Current() Route {
	return r.stack[len(r.stack)-1]
}

func (r *Router[S]) Screen() S {
	return r.screen
}

func (r *Router[S]) Depth() int {
	return len(r.stack)
}

// IsOnRootScreen reports whether the top route is a Home section.
func (r *Router[S]) IsOnRootScreen() bool {
	return r.Current().IsHome()
}
