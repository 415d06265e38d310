package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchSlot hands one background fetch result back to a ticked component.
// At most one fetch is in flight; its result is consumed by the first Poll
// that finds it.
type fetchSlot[T any] struct {
	fetching atomic.Bool
	done     chan T
}

func newFetchSlot[T any]() *fetchSlot[T] {
	return &fetchSlot[T]{done: make(chan T, 1)}
}

func (s *fetchSlot[T]) Fetching() bool {
	return s.fetching.Load()
}

// Launch returns a command running fn, or nil when a fetch is in flight.
// The command reports nothing; the result waits in the slot.
func (s *fetchSlot[T]) Launch(fn func() T) tea.Cmd {
	if !s.fetching.CompareAndSwap(false, true) {
		return nil
	}
	return func() tea.Msg {
		s.done <- fn()
		return nil
	}
}

// Poll returns the completed result without blocking.
func (s *fetchSlot[T]) Poll() (T, bool) {
	select {
	case v := <-s.done:
		s.fetching.Store(false)
		return v, true
	default:
		var zero T
		return zero, false
	}
}
