package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/router"
)

// KeyHandler applies the bindings no screen or component claimed.
type KeyHandler struct {
	app *App
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app}
}

// HandleKey reports whether msg matched a global binding.
func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) bool {
	keys := kh.app.env.keys
	switch {
	case keys.Is(msg, input.Quit):
		if kh.canQuit() {
			kh.app.Quit()
		}
	case keys.Is(msg, input.ToggleHelp):
		kh.toggleHelp()
	case keys.Is(msg, input.Back):
		kh.app.Pop()
	default:
		return false
	}
	return true
}

func (kh *KeyHandler) canQuit() bool {
	if kh.app.IsOnRootScreen() {
		return true
	}
	cfg := kh.app.env.Config
	return cfg != nil && cfg.UI.EnableGlobalSubScreenQuitShortcut
}

func (kh *KeyHandler) toggleHelp() {
	switch kh.app.Current().Kind {
	case router.KindHelp, router.KindSearchHelp:
		kh.app.Pop()
	default:
		kh.app.Push(router.Help())
	}
}
