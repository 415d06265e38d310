package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnterm/internal/config"
	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/state"
)

type setting struct {
	label string
	get   func(*config.Config) bool
	set   func(*config.Config, bool) error
}

var settings = []setting{
	{
		label: "Enable the quit shortcut on sub-screens",
		get:   func(c *config.Config) bool { return c.UI.EnableGlobalSubScreenQuitShortcut },
		set:   (*config.Config).SetEnableGlobalSubScreenQuitShortcut,
	},
	{
		label: "Display the comments panel by default",
		get:   func(c *config.Config) bool { return c.UI.DisplayCommentsPanelByDefault },
		set:   (*config.Config).SetDisplayCommentsPanelByDefault,
	},
	{
		label: "Display item meta in story lists",
		get:   func(c *config.Config) bool { return c.UI.DisplayMainItemsListItemMeta },
		set:   (*config.Config).SetDisplayMainItemsListItemMeta,
	},
	{
		label: "Show contextual help",
		get:   func(c *config.Config) bool { return c.UI.ShowContextualHelp },
		set:   (*config.Config).SetShowContextualHelp,
	},
}

// settingsComponent flips persisted toggles.
type settingsComponent struct {
	env    *env
	cursor int
}

func newSettingsComponent(e *env) *settingsComponent {
	return &settingsComponent{env: e}
}

func (c *settingsComponent) ID() state.ComponentID { return idSettings }

func (c *settingsComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *settingsComponent) Update(*state.State) tea.Cmd { return nil }

func (c *settingsComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := c.env.keys
	switch {
	case keys.Is(msg, input.NavigateUp):
		c.cursor = (c.cursor - 1 + len(settings)) % len(settings)
	case keys.Is(msg, input.NavigateDown):
		c.cursor = (c.cursor + 1) % len(settings)
	case keys.Is(msg, input.ToggleControl):
		c.toggle(st)
	default:
		return false, nil
	}
	return true, nil
}

func (c *settingsComponent) toggle(st *state.State) {
	cfg := c.env.Config
	if cfg == nil {
		return
	}
	s := settings[c.cursor]
	if err := s.set(cfg, !s.get(cfg)); err != nil {
		if errors.Is(err, config.ErrConfigSync) {
			debuglog.Warnf("%v", err)
		} else {
			debuglog.Errorf("%v", err)
		}
		st.SetFlash(MsgConfigSaveFailed(err), flashTicks)
	}
}

func (c *settingsComponent) Render(_ *state.State, width, height int) string {
	cfg := c.env.Config
	if cfg == nil {
		return ""
	}
	rows := []string{renderHeader("Settings", "tab toggles the selected option, changes are saved immediately", width), ""}
	for i, s := range settings {
		box := "[ ]"
		if s.get(cfg) {
			box = "[x]"
		}
		row := truncateEnd(box+" "+s.label, width-2)
		if i == c.cursor {
			row = SelectedItemStyle.Render(row)
		}
		rows = append(rows, " "+row)
	}
	return place(width, height, strings.Join(rows, "\n"))
}
