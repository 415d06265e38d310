package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/state"
)

// userProfileComponent loads and shows the viewed user.
type userProfileComponent struct {
	env  *env
	slot *fetchSlot[userResult]

	user     *item.User
	loadedID string

	about      string
	aboutWidth int
}

func newUserProfileComponent(e *env) *userProfileComponent {
	return &userProfileComponent{env: e, slot: newFetchSlot[userResult]()}
}

func (c *userProfileComponent) ID() state.ComponentID { return idUserProfile }

func (c *userProfileComponent) ShouldUpdate(st *state.State, _ int) bool {
	return c.slot.Fetching() || (st.ViewedUserID() != "" && st.ViewedUserID() != c.loadedID)
}

func (c *userProfileComponent) Update(st *state.State) tea.Cmd {
	if res, ok := c.slot.Poll(); ok {
		c.apply(st, res)
		return nil
	}
	if c.slot.Fetching() {
		return nil
	}
	id := st.ViewedUserID()
	c.loadedID = id
	c.user = nil
	return c.slot.Launch(func() userResult {
		return c.env.fetchUser(id)
	})
}

func (c *userProfileComponent) apply(st *state.State, res userResult) {
	if res.id != st.ViewedUserID() {
		return
	}
	if res.err != nil {
		debuglog.Warnf("%v", res.err)
		st.SetFlash(MsgUserLoadFailed(res.id), flashTicks)
		c.env.nav.Pop()
		st.SetViewedUserID("")
		return
	}
	c.user = &res.user
	c.aboutWidth = 0
}

func (c *userProfileComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := c.env.keys
	if c.user == nil {
		return false, nil
	}
	if keys.Is(msg, input.OpenLink) || keys.Is(msg, input.OpenHackerNewsLink) || keys.Is(msg, input.CopyLink) {
		link := c.user.HackerNewsLink()
		handleLink(c.env, st, msg, link, link)
		return true, nil
	}
	return false, nil
}

func (c *userProfileComponent) Render(_ *state.State, width, height int) string {
	inner := max(width-4, 1)
	if c.user == nil {
		return renderPanel(renderLoader(c.env, inner, height-2), true, width, height)
	}
	u := c.user

	submissions := MsgNoSubmissions
	if n := len(u.Submitted); n > 0 {
		submissions = fmt.Sprintf("%d %s", n, pluralize(n, "submission"))
	}
	rows := []string{
		HeaderStyle.Render(u.ID),
		renderMuted("Created: ") + u.CreatedFormatted,
		renderMuted("Karma: ") + fmt.Sprint(u.Karma),
		renderMuted(submissions),
		"",
	}
	if c.aboutWidth != inner {
		c.about, c.aboutWidth = c.env.markdown.Render(0, u.About, inner), inner
	}
	if c.about != "" {
		rows = append(rows, c.about)
	}
	content := strings.Join(rows, "\n")
	return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(content), true, width, height)
}
