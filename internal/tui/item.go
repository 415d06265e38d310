package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/state"
)

// itemDetailsComponent shows the viewed story. Without the comments panel
// its text scrolls.
type itemDetailsComponent struct {
	env *env
	vp  viewport.Model
}

func newItemDetailsComponent(e *env) *itemDetailsComponent {
	return &itemDetailsComponent{env: e, vp: viewport.New(0, 0)}
}

func (c *itemDetailsComponent) ID() state.ComponentID { return idItemDetails }

func (c *itemDetailsComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *itemDetailsComponent) Update(*state.State) tea.Cmd { return nil }

func (c *itemDetailsComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := c.env.keys
	viewed, ok := st.ViewedItem()
	if !ok {
		return false, nil
	}
	// With the comments panel open, the keys belong to the focused comment.
	switch {
	case st.CommentsPanelVisible() && !viewed.IsJob:
		return false, nil
	case keys.Is(msg, input.ViewUserProfile):
		st.SetViewedUserID(viewed.By)
		c.env.nav.Push(router.UserProfile(viewed.By))
		return true, nil
	case keys.Is(msg, input.NavigateUp):
		c.vp.LineUp(1)
		return true, nil
	case keys.Is(msg, input.NavigateDown):
		c.vp.LineDown(1)
		return true, nil
	}
	return false, nil
}

func (c *itemDetailsComponent) Render(st *state.State, width, height int) string {
	viewed, ok := st.ViewedItem()
	if !ok {
		return renderCentered(width, height, ErrorMessageStyle.Render(MsgThreadError))
	}
	inner := max(width-4, 1)

	head := []string{TitleStyle.Render(truncateEnd(viewed.Title, inner))}
	if viewed.URLHostname != "" {
		head = append(head, lipgloss.NewStyle().Foreground(AccentColor).Render(truncateMiddle(viewed.URLHostname, inner)))
	}
	head = append(head, MetaStyle.Render(truncateEnd(itemMeta(viewed), inner)))
	header := strings.Join(head, "\n")

	bodyHeight := height - 2 - lipgloss.Height(header)
	text := c.env.markdown.Render(viewed.ID, viewed.Text, inner)
	if bodyHeight <= 0 || text == "" {
		return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(header), false, width, height)
	}

	c.vp.Width, c.vp.Height = inner, bodyHeight
	c.vp.SetContent(text)
	content := lipgloss.JoinVertical(lipgloss.Left, header, c.vp.View())
	return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(content), false, width, height)
}

func itemMeta(it item.Item) string {
	meta := fmt.Sprintf("%d %s by %s %s", it.Score, pluralize(it.Score, "point"), it.By, it.PostedSince)
	if !it.IsJob {
		meta += fmt.Sprintf(" | %d %s", it.Descendants, pluralize(it.Descendants, "comment"))
	}
	return meta
}

// itemSummaryComponent heads the nested comments screen with the story and
// the comment whose replies are listed.
type itemSummaryComponent struct {
	env *env
}

func newItemSummaryComponent(e *env) *itemSummaryComponent {
	return &itemSummaryComponent{env: e}
}

func (c *itemSummaryComponent) ID() state.ComponentID { return idItemSummary }

func (c *itemSummaryComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *itemSummaryComponent) Update(*state.State) tea.Cmd { return nil }

func (c *itemSummaryComponent) HandleInput(*state.State, tea.KeyMsg) (bool, tea.Cmd) {
	return false, nil
}

func (c *itemSummaryComponent) Render(st *state.State, width, height int) string {
	inner := max(width-4, 1)
	var rows []string
	if viewed, ok := st.ViewedItem(); ok {
		rows = append(rows, TitleStyle.Render(truncateEnd(viewed.Title, inner)))
	}
	if pid, ok := st.ChainParent(); ok {
		if parent, ok := st.Comment(pid); ok {
			rows = append(rows, HeaderStyle.Render(parent.By)+renderMuted(" • "+parent.PostedSince))
			excerpt := strings.Join(strings.Fields(item.PlainText(parent.Text)), " ")
			rows = append(rows, wrap(excerpt, inner, max(height-2-len(rows), 1)))
		}
	}
	return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(rows, "\n")), false, width, height)
}
