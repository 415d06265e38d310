package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/state"
)

const (
	// updateCadence is how many ticks pass between periodic refreshes.
	updateCadence = 1800
	// inputDebounceTicks gates repeated navigation keys.
	inputDebounceTicks = 5
)

// commentsComponent shows one comment of a sibling list at a time. At the
// top level the siblings are the kids of the viewed item; nested, they are
// the kids of the chain parent.
type commentsComponent struct {
	env    *env
	nested bool

	slot      *fetchSlot[commentsResult]
	focus     commentFocus
	debouncer *input.Debouncer
	ticks     int
	force     bool
	// failedFor is the parent whose last fetch failed; it is only retried on
	// the periodic cadence or an explicit refresh.
	failedFor int
}

func newCommentsComponent(e *env, nested bool) *commentsComponent {
	return &commentsComponent{
		env:       e,
		nested:    nested,
		slot:      newFetchSlot[commentsResult](),
		debouncer: input.NewDebouncer(inputDebounceTicks),
	}
}

func (c *commentsComponent) ID() state.ComponentID {
	if c.nested {
		return idNestedComments
	}
	return idComments
}

// parent returns the id whose kids are listed, with those kids. Nested kids
// are limited to cached comments.
func (c *commentsComponent) parent(st *state.State) (int, []int, bool) {
	if !c.nested {
		viewed, ok := st.ViewedItem()
		return viewed.ID, viewed.Kids, ok
	}
	pid, ok := st.ChainParent()
	if !ok {
		return 0, nil, false
	}
	p, ok := st.Comment(pid)
	if !ok {
		return pid, nil, false
	}
	kids := make([]int, 0, len(p.Kids))
	for _, id := range p.Kids {
		if _, ok := st.Comment(id); ok {
			kids = append(kids, id)
		}
	}
	return pid, kids, true
}

func (c *commentsComponent) ShouldUpdate(st *state.State, elapsed int) bool {
	if c.slot.Fetching() {
		return true
	}
	c.ticks += elapsed
	c.debouncer.Tick(elapsed)

	if c.force || c.ticks >= updateCadence {
		return true
	}

	parentID, kids, ok := c.parent(st)
	if c.nested {
		return parentID != c.focus.parentID && parentID != c.failedFor
	}
	if !ok || parentID == c.failedFor {
		return false
	}
	if st.Switched() {
		c.debouncer.Reset()
		return true
	}
	return st.Comments() == nil || len(kids) != c.focus.sameLevel
}

func (c *commentsComponent) Update(st *state.State) tea.Cmd {
	if res, ok := c.slot.Poll(); ok {
		c.apply(st, res)
		return nil
	}
	if c.slot.Fetching() {
		return nil
	}

	viewed, ok := st.ViewedItem()
	if !ok {
		return nil
	}
	parentID, kids, ok := c.parent(st)
	if c.nested && !ok {
		debuglog.Errorf("%v", uiErr("comment %d missing from the cache", parentID))
		c.env.nav.Pop()
		return nil
	}
	if c.nested {
		p, _ := st.Comment(parentID)
		kids = p.Kids
	}

	cached := map[int]struct{}{}
	if !st.Switched() {
		cached = st.Comments().IDs()
	}
	force := c.force
	c.force = false
	c.ticks = 0

	itemID := viewed.ID
	roots := append([]int(nil), kids...)
	return c.slot.Launch(func() commentsResult {
		return c.env.fetchComments(itemID, parentID, roots, cached, force)
	})
}

func (c *commentsComponent) apply(st *state.State, res commentsResult) {
	viewed, ok := st.ViewedItem()
	if !ok || viewed.ID != res.itemID {
		debuglog.Debugf("discarding comments of item %d", res.itemID)
		return
	}
	if res.err != nil {
		debuglog.Warnf("%v", res.err)
		c.failedFor = res.parentID
		return
	}
	c.failedFor = 0

	st.SetComments(res.comments)
	for id := range res.comments {
		c.env.markdown.Forget(id)
	}
	if !c.nested {
		st.DropMissingKids()
	}
	c.reconcile(st)
}

// reconcile refocuses after a fetch and mirrors the focus into the chain.
func (c *commentsComponent) reconcile(st *state.State) {
	parentID, kids, ok := c.parent(st)
	if !ok {
		return
	}
	if c.focus.focusedID == 0 {
		if latest, ok := st.LatestInChain(); ok {
			c.focus.Seed(parentID, latest)
		}
	}
	c.focus.Reconcile(parentID, kids)

	if id, ok := st.PreviouslyViewedCommentID(); ok {
		c.focus.Restore(id, kids)
		st.ClearPreviouslyViewedCommentID()
	}
	if c.focus.focusedID != 0 {
		st.ReplaceLatestInChain(c.focus.focusedID)
	}
}

func (c *commentsComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := c.env.keys
	switch {
	case keys.Is(msg, input.NavigateUp), keys.Is(msg, input.NavigateDown):
		if c.slot.Fetching() || !c.debouncer.IsActionAllowed() {
			return true, nil
		}
		_, kids, ok := c.parent(st)
		if !ok {
			return true, nil
		}
		var id int
		if keys.Is(msg, input.NavigateUp) {
			id = c.focus.Previous(kids)
		} else {
			id = c.focus.Next(kids)
		}
		if id != 0 {
			st.ReplaceLatestInChain(id)
		}
		return true, nil

	case keys.Is(msg, input.ExpandComment):
		if c.slot.Fetching() {
			return true, nil
		}
		focused, ok := st.Comment(c.focus.focusedID)
		if !ok || !focused.HasKids() {
			return true, nil
		}
		c.env.nav.Push(router.ItemNestedComments(focused))
		return true, nil

	case keys.Is(msg, input.ViewUserProfile):
		focused, ok := st.Comment(c.focus.focusedID)
		if !ok || focused.By == "" {
			return false, nil
		}
		st.SetViewedUserID(focused.By)
		c.env.nav.Push(router.UserProfile(focused.By))
		return true, nil

	case keys.Is(msg, input.Refresh):
		c.force = true
		return true, nil
	}

	c.debouncer.Release()
	return false, nil
}

func (c *commentsComponent) Render(st *state.State, width, height int) string {
	focusedPanel := st.LatestInteracted() == c.ID()
	inner := width - 4
	body := c.body(st, inner, height-2)
	return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(body), focusedPanel, width, height)
}

func (c *commentsComponent) body(st *state.State, width, height int) string {
	loading := c.slot.Fetching() && (st.Switched() || st.Comments() == nil || c.focus.parentID == 0)
	parentID, kids, _ := c.parent(st)
	chain := st.Chain()

	switch {
	case loading:
		return renderLoader(c.env, width, height)
	case st.Comments() == nil, parentID != 0 && parentID == c.failedFor:
		return renderCentered(width, height, ErrorMessageStyle.Render(MsgCommentsFetchFailed))
	case len(kids) == 0:
		return renderCentered(width, height, renderMuted(MsgNoComments))
	case len(chain) == 0:
		return renderCentered(width, height, ErrorMessageStyle.Render(MsgThreadError))
	}

	comment, ok := st.Comment(c.focus.focusedID)
	if !ok {
		return renderCentered(width, height, ErrorMessageStyle.Render(MsgCommentDisplayError))
	}

	header := HeaderStyle.Render(comment.By) + renderMuted(" • "+comment.PostedSince)
	footer := renderMuted(MsgCommentPosition(c.focus.index+1, len(kids), len(comment.Kids)))

	text := c.env.markdown.Render(comment.ID, comment.Text, width)
	textHeight := max(height-3, 1)
	lines := strings.Split(text, "\n")
	if len(lines) > textHeight {
		lines = append(lines[:textHeight-1], renderMuted("…"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		place(width, textHeight, strings.Join(lines, "\n")),
		SeparatorStyle.Render(strings.Repeat("─", max(width, 0))),
		footer,
	)
}

// focusedComment is the comment the panel shows, if any.
func (c *commentsComponent) focusedComment(st *state.State) (item.Item, bool) {
	return st.Comment(c.focus.focusedID)
}
