package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/state"
)

// storiesComponent lists the stories of the selected section.
type storiesComponent struct {
	env  *env
	slot *fetchSlot[storiesResult]

	stories []item.Item
	cursor  int
	loaded  bool
	section hnapi.Section
	sorting hnapi.Sorting

	ticks  int
	force  bool
	failed bool
}

func newStoriesComponent(e *env) *storiesComponent {
	return &storiesComponent{env: e, slot: newFetchSlot[storiesResult]()}
}

func (c *storiesComponent) ID() state.ComponentID { return idStories }

// storiesSnapshot survives the Home screen being rebuilt after a pop.
type storiesSnapshot struct {
	section hnapi.Section
	sorting hnapi.Sorting
	stories []item.Item
	cursor  int
	ticks   int
}

func (c *storiesComponent) Mount(st *state.State) {
	snap := c.env.stories
	if snap == nil || snap.section != st.Section() || snap.sorting != st.Sorting() {
		return
	}
	c.section, c.sorting = snap.section, snap.sorting
	c.stories, c.cursor, c.ticks = snap.stories, snap.cursor, snap.ticks
	c.loaded = true
}

func (c *storiesComponent) Unmount(*state.State) {
	if !c.loaded {
		return
	}
	c.env.stories = &storiesSnapshot{
		section: c.section,
		sorting: c.sorting,
		stories: c.stories,
		cursor:  c.cursor,
		ticks:   c.ticks,
	}
}

func (c *storiesComponent) ShouldUpdate(st *state.State, elapsed int) bool {
	if c.slot.Fetching() {
		return true
	}
	c.ticks += elapsed

	switch {
	case c.force, c.ticks >= updateCadence:
		return true
	case st.Section() != c.section || st.Sorting() != c.sorting:
		return true
	case !c.loaded && !c.failed:
		return true
	}
	return false
}

func (c *storiesComponent) Update(st *state.State) tea.Cmd {
	if res, ok := c.slot.Poll(); ok {
		c.apply(st, res)
		return nil
	}
	if c.slot.Fetching() {
		return nil
	}

	c.ticks = 0
	c.force = false
	section, sorting := st.Section(), st.Sorting()
	if section != c.section || sorting != c.sorting {
		c.failed = false
	}
	return c.slot.Launch(func() storiesResult {
		return c.env.fetchStories(section, sorting)
	})
}

func (c *storiesComponent) apply(st *state.State, res storiesResult) {
	if res.section != st.Section() || res.sorting != st.Sorting() {
		return
	}
	sameList := c.loaded && res.section == c.section && res.sorting == c.sorting
	c.section, c.sorting = res.section, res.sorting
	if res.err != nil {
		c.failed = true
		if !sameList {
			c.stories, c.cursor = nil, 0
		}
		c.loaded = c.stories != nil
		st.SetFlash(MsgStoriesFetchFailed, flashTicks)
		return
	}

	// Focus follows the story only within the same listing.
	var focusedID int
	if sameList && c.cursor < len(c.stories) {
		focusedID = c.stories[c.cursor].ID
	}
	c.stories = res.stories
	c.loaded, c.failed = true, false
	c.cursor = 0
	for i, s := range c.stories {
		if s.ID == focusedID {
			c.cursor = i
			break
		}
	}
}

func (c *storiesComponent) selected() (item.Item, bool) {
	if c.cursor < 0 || c.cursor >= len(c.stories) {
		return item.Item{}, false
	}
	return c.stories[c.cursor], true
}

func (c *storiesComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := c.env.keys
	switch {
	case keys.Is(msg, input.Refresh):
		c.force = true
		return true, nil
	case len(c.stories) == 0:
		return false, nil

	case keys.Is(msg, input.NavigateUp):
		c.cursor = (c.cursor - 1 + len(c.stories)) % len(c.stories)
	case keys.Is(msg, input.NavigateDown):
		c.cursor = (c.cursor + 1) % len(c.stories)

	case keys.Is(msg, input.SelectItem):
		story, _ := c.selected()
		c.env.nav.Push(router.ItemDetails(story))

	case keys.Is(msg, input.ViewUserProfile):
		story, _ := c.selected()
		st.SetViewedUserID(story.By)
		c.env.nav.Push(router.UserProfile(story.By))

	case keys.Is(msg, input.OpenLink), keys.Is(msg, input.OpenHackerNewsLink), keys.Is(msg, input.CopyLink):
		story, _ := c.selected()
		handleLink(c.env, st, msg, story.Link(), story.HackerNewsLink())

	default:
		return false, nil
	}
	return true, nil
}

func (c *storiesComponent) Render(st *state.State, width, height int) string {
	switch {
	case c.slot.Fetching() && !c.loaded && height >= len(LogoLines)+4:
		return renderCentered(width, height, GetCompactBanner(MsgLoadingStories))
	case c.slot.Fetching() && (!c.loaded || st.Section() != c.section || st.Sorting() != c.sorting):
		return renderLoader(c.env, width, height)
	case !c.loaded && c.failed:
		return renderCentered(width, height, ErrorMessageStyle.Render(MsgStoriesFetchFailed))
	case len(c.stories) == 0:
		return renderCentered(width, height, renderMuted(MsgNoStories))
	}

	withMeta := c.env.Config != nil && c.env.Config.UI.DisplayMainItemsListItemMeta
	rowHeight := 1
	if withMeta {
		rowHeight = 2
	}
	visible := max(height/rowHeight, 1)
	start := 0
	if c.cursor >= visible {
		start = c.cursor - visible + 1
	}
	end := min(start+visible, len(c.stories))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, c.renderRow(i, width, withMeta))
	}
	return strings.Join(rows, "\n")
}

func (c *storiesComponent) renderRow(i, width int, withMeta bool) string {
	s := c.stories[i]
	title := fmt.Sprintf("%3d. %s", i+1, s.Title)
	if s.URLHostname != "" {
		title += renderMuted(" (" + s.URLHostname + ")")
	}
	title = truncateEnd(title, width)
	if i == c.cursor {
		title = SelectedItemStyle.Render(truncateEnd(fmt.Sprintf("%3d. %s", i+1, s.Title), width))
	}
	if !withMeta {
		return title
	}
	meta := fmt.Sprintf("     %d %s by %s %s | %d %s",
		s.Score, pluralize(s.Score, "point"), s.By, s.PostedSince,
		s.Descendants, pluralize(s.Descendants, "comment"))
	return lipgloss.JoinVertical(lipgloss.Left, title, MetaStyle.Render(truncateEnd(meta, width)))
}

// optionsComponent shows the section and, on Home, the sorting.
type optionsComponent struct {
	env       *env
	debouncer *input.Debouncer
}

func newOptionsComponent(e *env) *optionsComponent {
	return &optionsComponent{env: e, debouncer: input.NewDebouncer(inputDebounceTicks)}
}

func (c *optionsComponent) ID() state.ComponentID { return idOptions }

func (c *optionsComponent) ShouldUpdate(_ *state.State, elapsed int) bool {
	c.debouncer.Tick(elapsed)
	return false
}

func (c *optionsComponent) Update(*state.State) tea.Cmd { return nil }

func (c *optionsComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	if !c.env.keys.Is(msg, input.ToggleSorting) || st.Section() != hnapi.SectionHome {
		c.debouncer.Release()
		return false, nil
	}
	if c.debouncer.IsActionAllowed() {
		st.SetSorting(st.Sorting().Next())
	}
	return true, nil
}

func (c *optionsComponent) Render(st *state.State, width, _ int) string {
	if st.Section() != hnapi.SectionHome {
		return renderMuted(truncateEnd(" "+st.Section().String(), width))
	}
	parts := []string{renderMuted(" Sorting:")}
	for _, s := range []hnapi.Sorting{hnapi.SortingTop, hnapi.SortingNew, hnapi.SortingBest} {
		if s == st.Sorting() {
			parts = append(parts, ActiveTabStyle.Render(s.String()))
		} else {
			parts = append(parts, TabStyle.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// handleLink runs the open, open-on-HN or copy action on a pair of links.
func handleLink(e *env, st *state.State, msg tea.KeyMsg, link, hnLink string) {
	var err error
	switch {
	case e.keys.Is(msg, input.OpenHackerNewsLink):
		err = e.open(hnLink)
	case e.keys.Is(msg, input.OpenLink):
		err = e.open(link)
	case e.keys.Is(msg, input.CopyLink):
		if e.Copy == nil {
			err = uiErr("clipboard unavailable")
		} else if err = e.Copy(link); err == nil {
			st.SetFlash(MsgLinkCopied, flashTicks)
		}
	}
	if err != nil {
		st.SetFlash(MsgOpenFailed(err), flashTicks)
	}
}
