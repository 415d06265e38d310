package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/state"
)

type searchPart int

const (
	partTags searchPart = iota
	partInput
	partResults
)

// searchFocus is shared by the search screen and its components.
type searchFocus struct {
	part searchPart
}

// searchTagsComponent picks what to search.
type searchTagsComponent struct {
	env   *env
	focus *searchFocus
}

func (c *searchTagsComponent) ID() state.ComponentID { return idSearchTags }

func (c *searchTagsComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *searchTagsComponent) Update(*state.State) tea.Cmd { return nil }

func (c *searchTagsComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.focus.part != partTags {
		return false, nil
	}
	tags := state.SearchTags()
	i := int(st.SearchTag())
	switch {
	case c.env.keys.Is(msg, input.NavigateLeft):
		i = (i - 1 + len(tags)) % len(tags)
	case c.env.keys.Is(msg, input.NavigateRight):
		i = (i + 1) % len(tags)
	default:
		return false, nil
	}
	st.SetSearchTag(tags[i])
	return true, nil
}

func (c *searchTagsComponent) Render(st *state.State, width, _ int) string {
	marker := "  "
	if c.focus.part == partTags {
		marker = LogoStyle.Render("› ")
	}
	parts := []string{marker}
	for _, t := range state.SearchTags() {
		if t == st.SearchTag() {
			parts = append(parts, ActiveTabStyle.Render(t.String()))
		} else {
			parts = append(parts, TabStyle.Render(t.String()))
		}
	}
	return truncateEnd(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width)
}

// searchInputComponent edits the query.
type searchInputComponent struct {
	env   *env
	focus *searchFocus
	input textinput.Model
}

func newSearchInputComponent(e *env, focus *searchFocus) *searchInputComponent {
	ti := textinput.New()
	ti.Placeholder = "Search HackerNews"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &searchInputComponent{env: e, focus: focus, input: ti}
}

func (c *searchInputComponent) ID() state.ComponentID { return idSearchInput }

func (c *searchInputComponent) Mount(st *state.State) {
	c.input.SetValue(st.SearchQuery())
	c.input.CursorEnd()
}

func (c *searchInputComponent) Unmount(*state.State) {}

func (c *searchInputComponent) ShouldUpdate(*state.State, int) bool { return false }

func (c *searchInputComponent) Update(*state.State) tea.Cmd { return nil }

func (c *searchInputComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.focus.part != partInput {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyEnter, tea.KeyEsc, tea.KeyCtrlC, tea.KeyTab:
		return false, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	st.SetSearchQuery(c.input.Value())
	return true, cmd
}

func (c *searchInputComponent) Render(_ *state.State, width, height int) string {
	c.input.Width = max(width-6, 1)
	return renderPanel(c.input.View(), c.focus.part == partInput, width, height)
}

type searchKey struct {
	query string
	tag   state.SearchTag
}

// searchResultsComponent runs the query once it stopped changing.
type searchResultsComponent struct {
	env       *env
	focus     *searchFocus
	slot      *fetchSlot[searchResult]
	debouncer *input.Debouncer

	pending   searchKey
	requested searchKey
	ran       bool

	hits   []item.Hit
	cursor int
	err    error
}

func newSearchResultsComponent(e *env, focus *searchFocus) *searchResultsComponent {
	return &searchResultsComponent{
		env:       e,
		focus:     focus,
		slot:      newFetchSlot[searchResult](),
		debouncer: input.NewDebouncer(inputDebounceTicks),
	}
}

func (c *searchResultsComponent) ID() state.ComponentID { return idSearchResults }

func (c *searchResultsComponent) ShouldUpdate(st *state.State, elapsed int) bool {
	if c.slot.Fetching() {
		return true
	}
	c.debouncer.Tick(elapsed)

	key := searchKey{query: st.SearchQuery(), tag: st.SearchTag()}
	if key != c.pending {
		c.pending = key
		c.debouncer.Reset()
		return false
	}
	if c.ran && c.pending == c.requested {
		return false
	}
	return c.debouncer.IsActionAllowed()
}

func (c *searchResultsComponent) Update(st *state.State) tea.Cmd {
	if res, ok := c.slot.Poll(); ok {
		c.apply(st, res)
		return nil
	}
	if c.slot.Fetching() {
		return nil
	}

	key := c.pending
	c.requested, c.ran = key, true
	c.err = nil
	if strings.TrimSpace(key.query) == "" {
		c.hits, c.cursor = nil, 0
		return nil
	}
	return c.slot.Launch(func() searchResult {
		return c.env.runSearch(key.query, key.tag)
	})
}

func (c *searchResultsComponent) apply(st *state.State, res searchResult) {
	if res.query != c.requested.query || res.tag != c.requested.tag {
		return
	}
	if res.err != nil {
		c.err = res.err
		c.hits = nil
		st.SetFlash(MsgSearchFailed, flashTicks)
		return
	}
	c.hits, c.cursor = res.hits, 0
	if len(c.hits) == 0 && c.focus.part == partResults {
		c.focus.part = partInput
	}
}

// HasHits reports whether there is anything to focus.
func (c *searchResultsComponent) HasHits() bool { return len(c.hits) > 0 }

func (c *searchResultsComponent) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.focus.part != partResults || len(c.hits) == 0 {
		return false, nil
	}
	keys := c.env.keys
	switch {
	case keys.Is(msg, input.NavigateUp):
		c.cursor = (c.cursor - 1 + len(c.hits)) % len(c.hits)
	case keys.Is(msg, input.NavigateDown):
		c.cursor = (c.cursor + 1) % len(c.hits)
	case keys.Is(msg, input.OpenLink), keys.Is(msg, input.OpenHackerNewsLink), keys.Is(msg, input.CopyLink):
		h := c.hits[c.cursor]
		handleLink(c.env, st, msg, h.Link(), h.HackerNewsLink())
	default:
		return false, nil
	}
	return true, nil
}

func (c *searchResultsComponent) Render(st *state.State, width, height int) string {
	focused := c.focus.part == partResults
	inner, innerHeight := max(width-4, 1), max(height-2, 1)

	var body string
	switch {
	case strings.TrimSpace(st.SearchQuery()) == "":
		body = renderCentered(inner, innerHeight, renderMuted(MsgNoSearchInput))
	case c.slot.Fetching() || !c.ran || c.pending != c.requested:
		body = renderLoader(c.env, inner, innerHeight)
	case c.err != nil:
		body = renderCentered(inner, innerHeight, ErrorMessageStyle.Render(MsgSearchFailed))
	case len(c.hits) == 0:
		body = renderCentered(inner, innerHeight, renderMuted(MsgNoResults))
	default:
		body = c.renderHits(inner, innerHeight, focused)
	}
	return renderPanel(lipgloss.NewStyle().Padding(0, 1).Render(body), focused, width, height)
}

func (c *searchResultsComponent) renderHits(width, height int, focused bool) string {
	rows := []string{renderMuted(MsgResultsCount(len(c.hits)))}
	visible := max((height-1)/2, 1)
	start := 0
	if c.cursor >= visible {
		start = c.cursor - visible + 1
	}
	for i := start; i < min(start+visible, len(c.hits)); i++ {
		h := c.hits[i]
		title := truncateEnd(h.Title, width)
		if focused && i == c.cursor {
			title = SelectedItemStyle.Render(title)
		}
		rows = append(rows, title, MetaStyle.Render(truncateEnd(h.Meta, width)))
	}
	return strings.Join(rows, "\n")
}
