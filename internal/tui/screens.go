package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/state"
)

// Screen is a set of components with a layout, built for one route.
type Screen interface {
	router.Screen
	// Components are listed in tick and input order.
	Components() []Component
	Layout(st *state.State, width, height int) Layout
	// HandleInput sees keys before the components and reports whether it
	// swallowed them.
	HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd)
}

type screen struct {
	route      router.Route
	components []Component
	layout     func(st *state.State, width, height int) Layout
	handle     func(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd)
	mount      func(st *state.State)
	unmount    func(st *state.State)
}

func (s *screen) Route() router.Route { return s.route }

func (s *screen) Components() []Component { return s.components }

func (s *screen) Layout(st *state.State, width, height int) Layout {
	return s.layout(st, width, height)
}

func (s *screen) HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.handle == nil {
		return false, nil
	}
	return s.handle(st, msg)
}

// Mount runs the screen hook before the component hooks, so components see
// the state the screen prepared.
func (s *screen) Mount(st *state.State) {
	if s.mount != nil {
		s.mount(st)
	}
	for _, c := range s.components {
		if m, ok := c.(Mounter); ok {
			m.Mount(st)
		}
	}
}

func (s *screen) Unmount(st *state.State) {
	for _, c := range s.components {
		if m, ok := c.(Mounter); ok {
			m.Unmount(st)
		}
	}
	if s.unmount != nil {
		s.unmount(st)
	}
}

// buildScreen builds a fresh screen for route.
func (e *env) buildScreen(route router.Route) Screen {
	switch route.Kind {
	case router.KindItemDetails:
		return e.itemScreen(route)
	case router.KindItemNestedComments:
		return e.nestedCommentsScreen(route)
	case router.KindUserProfile:
		return e.userScreen(route)
	case router.KindSettings:
		return e.settingsScreen(route)
	case router.KindHelp:
		return e.helpScreen(route, "Help", helpGroups, true)
	case router.KindSearchHelp:
		return e.helpScreen(route, "Search help", searchHelpGroups, false)
	case router.KindSearch:
		return e.searchScreen(route)
	default:
		return e.homeScreen(route)
	}
}

func (e *env) homeScreen(route router.Route) Screen {
	nav := newNavigationComponent(e)
	options := newOptionsComponent(e)
	stories := newStoriesComponent(e)
	footer := newFooterComponent(e,
		input.NavigateUp, input.NavigateDown, input.NavigateLeft, input.SelectItem,
		input.ToggleSorting, input.OpenLink, input.ToggleHelp, input.Quit)

	return &screen{
		route:      route,
		components: []Component{nav, options, stories, footer},
		mount: func(st *state.State) {
			st.SetSection(route.Section)
		},
		layout: func(_ *state.State, width, height int) Layout {
			return column(width, 0, height,
				[]state.ComponentID{idNavigation, idOptions, idStories, idFooter},
				[]int{1, 1, -1, 1})
		},
	}
}

func (e *env) itemScreen(route router.Route) Screen {
	details := newItemDetailsComponent(e)
	comments := newCommentsComponent(e, false)
	footer := newFooterComponent(e,
		input.NavigateUp, input.NavigateDown, input.ExpandComment, input.ToggleComments,
		input.ViewUserProfile, input.OpenLink, input.Refresh, input.Back)
	it := route.Item

	return &screen{
		route:      route,
		components: []Component{details, comments, footer},
		mount: func(st *state.State) {
			prev, hadPrev := st.ViewedItem()
			same := hadPrev && prev.ID == it.ID
			if same {
				// Back from a nested or user screen: keep the loaded item
				// and its pruned kids.
				if _, ok := st.ChainRoot(); ok {
					return
				}
			}
			st.SetViewedItem(it)
			st.ResetChain()
			st.ClearPreviouslyViewedCommentID()
			if !same {
				st.SetCommentsPanelVisible(!it.IsJob && e.Config != nil && e.Config.UI.DisplayCommentsPanelByDefault)
			}
			if e.History != nil {
				if id, ok := e.History.TopLevelCommentID(it.ID); ok {
					st.PushChain(id)
					st.SetPreviouslyViewedCommentID(id)
					return
				}
			}
			if it.HasKids() {
				st.PushChain(it.Kids[0])
			}
		},
		unmount: func(st *state.State) {
			root, ok := st.ChainRoot()
			if !ok || e.History == nil {
				return
			}
			viewed, ok := st.ViewedItem()
			if !ok {
				return
			}
			if err := e.History.Remember(viewed.ID, root); err != nil {
				debuglog.Warnf("%v", err)
			}
		},
		layout: func(st *state.State, width, height int) Layout {
			viewed, _ := st.ViewedItem()
			body := height - 1
			if !st.CommentsPanelVisible() || viewed.IsJob {
				return column(width, 0, height,
					[]state.ComponentID{idItemDetails, idFooter},
					[]int{body, 1})
			}
			top := max(body*15/100, 5)
			return column(width, 0, height,
				[]state.ComponentID{idItemDetails, idComments, idFooter},
				[]int{top, -1, 1})
		},
		handle: func(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
			keys := e.keys
			viewed, ok := st.ViewedItem()
			if !ok {
				return false, nil
			}
			switch {
			case keys.Is(msg, input.Back):
				e.nav.Pop()
			case keys.Is(msg, input.ToggleComments):
				if viewed.IsJob {
					return true, nil
				}
				st.ToggleCommentsPanel()
			case keys.Is(msg, input.OpenLink), keys.Is(msg, input.OpenHackerNewsLink), keys.Is(msg, input.CopyLink):
				handleLink(e, st, msg, viewed.Link(), viewed.HackerNewsLink())
			default:
				return false, nil
			}
			return true, nil
		},
	}
}

func (e *env) nestedCommentsScreen(route router.Route) Screen {
	summary := newItemSummaryComponent(e)
	comments := newCommentsComponent(e, true)
	footer := newFooterComponent(e,
		input.NavigateUp, input.NavigateDown, input.ExpandComment,
		input.ViewUserProfile, input.OpenLink, input.Refresh, input.Back)
	parent := route.Item

	return &screen{
		route:      route,
		components: []Component{summary, comments, footer},
		mount: func(st *state.State) {
			if pid, ok := st.ChainParent(); ok && pid == parent.ID {
				return
			}
			kids := parent.Kids
			if cached, ok := st.Comment(parent.ID); ok && cached.HasKids() {
				kids = cached.Kids
			}
			st.PushChain(parent.ID)
			if len(kids) > 0 {
				st.PushChain(kids[0])
			}
		},
		layout: func(_ *state.State, width, height int) Layout {
			body := height - 1
			return column(width, 0, height,
				[]state.ComponentID{idItemSummary, idNestedComments, idFooter},
				[]int{max(body/5, 5), -1, 1})
		},
		handle: func(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
			keys := e.keys
			switch {
			case keys.Is(msg, input.Back):
				st.PopChain()
				if latest, ok := st.LatestInChain(); ok {
					st.SetPreviouslyViewedCommentID(latest)
				}
				e.nav.Pop()
			case keys.Is(msg, input.OpenLink), keys.Is(msg, input.OpenHackerNewsLink), keys.Is(msg, input.CopyLink):
				focused, ok := comments.focusedComment(st)
				if !ok {
					return false, nil
				}
				handleLink(e, st, msg, focused.Link(), focused.HackerNewsLink())
			default:
				return false, nil
			}
			return true, nil
		},
	}
}

func (e *env) userScreen(route router.Route) Screen {
	profile := newUserProfileComponent(e)
	footer := newFooterComponent(e, input.OpenLink, input.OpenHackerNewsLink, input.CopyLink, input.Back)

	return &screen{
		route:      route,
		components: []Component{profile, footer},
		mount: func(st *state.State) {
			st.SetViewedUserID(route.UserID)
		},
		layout: func(_ *state.State, width, height int) Layout {
			return column(width, 0, height,
				[]state.ComponentID{idUserProfile, idFooter},
				[]int{-1, 1})
		},
	}
}

func (e *env) settingsScreen(route router.Route) Screen {
	nav := newNavigationComponent(e)
	settings := newSettingsComponent(e)
	footer := newFooterComponent(e, input.NavigateUp, input.NavigateDown, input.ToggleControl, input.Back)

	return &screen{
		route:      route,
		components: []Component{nav, settings, footer},
		layout: func(_ *state.State, width, height int) Layout {
			return column(width, 0, height,
				[]state.ComponentID{idNavigation, idSettings, idFooter},
				[]int{1, -1, 1})
		},
	}
}

func (e *env) helpScreen(route router.Route, title string, groups [][]input.Action, withNav bool) Screen {
	help := newHelpComponent(e, title, groups)
	footer := newFooterComponent(e, input.NavigateUp, input.NavigateDown, input.Back)

	components := []Component{help, footer}
	ids := []state.ComponentID{idHelp, idFooter}
	heights := []int{-1, 1}
	if withNav {
		components = append([]Component{newNavigationComponent(e)}, components...)
		ids = append([]state.ComponentID{idNavigation}, ids...)
		heights = append([]int{1}, heights...)
	}

	return &screen{
		route:      route,
		components: components,
		layout: func(_ *state.State, width, height int) Layout {
			return column(width, 0, height, ids, heights)
		},
	}
}

func (e *env) searchScreen(route router.Route) Screen {
	focus := &searchFocus{part: partInput}
	nav := newNavigationComponent(e)
	tags := &searchTagsComponent{env: e, focus: focus}
	query := newSearchInputComponent(e, focus)
	results := newSearchResultsComponent(e, focus)
	footer := newFooterComponent(e,
		input.NavigateUp, input.NavigateDown, input.ToggleFocusResults,
		input.OpenLink, input.ToggleHelp, input.Back)

	cycle := func(delta int) {
		parts := []searchPart{partTags, partInput}
		if results.HasHits() {
			parts = append(parts, partResults)
		}
		i := 0
		for j, p := range parts {
			if p == focus.part {
				i = j
			}
		}
		focus.part = parts[(i+delta+len(parts))%len(parts)]
	}

	return &screen{
		route:      route,
		components: []Component{nav, tags, query, results, footer},
		layout: func(_ *state.State, width, height int) Layout {
			return column(width, 0, height,
				[]state.ComponentID{idNavigation, idSearchTags, idSearchInput, idSearchResults, idFooter},
				[]int{1, 1, 3, -1, 1})
		},
		handle: func(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd) {
			keys := e.keys
			if focus.part == partInput && input.IsTextKey(msg) {
				return false, nil
			}
			switch {
			case msg.Type == tea.KeyEnter:
				if focus.part == partResults || !results.HasHits() {
					return true, nil
				}
				focus.part = partResults
			case msg.Type == tea.KeyEsc && focus.part == partResults:
				focus.part = partInput
			case focus.part != partResults && keys.Is(msg, input.NavigateUp):
				cycle(-1)
			case focus.part != partResults && keys.Is(msg, input.NavigateDown):
				cycle(1)
			case keys.Is(msg, input.ToggleHelp):
				e.nav.Push(router.SearchHelp())
			default:
				return false, nil
			}
			return true, nil
		},
	}
}
