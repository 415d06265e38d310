package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnterm/internal/state"
)

// Component is one independently updating panel of a screen. Each tick the
// orchestrator runs ShouldUpdate, then Update when it said yes, for every
// component present in the screen layout. Keys reach HandleInput after the
// screen passed on them. Render must only read state.
type Component interface {
	ID() state.ComponentID
	// ShouldUpdate may keep tick bookkeeping but never mutates st.
	ShouldUpdate(st *state.State, elapsed int) bool
	// Update launches at most one fetch or consumes its completed result.
	Update(st *state.State) tea.Cmd
	// HandleInput reports whether the key was swallowed.
	HandleInput(st *state.State, msg tea.KeyMsg) (bool, tea.Cmd)
	Render(st *state.State, width, height int) string
}

// Mounter is implemented by components with mount or unmount hooks.
type Mounter interface {
	Mount(st *state.State)
	Unmount(st *state.State)
}

const (
	idNavigation     state.ComponentID = "navigation"
	idOptions        state.ComponentID = "options"
	idStories        state.ComponentID = "stories"
	idItemDetails    state.ComponentID = "item_details"
	idItemSummary    state.ComponentID = "item_summary"
	idComments       state.ComponentID = "comments"
	idNestedComments state.ComponentID = "nested_comments"
	idUserProfile    state.ComponentID = "user_profile"
	idSettings       state.ComponentID = "settings"
	idHelp           state.ComponentID = "help"
	idSearchTags     state.ComponentID = "search_tags"
	idSearchInput    state.ComponentID = "search_input"
	idSearchResults  state.ComponentID = "search_results"
	idFooter         state.ComponentID = "footer"
)

// Rect is a component's cell rectangle inside the terminal.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Layout places components. A component absent from it is neither ticked
// nor rendered.
type Layout map[state.ComponentID]Rect

// compose joins rendered components row by row. Rectangles sharing a Y form
// one row, ordered by X.
func compose(layout Layout, rendered map[state.ComponentID]string) string {
	type cell struct {
		rect Rect
		view string
	}
	rows := map[int][]cell{}
	for id, rect := range layout {
		rows[rect.Y] = append(rows[rect.Y], cell{rect: rect, view: rendered[id]})
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	var out []string
	for _, y := range ys {
		cells := rows[y]
		sort.Slice(cells, func(i, j int) bool { return cells[i].rect.X < cells[j].rect.X })
		parts := make([]string, 0, len(cells))
		for _, c := range cells {
			parts = append(parts, place(c.rect.Width, c.rect.Height, c.view))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// place clips or pads view to exactly width x height cells.
func place(width, height int, view string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return EmptyStyle.
		Width(width).MaxWidth(width).
		Height(height).MaxHeight(height).
		Render(view)
}

// column stacks rows of the given heights over the full width, starting at
// top. A height of -1 takes the remaining space.
func column(width, top, height int, ids []state.ComponentID, heights []int) Layout {
	fixed := 0
	for _, h := range heights {
		if h > 0 {
			fixed += h
		}
	}
	layout := Layout{}
	y := top
	for i, id := range ids {
		h := heights[i]
		if h < 0 {
			h = max(height-fixed, 0)
		}
		layout[id] = Rect{X: 0, Y: y, Width: width, Height: h}
		y += h
	}
	return layout
}

func renderHeader(title, subtitle string, width int) string {
	rows := []string{HeaderStyle.Render(truncateEnd(title, width-2))}
	if subtitle != "" {
		rows = append(rows, renderMuted(truncateEnd(subtitle, width-2)))
	}
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderPanel frames content in a bordered box filling width x height.
func renderPanel(content string, focused bool, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	return panelStyle(focused).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(content)
}

// renderLoader shows a spinner frame advanced by the orchestrator ticks.
func renderLoader(e *env, width, height int) string {
	frames := spinner.Dot.Frames
	frame := lipgloss.NewStyle().Foreground(PrimaryColor).Render(frames[e.ticks%len(frames)])
	return renderCentered(width, height, frame+" "+renderMuted(MsgLoading))
}
