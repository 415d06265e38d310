package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnterm/internal/config"
	"github.com/pders01/hnterm/internal/history"
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/router"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeGateway struct {
	mu       sync.Mutex
	items    map[int]hnapi.Item
	listings map[hnapi.Listing][]int
	users    map[string]hnapi.User

	itemsErr   error
	listingErr error
	batches    [][]int
}

func newFakeGateway() *fakeGateway {
	posted := testNow.Add(-2 * time.Hour).Unix()
	story := func(id int, title string, kids ...int) hnapi.Item {
		return hnapi.Item{ID: id, Type: "story", Kind: hnapi.KindStory, By: "alice", Time: posted,
			Title: title, URL: "https://example.com/" + title, Score: 42, Kids: kids, Descendants: len(kids)}
	}
	comment := func(id, parent int, by string, kids ...int) hnapi.Item {
		return hnapi.Item{ID: id, Type: "comment", Kind: hnapi.KindComment, By: by, Time: posted,
			Parent: parent, Text: "<p>comment " + by + "</p>", Kids: kids}
	}

	return &fakeGateway{
		items: map[int]hnapi.Item{
			1:  story(1, "first", 10, 11),
			2:  story(2, "second"),
			3:  story(3, "third", 30),
			10: comment(10, 1, "bob", 20),
			11: comment(11, 1, "carol"),
			20: comment(20, 10, "dave"),
			30: comment(30, 3, "erin"),
		},
		listings: map[hnapi.Listing][]int{
			hnapi.ListingTop: {1, 2, 3},
			hnapi.ListingAsk: {2},
		},
		users: map[string]hnapi.User{
			"alice": {ID: "alice", Created: testNow.AddDate(-3, 0, 0).Unix(), Karma: 1234, About: "hello", Submitted: []int{1, 2}},
		},
	}
}

func (g *fakeGateway) FetchItems(_ context.Context, ids []int) ([]hnapi.Item, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.batches = append(g.batches, append([]int(nil), ids...))
	if g.itemsErr != nil {
		return nil, g.itemsErr
	}
	out := make([]hnapi.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := g.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (g *fakeGateway) FetchListing(_ context.Context, listing hnapi.Listing) ([]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listingErr != nil {
		return nil, g.listingErr
	}
	return g.listings[listing], nil
}

func (g *fakeGateway) FetchUser(_ context.Context, username string) (hnapi.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.users[username]
	if !ok {
		return hnapi.User{}, hnapi.ErrUserNotFound
	}
	return u, nil
}

func (g *fakeGateway) batchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.batches)
}

func (g *fakeGateway) item(t *testing.T, id int) item.Item {
	t.Helper()
	it, err := item.FromAPI(g.items[id], testNow)
	require.NoError(t, err)
	return it
}

type searchCall struct {
	kind  string
	query string
}

type fakeSearch struct {
	mu    sync.Mutex
	calls []searchCall
	hits  hnapi.Hits
	err   error
}

func (s *fakeSearch) record(kind, query string) (hnapi.Hits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, searchCall{kind: kind, query: query})
	return s.hits, s.err
}

func (s *fakeSearch) SearchStories(_ context.Context, query string, _ ...hnapi.Tag) (hnapi.Hits, error) {
	return s.record("stories", query)
}

func (s *fakeSearch) SearchComments(_ context.Context, query string) (hnapi.Hits, error) {
	return s.record("comments", query)
}

func (s *fakeSearch) SearchUserStories(_ context.Context, username string) (hnapi.Hits, error) {
	return s.record("user", username)
}

func (s *fakeSearch) Calls() []searchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]searchCall(nil), s.calls...)
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(link string) error {
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, link)
	return nil
}

type testApp struct {
	*App
	gw     *fakeGateway
	search *fakeSearch
	opener *fakeOpener
	copied []string
}

func newTestApp(t *testing.T, configure ...func(*config.Config, *Deps)) *testApp {
	t.Helper()

	cfg := config.TestConfig()
	cfg.UI.DisplayCommentsPanelByDefault = true
	hist, err := history.Load("")
	require.NoError(t, err)

	ta := &testApp{gw: newFakeGateway(), search: &fakeSearch{}, opener: &fakeOpener{}}
	deps := Deps{
		Config:  cfg,
		Gateway: ta.gw,
		Search:  ta.search,
		History: hist,
		Opener:  ta.opener,
		Copy: func(link string) error {
			ta.copied = append(ta.copied, link)
			return nil
		},
		Now: func() time.Time { return testNow },
	}
	for _, fn := range configure {
		fn(cfg, &deps)
	}

	ta.App = NewApp(deps)
	ta.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return ta
}

// settle runs n orchestrator ticks, executing every command synchronously.
func (ta *testApp) settle(n int) {
	for i := 0; i < n; i++ {
		run(ta.onTick())
	}
}

func (ta *testApp) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		_, cmd := ta.Update(msg)
		if !ta.quitting {
			run(cmd)
		}
	}
}

func (ta *testApp) kind() router.Kind {
	return ta.router.Current().Kind
}

// component returns the first component of type T on the current screen.
func component[T Component](t *testing.T, ta *testApp) T {
	t.Helper()
	for _, c := range ta.router.Screen().Components() {
		if v, ok := c.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T on the %s screen", zero, ta.router.Current())
	return zero
}

// run executes cmd and any batch it expands to. Tests drive ticks by hand
// through settle, so no tick command ever reaches run.
func run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			run(c)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

type fakeNavigator struct {
	pushed   []router.Route
	pops     int
	replaced []router.Route
	current  router.Route
	quit     bool
}

func (n *fakeNavigator) Push(r router.Route)    { n.pushed = append(n.pushed, r) }
func (n *fakeNavigator) Pop()                   { n.pops++ }
func (n *fakeNavigator) Replace(r router.Route) { n.replaced = append(n.replaced, r) }
func (n *fakeNavigator) Current() router.Route  { return n.current }
func (n *fakeNavigator) IsOnRootScreen() bool   { return n.current.IsHome() }
func (n *fakeNavigator) Quit()                  { n.quit = true }

// newTestEnv builds a standalone env for component tests.
func newTestEnv(gw Gateway) (*env, *fakeNavigator) {
	nav := &fakeNavigator{current: router.Home(hnapi.SectionHome)}
	return &env{
		Deps: Deps{
			Config:  config.TestConfig(),
			Gateway: gw,
			Now:     func() time.Time { return testNow },
		},
		keys:     input.DefaultKeyMap(),
		nav:      nav,
		markdown: newMarkdownRenderer(),
	}, nav
}

var errBoom = errors.New("boom")
