package router

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/state"
)

type fakeScreen struct {
	route  Route
	events *[]string
}

func (f *fakeScreen) Route() Route { return f.route }

func (f *fakeScreen) Mount(st *state.State) {
	*f.events = append(*f.events, "mount "+f.route.String())
	if f.route.Kind == KindItemDetails {
		st.SetViewedItem(f.route.Item)
	}
}

func (f *fakeScreen) Unmount(*state.State) {
	*f.events = append(*f.events, "unmount "+f.route.String())
}

func newRouter(t *testing.T) (*Router[*fakeScreen], *state.State, *[]string) {
	t.Helper()
	events := &[]string{}
	st := state.New()
	r := New(Home(hnapi.SectionHome), func(route Route) *fakeScreen {
		return &fakeScreen{route: route, events: events}
	}, st)
	return r, st, events
}

func TestPushMountsWithState(t *testing.T) {
	r, st, events := newRouter(t)
	story := item.Item{ID: 42, Title: "story"}

	r.Push(ItemDetails(story), st)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, KindItemDetails, r.Screen().Route().Kind)
	viewed, ok := st.ViewedItem()
	require.True(t, ok)
	assert.Equal(t, 42, viewed.ID)
	assert.Equal(t, []string{"mount home(Home)", "unmount home(Home)", "mount item-details(42)"}, *events)
}

func TestPopRebuildsScreenFromRoute(t *testing.T) {
	r, st, _ := newRouter(t)
	r.Push(ItemDetails(item.Item{ID: 1}), st)
	details := r.Screen()
	r.Push(UserProfile("pg"), st)

	require.NoError(t, r.Pop(st))
	assert.Equal(t, KindItemDetails, r.Current().Kind)
	assert.NotSame(t, details, r.Screen(), "screens are rebuilt, not retained")
	assert.Equal(t, 1, r.Screen().Route().Item.ID)
}

func TestPopLastFrameIsRejected(t *testing.T) {
	r, st, events := newRouter(t)
	before := len(*events)

	err := r.Pop(st)
	assert.True(t, errors.Is(err, ErrEmptyStack))
	assert.Equal(t, 1, r.Depth())
	assert.Len(t, *events, before, "rejected pop does not touch the screen")
}

func TestStackNeverEmpties(t *testing.T) {
	r, st, _ := newRouter(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			r.Push(Settings(), st)
		} else {
			_ = r.Pop(st)
		}
		require.GreaterOrEqual(t, r.Depth(), 1)
	}
	for r.Depth() > 1 {
		require.NoError(t, r.Pop(st))
	}
	assert.True(t, r.IsOnRootScreen())
	assert.Error(t, r.Pop(st))
}

func TestReplaceKeepsDepth(t *testing.T) {
	r, st, _ := newRouter(t)

	r.Replace(Home(hnapi.SectionAsk), st)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, hnapi.SectionAsk, r.Current().Section)
	assert.True(t, r.IsOnRootScreen(), "switching Home sections stays on the root screen")

	r.Push(Help(), st)
	assert.False(t, r.IsOnRootScreen())
}

func TestRouteString(t *testing.T) {
	assert.Equal(t, "home(Show HN)", Home(hnapi.SectionShow).String())
	assert.Equal(t, "item-nested-comments(7)", ItemNestedComments(item.Item{ID: 7}).String())
	assert.Equal(t, "user-profile(dang)", UserProfile("dang").String())
	assert.Equal(t, "search-help", SearchHelp().String())
}
