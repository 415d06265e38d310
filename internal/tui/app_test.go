package tui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnterm/internal/config"
	"github.com/pders01/hnterm/internal/history"
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/router"
)

func TestHomeLoadsStories(t *testing.T) {
	ta := newTestApp(t)

	ta.settle(2)

	stories := component[*storiesComponent](t, ta)
	require.Len(t, stories.stories, 3)
	assert.Equal(t, "first", stories.stories[0].Title)
	assert.True(t, stories.loaded)
	assert.Contains(t, ta.View(), "first")
}

func TestHomeShowsSplashWhileLoading(t *testing.T) {
	ta := newTestApp(t)

	ta.settle(1)

	assert.Contains(t, ta.View(), MsgLoadingStories)
	ta.settle(1)
	assert.NotContains(t, ta.View(), MsgLoadingStories)
}

func TestHomeFetchFailureFlashes(t *testing.T) {
	ta := newTestApp(t)
	ta.gw.itemsErr = errBoom

	ta.settle(2)

	msg, ok := ta.state.Flash()
	require.True(t, ok)
	assert.Equal(t, MsgStoriesFetchFailed, msg)

	// A failed section is not retried on every tick.
	calls := ta.gw.batchCount()
	ta.settle(5)
	assert.Equal(t, calls, ta.gw.batchCount())
}

func TestStoriesSurviveScreenRebuild(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyDown)

	ta.press(keyEnter)
	require.Equal(t, router.KindItemDetails, ta.kind())
	ta.press(keyEsc)
	require.Equal(t, router.KindHome, ta.kind())

	stories := component[*storiesComponent](t, ta)
	assert.True(t, stories.loaded)
	assert.Equal(t, 1, stories.cursor)
}

func TestItemScreenLoadsCommentTree(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)

	ta.press(keyEnter)
	require.Equal(t, router.KindItemDetails, ta.kind())
	viewed, ok := ta.state.ViewedItem()
	require.True(t, ok)
	assert.Equal(t, 1, viewed.ID)
	assert.Equal(t, []int{10}, ta.state.Chain())

	ta.settle(2)

	assert.Len(t, ta.state.Comments(), 3)
	assert.False(t, ta.state.Switched())
	assert.Equal(t, []int{10}, ta.state.Chain())
	assert.Contains(t, ta.View(), "Comment 1 / 2")
}

func TestCommentNavigationIsDebounced(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyEnter)
	ta.settle(2)

	// The switch closed the gate for a few ticks.
	ta.press(keyDown)
	assert.Equal(t, []int{10}, ta.state.Chain())

	ta.settle(inputDebounceTicks)
	ta.press(keyDown)
	assert.Equal(t, []int{11}, ta.state.Chain())

	ta.press(keyDown)
	assert.Equal(t, []int{11}, ta.state.Chain(), "second press inside the window")

	ta.settle(inputDebounceTicks)
	ta.press(keyDown)
	assert.Equal(t, []int{10}, ta.state.Chain(), "focus wraps")
}

func TestNestedCommentsRoundTrip(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyEnter)
	ta.settle(2)

	ta.press(keyEnter)
	require.Equal(t, router.KindItemNestedComments, ta.kind())
	assert.Equal(t, []int{10, 20}, ta.state.Chain())

	ta.settle(2)
	nested := component[*commentsComponent](t, ta)
	assert.Equal(t, 10, nested.focus.parentID)
	assert.Equal(t, 20, nested.focus.focusedID)

	ta.press(keyEsc)
	require.Equal(t, router.KindItemDetails, ta.kind())
	assert.Equal(t, []int{10}, ta.state.Chain())

	ta.settle(2)
	top := component[*commentsComponent](t, ta)
	assert.Equal(t, 10, top.focus.focusedID)
	_, pending := ta.state.PreviouslyViewedCommentID()
	assert.False(t, pending)
}

func TestCommentWithoutRepliesDoesNotExpand(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyEnter)
	ta.settle(2 + inputDebounceTicks)
	ta.press(keyDown)
	require.Equal(t, []int{11}, ta.state.Chain())

	ta.press(keyEnter)
	assert.Equal(t, router.KindItemDetails, ta.kind())
}

func TestItemScreenRestoresHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	hist, err := history.Load(path)
	require.NoError(t, err)
	require.NoError(t, hist.Remember(1, 11))

	ta := newTestApp(t, func(_ *config.Config, d *Deps) { d.History = hist })
	ta.settle(2)
	ta.press(keyEnter)
	assert.Equal(t, []int{11}, ta.state.Chain())

	ta.settle(2)
	top := component[*commentsComponent](t, ta)
	assert.Equal(t, 11, top.focus.focusedID)
	assert.Equal(t, 1, top.focus.index)
}

func TestLeavingItemScreenRemembersFocus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	hist, err := history.Load(path)
	require.NoError(t, err)

	ta := newTestApp(t, func(_ *config.Config, d *Deps) { d.History = hist })
	ta.settle(2)
	ta.press(keyEnter)
	ta.settle(2 + inputDebounceTicks)
	ta.press(keyDown)
	ta.press(keyEsc)
	require.Equal(t, router.KindHome, ta.kind())

	reloaded, err := history.Load(path)
	require.NoError(t, err)
	id, ok := reloaded.TopLevelCommentID(1)
	require.True(t, ok)
	assert.Equal(t, 11, id)
}

func TestCommentsPanelToggle(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyEnter)

	layout := ta.router.Screen().Layout(ta.state, ta.width, ta.height)
	assert.Contains(t, layout, idComments)

	ta.press(keyTab)
	assert.False(t, ta.state.CommentsPanelVisible())
	layout = ta.router.Screen().Layout(ta.state, ta.width, ta.height)
	assert.NotContains(t, layout, idComments)

	// Hidden components are not ticked.
	calls := ta.gw.batchCount()
	ta.settle(3)
	assert.Equal(t, calls, ta.gw.batchCount())
}

func TestJobsNeverShowComments(t *testing.T) {
	ta := newTestApp(t)
	ta.gw.items[4] = hnapi.Item{ID: 4, Type: "job", Kind: hnapi.KindJob, By: "acme", Title: "hiring", Kids: []int{10}}

	ta.Push(router.ItemDetails(ta.gw.item(t, 4)))
	assert.False(t, ta.state.CommentsPanelVisible())

	ta.press(keyTab)
	layout := ta.router.Screen().Layout(ta.state, ta.width, ta.height)
	assert.NotContains(t, layout, idComments)
}

func TestLinksFromItemScreen(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyEnter)

	ta.press(keyRunes("o"))
	ta.press(keyRunes("y"))

	assert.Equal(t, []string{"https://example.com/first"}, ta.opener.opened)
	assert.Equal(t, []string{"https://example.com/first"}, ta.copied)
	msg, _ := ta.state.Flash()
	assert.Equal(t, MsgLinkCopied, msg)
}

func TestUserProfileLoadFailurePops(t *testing.T) {
	ta := newTestApp(t)
	ta.Push(router.UserProfile("ghost"))
	require.Equal(t, router.KindUserProfile, ta.kind())
	assert.Equal(t, "ghost", ta.state.ViewedUserID())

	ta.settle(2)

	assert.Equal(t, router.KindHome, ta.kind())
	assert.Empty(t, ta.state.ViewedUserID())
	msg, ok := ta.state.Flash()
	require.True(t, ok)
	assert.Equal(t, MsgUserLoadFailed("ghost"), msg)
}

func TestUserProfileFromStory(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)

	ta.press(keyRunes("u"))
	require.Equal(t, router.KindUserProfile, ta.kind())
	ta.settle(2)

	profile := component[*userProfileComponent](t, ta)
	require.NotNil(t, profile.user)
	assert.Equal(t, 1234, profile.user.Karma)
	assert.Contains(t, ta.View(), "2 submissions")
}

func TestNavigationReplacesSection(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)

	ta.press(keyRight)

	assert.Equal(t, 1, ta.router.Depth())
	assert.Equal(t, hnapi.SectionAsk, ta.router.Current().Section)
	assert.Equal(t, hnapi.SectionAsk, ta.state.Section())

	ta.settle(2)
	stories := component[*storiesComponent](t, ta)
	require.Len(t, stories.stories, 1)
	assert.Equal(t, "second", stories.stories[0].Title)
}

func TestSortingToggleRefetches(t *testing.T) {
	ta := newTestApp(t)
	ta.gw.listings[hnapi.ListingNew] = []int{3}
	ta.settle(2)

	ta.press(keyRunes("s"))
	assert.Equal(t, hnapi.SortingNew, ta.state.Sorting())

	ta.settle(2)
	stories := component[*storiesComponent](t, ta)
	require.Len(t, stories.stories, 1)
	assert.Equal(t, "third", stories.stories[0].Title)
}

func TestStoriesRefreshKeepsFocusedStory(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyDown)
	stories := component[*storiesComponent](t, ta)
	require.Equal(t, 2, stories.stories[stories.cursor].ID)

	ta.gw.listings[hnapi.ListingTop] = []int{3, 1, 2}
	stories.ticks = updateCadence
	ta.settle(2)

	require.Len(t, stories.stories, 3)
	assert.Equal(t, 2, stories.cursor)
	assert.Equal(t, 2, stories.stories[stories.cursor].ID)

	// A vanished story falls back to the first one.
	ta.gw.listings[hnapi.ListingTop] = []int{3, 1}
	stories.ticks = updateCadence
	ta.settle(2)

	assert.Equal(t, 0, stories.cursor)
	assert.Equal(t, 3, stories.stories[0].ID)
}

func TestSortingChangeResetsFocus(t *testing.T) {
	ta := newTestApp(t)
	ta.gw.listings[hnapi.ListingNew] = []int{3, 2}
	ta.settle(2)
	ta.press(keyDown)

	ta.press(keyRunes("s"))
	ta.settle(2)

	stories := component[*storiesComponent](t, ta)
	require.Len(t, stories.stories, 2)
	assert.Equal(t, 0, stories.cursor)
	assert.Equal(t, 3, stories.stories[stories.cursor].ID)
}

func TestSortingChangeFailureDropsOldStories(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.gw.listingErr = errBoom

	ta.press(keyRunes("s"))
	ta.settle(2)

	stories := component[*storiesComponent](t, ta)
	assert.Equal(t, hnapi.SortingNew, stories.sorting)
	assert.Empty(t, stories.stories)
	assert.Zero(t, stories.cursor)
	view := ta.View()
	assert.Contains(t, view, MsgStoriesFetchFailed)
	assert.NotContains(t, view, "first")

	// Enter has nothing to open.
	ta.press(keyEnter)
	assert.Equal(t, router.KindHome, ta.kind())
}

func TestCommentsFetchFailureAfterSwitch(t *testing.T) {
	ta := newTestApp(t)
	ta.settle(2)
	ta.press(keyEnter)
	ta.settle(2)
	require.Len(t, ta.state.Comments(), 3)
	ta.press(keyEsc)

	ta.gw.itemsErr = errBoom
	ta.press(keyDown, keyDown, keyEnter)
	viewed, _ := ta.state.ViewedItem()
	require.Equal(t, 3, viewed.ID)
	ta.settle(3)

	view := ta.View()
	assert.Contains(t, view, MsgCommentsFetchFailed)
	assert.NotContains(t, view, MsgCommentDisplayError)
}

func TestForceQuitFromAnywhere(t *testing.T) {
	ta := newTestApp(t)
	ta.Push(router.Settings())

	_, cmd := ta.Update(keyCtrlC)

	assert.True(t, ta.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, ta.View())
}

func TestViewBeforeWindowSize(t *testing.T) {
	app := NewApp(Deps{Config: config.TestConfig(), Gateway: newFakeGateway()})
	assert.Empty(t, app.View())
	assert.NotNil(t, app.Init())
}
