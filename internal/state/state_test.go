package state

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnterm/internal/item"
)

func comments(entries ...item.Item) item.Comments {
	c := make(item.Comments, len(entries))
	for _, e := range entries {
		c[e.ID] = e
	}
	return c
}

func TestSetCommentsReplacesAfterSwitchThenMerges(t *testing.T) {
	s := New()
	s.SetViewedItem(item.Item{ID: 100, Kids: []int{1, 2}})
	assert.True(t, s.Switched())
	assert.Nil(t, s.Comments())

	s.SetComments(comments(item.Item{ID: 1}, item.Item{ID: 2}))
	assert.False(t, s.Switched())
	assert.Len(t, s.Comments(), 2)

	s.SetComments(comments(item.Item{ID: 3}))
	assert.Len(t, s.Comments(), 3, "second write merges")

	s.SetViewedItem(item.Item{ID: 200})
	assert.True(t, s.Switched())
	s.SetComments(comments(item.Item{ID: 9}))
	assert.Equal(t, []int{9}, sortedKeys(s.Comments()), "first write after a switch replaces")
}

func TestSetViewedItemSameIDKeepsCache(t *testing.T) {
	s := New()
	s.SetViewedItem(item.Item{ID: 100})
	s.SetComments(comments(item.Item{ID: 1}))

	s.SetViewedItem(item.Item{ID: 100, Title: "again"})
	assert.False(t, s.Switched())
	s.SetComments(comments(item.Item{ID: 2}))
	assert.Len(t, s.Comments(), 2)

	viewed, ok := s.ViewedItem()
	require.True(t, ok)
	assert.Equal(t, "again", viewed.Title)
}

func TestMergeIdempotence(t *testing.T) {
	s := New()
	s.SetViewedItem(item.Item{ID: 100})
	s.SetComments(comments(item.Item{ID: 1, Text: "a"}, item.Item{ID: 2, Text: "b"}))
	before := copyComments(s.Comments())

	s.SetComments(item.Comments{})
	assert.Equal(t, before, s.Comments(), "empty merge is a no-op")

	fresh := comments(item.Item{ID: 2, Text: "b2"}, item.Item{ID: 3, Text: "c"})
	s.SetComments(fresh)
	once := copyComments(s.Comments())
	s.SetComments(fresh)
	assert.Equal(t, once, s.Comments(), "merging twice equals merging once")
}

func TestMergeFreshEntriesWin(t *testing.T) {
	s := New()
	s.SetViewedItem(item.Item{ID: 100})
	s.SetComments(comments(item.Item{ID: 1, Text: "stale"}, item.Item{ID: 2, Text: "kept"}))

	s.SetComments(comments(item.Item{ID: 1, Text: "fresh"}))

	c, ok := s.Comment(1)
	require.True(t, ok)
	assert.Equal(t, "fresh", c.Text)
	c, ok = s.Comment(2)
	require.True(t, ok)
	assert.Equal(t, "kept", c.Text, "entries absent from a fetch are preserved")
}

func TestDropMissingKids(t *testing.T) {
	s := New()
	assert.Nil(t, s.DropMissingKids())

	s.SetViewedItem(item.Item{ID: 100, Kids: []int{1, 2, 3}})
	s.SetComments(comments(item.Item{ID: 3}, item.Item{ID: 1}))

	assert.Equal(t, []int{1, 3}, s.DropMissingKids())
	viewed, _ := s.ViewedItem()
	assert.Equal(t, []int{1, 3}, viewed.Kids)
}

func TestChainNeverHoldsAdjacentDuplicates(t *testing.T) {
	s := New()
	for _, id := range []int{1, 1, 2, 2, 2, 1, 3, 3} {
		s.PushChain(id)
		chain := s.Chain()
		for i := 1; i < len(chain); i++ {
			assert.NotEqual(t, chain[i-1], chain[i])
		}
	}
	assert.Equal(t, []int{1, 2, 1, 3}, s.Chain())

	s.PushChain(3)
	assert.Len(t, s.Chain(), 4, "pushing the last element is a no-op")
}

func TestChainNavigation(t *testing.T) {
	s := New()
	_, ok := s.PopChain()
	assert.False(t, ok, "empty chain never underflows")
	assert.Empty(t, s.Chain())

	s.ReplaceLatestInChain(5)
	assert.Equal(t, []int{5}, s.Chain())

	s.PushChain(7)
	s.ReplaceLatestInChain(8)
	assert.Equal(t, []int{5, 8}, s.Chain())

	root, _ := s.ChainRoot()
	parent, _ := s.ChainParent()
	latest, _ := s.LatestInChain()
	assert.Equal(t, 5, root)
	assert.Equal(t, 5, parent)
	assert.Equal(t, 8, latest)

	id, ok := s.PopChain()
	assert.True(t, ok)
	assert.Equal(t, 8, id)
	_, ok = s.ChainParent()
	assert.False(t, ok)

	s.ResetChain()
	assert.Empty(t, s.Chain())
}

func TestChainReturnsCopy(t *testing.T) {
	s := New()
	s.PushChain(1)
	chain := s.Chain()
	chain[0] = 42
	assert.Equal(t, []int{1}, s.Chain())
}

func TestPreviouslyViewedCommentID(t *testing.T) {
	s := New()
	_, ok := s.PreviouslyViewedCommentID()
	assert.False(t, ok)

	s.SetPreviouslyViewedCommentID(12)
	id, ok := s.PreviouslyViewedCommentID()
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	s.ClearPreviouslyViewedCommentID()
	_, ok = s.PreviouslyViewedCommentID()
	assert.False(t, ok)
}

func TestSearchTags(t *testing.T) {
	names := make([]string, 0, 4)
	for _, tag := range SearchTags() {
		names = append(names, tag.String())
	}
	assert.Equal(t, []string{"Stories", "Comments", "Username", "Seen"}, names)
	assert.Equal(t, "Unknown", SearchTag(9).String())
}

func sortedKeys(c item.Comments) []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func copyComments(c item.Comments) item.Comments {
	out := make(item.Comments, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
