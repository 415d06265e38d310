package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.SaveItems([]item.Item{
		{ID: 1, Kind: hnapi.KindStory, Title: "Golang generics in practice", By: "rsc", URL: "https://go.dev/blog/generics"},
		{ID: 2, Kind: hnapi.KindStory, Title: "Rewriting a database in Zig", By: "andrew"},
		{ID: 3, Kind: hnapi.KindComment, Text: "<p>I moved our <i>golang</i> services to generics last year", By: "gopher", Parent: 1},
	})
	require.NoError(t, err)
	return store
}

func TestSearchMinLength(t *testing.T) {
	engine := NewEngine(&storage.Store{})

	tests := []struct {
		name  string
		query string
	}{
		{name: "Empty query", query: ""},
		{name: "Single character query", query: "a"},
		{name: "Whitespace only", query: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.Search(tt.query, 10)
			assert.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results, "short queries should return empty results")
		})
	}
}

func TestEngineSearchRanksTitleMatchesFirst(t *testing.T) {
	engine := NewEngine(seededStore(t))

	results, err := engine.Search("generics", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Item.ID, "title match outranks a comment body match")
	assert.Equal(t, 3, results[1].Item.ID)
	assert.True(t, results[1].Item.IsComment())

	fields := map[string]bool{}
	for _, m := range results[0].Matches {
		fields[m.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["url"])
}

func TestEngineSearchByAuthor(t *testing.T) {
	engine := NewEngine(seededStore(t))

	results, err := engine.Search("andrew", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Item.ID)
}

func TestEngineSearchLimit(t *testing.T) {
	engine := NewEngine(seededStore(t))

	results, err := engine.Search("golang generics", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"show", "hn", "go"}, tokenize("Show HN: Go"))
	assert.Equal(t, []string{"go", "24"}, tokenize("go 1.24"))
	assert.Empty(t, tokenize("a b c"))
}

func TestBestSnippet(t *testing.T) {
	short := "just a few words"
	assert.Equal(t, short, bestSnippet(short, []string{"few"}, 200))

	long := ""
	for i := 0; i < 60; i++ {
		long += "filler "
	}
	long += "needle here"
	snippet := bestSnippet(long, []string{"needle"}, 80)
	assert.Contains(t, snippet, "needle")
}
