// Package search finds previously seen stories and comments.
package search

import "github.com/pders01/hnterm/internal/storage"

// Result is one matching seen item.
type Result struct {
	Item    *storage.SeenItem
	Score   float64
	Matches []Match
}

// Match represents where text was found.
type Match struct {
	Field  string // "title", "text", "by", "url"
	Text   string
	Weight float64
}

// Searcher defines the minimal search API used by the TUI.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
}

// SeenListener is implemented by engines that maintain an external index and
// want to be told about newly displayed items.
type SeenListener interface {
	OnItemsSeen(items []storage.SeenItem)
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}
