package storage

import (
	"time"

	"github.com/pders01/hnterm/internal/item"
)

// SeenItem is a story or comment the client displayed at least once.
type SeenItem struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text,omitempty"`
	URL       string    `json:"url,omitempty"`
	By        string    `json:"by"`
	Parent    int       `json:"parent,omitempty"`
	Score     int       `json:"score"`
	PostedAt  time.Time `json:"posted_at"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

func seenFromItem(it item.Item, now time.Time) SeenItem {
	return SeenItem{
		ID:        it.ID,
		Kind:      it.Kind.String(),
		Title:     it.Title,
		Text:      item.PlainText(it.Text),
		URL:       it.URL,
		By:        it.By,
		Parent:    it.Parent,
		Score:     it.Score,
		PostedAt:  it.PostedAt,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// IsComment reports whether the item was seen as a comment.
func (s SeenItem) IsComment() bool {
	return s.Kind == "comment"
}
