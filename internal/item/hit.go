package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"github.com/pders01/hnterm/internal/hnapi"
)

const hitTitleWidth = 120

// Hit is a display-ready search result.
type Hit struct {
	ID          int
	Title       string
	Meta        string
	URL         string
	IsComment   bool
	PostedSince string
}

// HackerNewsLink is the result's page on the website.
func (h Hit) HackerNewsLink() string {
	return fmt.Sprintf(hackerNewsItemLink, h.ID)
}

// Link is the external URL, falling back to the HackerNews page.
func (h Hit) Link() string {
	if h.URL != "" {
		return h.URL
	}
	return h.HackerNewsLink()
}

// HitFromAPI converts an Algolia hit. Hits whose objectID is not numeric fail
// with ErrItemProcessing.
func HitFromAPI(raw hnapi.Hit, now time.Time) (Hit, error) {
	id, err := raw.ItemID()
	if err != nil {
		return Hit{}, fmt.Errorf("%w: search hit %q: %v", ErrItemProcessing, raw.ObjectID, err)
	}

	since := ""
	if raw.CreatedAtI > 0 {
		since = FormatPostedSince(time.Unix(raw.CreatedAtI, 0), now)
	}

	if raw.IsComment() {
		text := strings.Join(strings.Fields(PlainText(raw.CommentText)), " ")
		meta := fmt.Sprintf("by %s", raw.Author)
		if raw.StoryTitle != "" {
			meta += " on " + raw.StoryTitle
		}
		return Hit{
			ID:          id,
			Title:       truncate.StringWithTail(text, hitTitleWidth, "…"),
			Meta:        joinMeta(meta, since),
			URL:         raw.StoryURL,
			IsComment:   true,
			PostedSince: since,
		}, nil
	}

	return Hit{
		ID:          id,
		Title:       raw.Title,
		Meta:        joinMeta(fmt.Sprintf("%d points by %s", raw.Points, raw.Author), since),
		URL:         raw.URL,
		PostedSince: since,
	}, nil
}

func joinMeta(meta, since string) string {
	if since == "" {
		return meta
	}
	return meta + " " + since
}

// HitsFromAPI converts a page of hits, skipping unusable ones.
func HitsFromAPI(raws []hnapi.Hit, now time.Time) []Hit {
	hits := make([]Hit, 0, len(raws))
	for _, raw := range raws {
		h, err := HitFromAPI(raw, now)
		if err != nil {
			continue
		}
		hits = append(hits, h)
	}
	return hits
}
