// Package item turns raw API items into display-ready values.
package item

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/hnapi"
)

// ErrItemProcessing marks an item that is structurally unusable for display.
var ErrItemProcessing = errors.New("item processing error")

const (
	hackerNewsItemLink = "https://news.ycombinator.com/item?id=%d"
	apiItemLink        = "https://hacker-news.firebaseio.com/v0/item/%d.json?print=pretty"
	apiHostname        = "hacker-news.firebaseio.com"
)

// Item is the display-ready shape of a story, comment, job or poll.
type Item struct {
	ID          int        `json:"id"`
	Kind        hnapi.Kind `json:"kind"`
	PostedAt    time.Time  `json:"posted_at"`
	PostedSince string     `json:"posted_since"`
	By          string     `json:"by"`
	Title       string     `json:"title,omitempty"`
	Text        string     `json:"text,omitempty"`
	Score       int        `json:"score"`
	URL         string     `json:"url,omitempty"`
	URLHostname string     `json:"url_hostname,omitempty"`
	Kids        []int      `json:"kids,omitempty"`
	Parent      int        `json:"parent,omitempty"`
	Descendants int        `json:"descendants"`
	IsComment   bool       `json:"is_comment"`
	IsJob       bool       `json:"is_job"`
}

// HasTitle reports whether the item carries a title (stories, jobs, polls).
func (i Item) HasTitle() bool {
	return i.Title != ""
}

// HasKids reports whether the item has at least one child.
func (i Item) HasKids() bool {
	return len(i.Kids) > 0
}

// HackerNewsLink is the item page on the website.
func (i Item) HackerNewsLink() string {
	return fmt.Sprintf(hackerNewsItemLink, i.ID)
}

// Link is the external URL, falling back to the HackerNews page.
func (i Item) Link() string {
	if i.URL != "" {
		return i.URL
	}
	return i.HackerNewsLink()
}

// FromAPI converts a raw item. Placeholder variants, poll options and
// unparseable URLs fail with ErrItemProcessing.
func FromAPI(raw hnapi.Item, now time.Time) (Item, error) {
	if raw.IsPlaceholder() || raw.Kind == hnapi.KindPollOption {
		return Item{}, fmt.Errorf("%w: item %d is %s", ErrItemProcessing, raw.ID, raw.Kind)
	}

	postedAt := time.Unix(raw.Time, 0).UTC()
	it := Item{
		ID:          raw.ID,
		Kind:        raw.Kind,
		PostedAt:    postedAt,
		PostedSince: FormatPostedSince(postedAt, now),
		By:          raw.By,
		Title:       raw.Title,
		Text:        raw.Text,
		Score:       raw.Score,
		Kids:        raw.Kids,
		Parent:      raw.Parent,
		Descendants: raw.Descendants,
		IsComment:   raw.Kind == hnapi.KindComment,
		IsJob:       raw.Kind == hnapi.KindJob,
	}

	switch raw.Kind {
	case hnapi.KindComment, hnapi.KindPoll:
		it.URL = fmt.Sprintf(apiItemLink, raw.ID)
		it.URLHostname = apiHostname
	default:
		if raw.URL != "" {
			host, err := hostname(raw.URL)
			if err != nil {
				return Item{}, fmt.Errorf("%w: item %d: %v", ErrItemProcessing, raw.ID, err)
			}
			it.URL = raw.URL
			it.URLHostname = host
		}
	}

	if it.IsJob {
		it.Kids = nil
	}
	return it, nil
}

func hostname(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", raw, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("URL %q has no hostname", raw)
	}
	return u.Hostname(), nil
}

// FromAPIItems converts a batch, logging and skipping unusable items.
func FromAPIItems(raws []hnapi.Item, now time.Time) []Item {
	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		it, err := FromAPI(raw, now)
		if err != nil {
			debuglog.Warnf("skipping item: %v", err)
			continue
		}
		items = append(items, it)
	}
	return items
}

// Comments is the flat comment cache of one viewed item, keyed by id.
type Comments map[int]Item

// CommentsFromAPI converts a fetcher result, skipping unusable items.
func CommentsFromAPI(raws map[int]hnapi.Item, now time.Time) Comments {
	comments := make(Comments, len(raws))
	for id, raw := range raws {
		it, err := FromAPI(raw, now)
		if err != nil {
			debuglog.Warnf("skipping comment %d: %v", id, err)
			continue
		}
		comments[id] = it
	}
	return comments
}

// IDs returns the set of cached ids.
func (c Comments) IDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(c))
	for id := range c {
		ids[id] = struct{}{}
	}
	return ids
}
