package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pders01/hnterm/internal/comments"
	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/search"
	"github.com/pders01/hnterm/internal/state"
)

const (
	// fetchTimeout bounds one background fetch, a whole comment tree included.
	fetchTimeout = 60 * time.Second

	storiesPerPage = 50
	seenSearchHits = 30
)

type storiesResult struct {
	section hnapi.Section
	sorting hnapi.Sorting
	stories []item.Item
	err     error
}

// fetchStories loads a listing and its first displayable stories.
func (e *env) fetchStories(section hnapi.Section, sorting hnapi.Sorting) storiesResult {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	res := storiesResult{section: section, sorting: sorting}
	ids, err := e.Gateway.FetchListing(ctx, hnapi.ListingFor(section, sorting))
	if err != nil {
		res.err = wrapErr("fetching listing", err)
		return res
	}
	raws, err := e.Gateway.FetchItems(ctx, ids)
	if err != nil {
		res.err = wrapErr("fetching stories", err)
		return res
	}

	stories := item.FromAPIItems(raws, e.now())
	if len(stories) > storiesPerPage {
		stories = stories[:storiesPerPage]
	}
	res.stories = stories
	e.rememberSeen(stories)
	return res
}

type commentsResult struct {
	itemID   int
	parentID int
	comments item.Comments
	err      error
}

// fetchComments walks the comment tree under roots for the viewed item.
func (e *env) fetchComments(itemID, parentID int, roots []int, cached map[int]struct{}, force bool) commentsResult {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	res := commentsResult{itemID: itemID, parentID: parentID}
	raws, err := comments.Fetch(ctx, e.Gateway, roots, cached, force)
	if err != nil {
		res.err = wrapErr("fetching comments", err)
		return res
	}
	res.comments = item.CommentsFromAPI(raws, e.now())

	seen := make([]item.Item, 0, len(res.comments))
	for _, c := range res.comments {
		seen = append(seen, c)
	}
	e.rememberSeen(seen)
	return res
}

type userResult struct {
	id   string
	user item.User
	err  error
}

func (e *env) fetchUser(id string) userResult {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	raw, err := e.Gateway.FetchUser(ctx, id)
	if err != nil {
		return userResult{id: id, err: wrapErr("fetching user", err)}
	}
	return userResult{id: id, user: item.UserFromAPI(raw)}
}

type searchResult struct {
	query string
	tag   state.SearchTag
	hits  []item.Hit
	err   error
}

// runSearch queries the search API, or the local index for the Seen tag.
func (e *env) runSearch(query string, tag state.SearchTag) searchResult {
	res := searchResult{query: query, tag: tag}
	query = strings.TrimSpace(query)

	if tag == state.SearchSeen {
		if e.Seen == nil {
			res.err = uiErr("local search is unavailable")
			return res
		}
		found, err := e.Seen.Search(query, seenSearchHits)
		if err != nil {
			res.err = wrapErr("searching seen items", err)
			return res
		}
		res.hits = hitsFromSeen(found, e.now())
		return res
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	var (
		hits hnapi.Hits
		err  error
	)
	switch tag {
	case state.SearchComments:
		hits, err = e.Search.SearchComments(ctx, query)
	case state.SearchUsername:
		hits, err = e.Search.SearchUserStories(ctx, query)
	default:
		hits, err = e.Search.SearchStories(ctx, query)
	}
	if err != nil {
		res.err = wrapErr("searching", err)
		return res
	}
	res.hits = item.HitsFromAPI(hits.Hits, e.now())
	debuglog.Debugf("search %q (%s): %d hits", query, tag, len(res.hits))
	return res
}

func hitsFromSeen(results []*search.Result, now time.Time) []item.Hit {
	hits := make([]item.Hit, 0, len(results))
	for _, r := range results {
		s := r.Item
		if s == nil {
			continue
		}
		since := ""
		if !s.PostedAt.IsZero() {
			since = item.FormatPostedSince(s.PostedAt, now)
		}
		h := item.Hit{ID: s.ID, URL: s.URL, IsComment: s.IsComment(), PostedSince: since}
		if h.IsComment {
			h.Title = truncateEnd(strings.Join(strings.Fields(s.Text), " "), 120)
			h.Meta = strings.TrimSpace("by " + s.By + " " + since)
		} else {
			h.Title = s.Title
			h.Meta = strings.TrimSpace(fmt.Sprintf("%d %s", s.Score, pluralize(s.Score, "point")) + " by " + s.By + " " + since)
		}
		hits = append(hits, h)
	}
	return hits
}
