package hnapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pders01/hnterm/internal/config"
)

const defaultHitsPerPage = 30

// Tag is an Algolia search tag. Tags combine as a comma separated AND.
type Tag string

const (
	TagStory      Tag = "story"
	TagComment    Tag = "comment"
	TagPoll       Tag = "poll"
	TagPollOption Tag = "pollopt"
	TagShowHN     Tag = "show_hn"
	TagAskHN      Tag = "ask_hn"
	TagFrontPage  Tag = "front_page"
)

// AuthorTag restricts hits to one author.
func AuthorTag(username string) Tag {
	return Tag("author_" + username)
}

// StoryTag restricts hits to one story thread.
func StoryTag(id int) Tag {
	return Tag("story_" + strconv.Itoa(id))
}

func joinTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// NumericField is a numeric attribute usable in numericFilters.
type NumericField string

const (
	FieldCreatedAt     NumericField = "created_at_i"
	FieldPoints        NumericField = "points"
	FieldCommentsCount NumericField = "num_comments"
)

// NumericFilter is a condition such as points>=100.
type NumericFilter struct {
	Field    NumericField
	Operator string // one of < <= = > >=
	Value    int64
}

func (f NumericFilter) String() string {
	return fmt.Sprintf("%s%s%d", f.Field, f.Operator, f.Value)
}

// Hit is one search result. Story hits carry a title; comment hits carry
// comment text and the story they belong to.
type Hit struct {
	ObjectID    string   `json:"objectID"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Author      string   `json:"author"`
	Points      int      `json:"points"`
	NumComments int      `json:"num_comments"`
	StoryText   string   `json:"story_text"`
	CommentText string   `json:"comment_text"`
	StoryID     int      `json:"story_id"`
	StoryTitle  string   `json:"story_title"`
	StoryURL    string   `json:"story_url"`
	ParentID    int      `json:"parent_id"`
	CreatedAt   string   `json:"created_at"`
	CreatedAtI  int64    `json:"created_at_i"`
	Tags        []string `json:"_tags"`
}

// IsComment reports whether the hit is a comment.
func (h Hit) IsComment() bool {
	for _, t := range h.Tags {
		if t == string(TagComment) {
			return true
		}
	}
	return h.CommentText != "" && h.Title == ""
}

// ItemID returns the numeric item id behind ObjectID.
func (h Hit) ItemID() (int, error) {
	return strconv.Atoi(h.ObjectID)
}

// Hits is a page of search results.
type Hits struct {
	Hits        []Hit `json:"hits"`
	NbHits      int   `json:"nbHits"`
	Page        int   `json:"page"`
	HitsPerPage int   `json:"hitsPerPage"`
}

// SearchClient queries the Algolia HackerNews search API.
type SearchClient struct {
	baseURL     string
	userAgent   string
	hitsPerPage int
	http        *http.Client
}

func NewSearchClient(cfg config.APIConfig) (*SearchClient, error) {
	base, err := parseBaseURL(cfg.SearchBaseURL)
	if err != nil {
		return nil, err
	}
	hits := cfg.SearchHits
	if hits <= 0 {
		hits = defaultHitsPerPage
	}
	return &SearchClient{
		baseURL:     base,
		userAgent:   cfg.UserAgent,
		hitsPerPage: hits,
		http:        newHTTPClient(cfg.Timeout),
	}, nil
}

func (s *SearchClient) search(ctx context.Context, endpoint, query string, tags []Tag, filters []NumericFilter) (Hits, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("hitsPerPage", strconv.Itoa(s.hitsPerPage))
	if len(tags) > 0 {
		params.Set("tags", joinTags(tags))
	}
	if len(filters) > 0 {
		parts := make([]string, len(filters))
		for i, f := range filters {
			parts[i] = f.String()
		}
		params.Set("numericFilters", strings.Join(parts, ","))
	}

	var hits Hits
	null, err := getJSON(ctx, s.http, s.userAgent, s.baseURL+"/"+endpoint+"?"+params.Encode(), &hits)
	if err != nil {
		return Hits{}, err
	}
	if null {
		return Hits{}, nil
	}
	return hits, nil
}

// Search runs a relevance-sorted query.
func (s *SearchClient) Search(ctx context.Context, query string, tags []Tag, filters ...NumericFilter) (Hits, error) {
	return s.search(ctx, "search", query, tags, filters)
}

// SearchByDate runs a date-sorted query, newest first.
func (s *SearchClient) SearchByDate(ctx context.Context, query string, tags []Tag, filters ...NumericFilter) (Hits, error) {
	return s.search(ctx, "search_by_date", query, tags, filters)
}

// SearchStories returns the newest stories matching query.
func (s *SearchClient) SearchStories(ctx context.Context, query string, tags ...Tag) (Hits, error) {
	if len(tags) == 0 {
		tags = []Tag{TagStory}
	}
	return s.SearchByDate(ctx, query, tags)
}

// SearchComments returns the comments most relevant to query.
func (s *SearchClient) SearchComments(ctx context.Context, query string) (Hits, error) {
	return s.Search(ctx, query, []Tag{TagComment})
}

// SearchUserStories returns the stories submitted by username.
func (s *SearchClient) SearchUserStories(ctx context.Context, username string) (Hits, error) {
	return s.Search(ctx, "", []Tag{TagStory, AuthorTag(username)})
}
