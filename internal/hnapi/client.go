// Package hnapi talks to the HackerNews item API and the Algolia search API.
package hnapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pders01/hnterm/internal/config"
)

const (
	DefaultTimeout = 10 * time.Second

	// homeListingLimit caps the Home section to the first ranked IDs.
	homeListingLimit = 100
	// maxConcurrentRequests bounds one batch fan-out.
	maxConcurrentRequests = 32
)

// Client fetches items, listings and users from the item API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient validates the base URL and builds a client with the configured
// timeout (10s when unset).
func NewClient(cfg config.APIConfig) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		http:      newHTTPClient(cfg.Timeout),
	}, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func parseBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid API base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid API base URL %q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// getJSON decodes the body at endpoint into v. It reports null=true, leaving
// v untouched, when the body is the JSON literal null.
func getJSON(ctx context.Context, client *http.Client, userAgent, endpoint string, v any) (null bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, transportErr("GET "+endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, fmt.Errorf("GET %s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return false, transportErr("GET "+endpoint, fmt.Errorf("HTTP error: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, transportErr("reading "+endpoint, err)
	}

	body = bytes.TrimSpace(body)
	if bytes.Equal(body, []byte("null")) {
		return true, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("GET %s: %w: %v", endpoint, ErrDecode, err)
	}
	return false, nil
}

func (c *Client) get(ctx context.Context, path string, v any) (bool, error) {
	return getJSON(ctx, c.http, c.userAgent, c.baseURL+path, v)
}

// FetchItem returns the item with the given id. A null body is a valid
// answer and yields the Null variant.
func (c *Client) FetchItem(ctx context.Context, id int) (Item, error) {
	var item Item
	null, err := c.get(ctx, fmt.Sprintf("/item/%d.json", id), &item)
	if err != nil {
		return Item{}, err
	}
	if null {
		return NullItem(id), nil
	}
	item.resolveKind()
	return item, nil
}

// FetchItems fetches every id concurrently and drops Null, Deleted and Dead
// items. Any failed request aborts the whole batch.
func (c *Client) FetchItems(ctx context.Context, ids []int) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	results := make([]Item, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.FetchItem(gctx, id)
			if err != nil {
				return err
			}
			results[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(results))
	for _, item := range results {
		if item.IsPlaceholder() {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// FetchListing returns the ranked IDs of a listing. The top, new and best
// listings are capped to their first 100 entries.
func (c *Client) FetchListing(ctx context.Context, listing Listing) ([]int, error) {
	var ids []int
	null, err := c.get(ctx, "/"+string(listing)+".json", &ids)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	switch listing {
	case ListingTop, ListingNew, ListingBest:
		if len(ids) > homeListingLimit {
			ids = ids[:homeListingLimit]
		}
	}
	return ids, nil
}

// FetchUser returns a user profile. A null body means the user has no public
// activity and is reported as ErrUserNotFound.
func (c *Client) FetchUser(ctx context.Context, username string) (User, error) {
	var user User
	null, err := c.get(ctx, "/user/"+url.PathEscape(username)+".json", &user)
	if err != nil {
		return User{}, err
	}
	if null {
		return User{}, fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	return user, nil
}

// FetchMaxItemID returns the current largest item id.
func (c *Client) FetchMaxItemID(ctx context.Context) (int, error) {
	var id int
	null, err := c.get(ctx, "/maxitem.json", &id)
	if err != nil {
		return 0, err
	}
	if null {
		return 0, fmt.Errorf("maxitem: %w", ErrNotFound)
	}
	return id, nil
}
