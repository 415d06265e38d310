package tui

import (
	"context"
	"time"

	"github.com/pders01/hnterm/internal/config"
	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/history"
	"github.com/pders01/hnterm/internal/input"
	"github.com/pders01/hnterm/internal/item"
	"github.com/pders01/hnterm/internal/router"
	"github.com/pders01/hnterm/internal/search"
	"github.com/pders01/hnterm/internal/storage"
)

// Gateway is the part of the item API client the UI uses.
type Gateway interface {
	FetchItems(ctx context.Context, ids []int) ([]hnapi.Item, error)
	FetchListing(ctx context.Context, listing hnapi.Listing) ([]int, error)
	FetchUser(ctx context.Context, username string) (hnapi.User, error)
}

// SearchGateway is the part of the search API client the UI uses.
type SearchGateway interface {
	SearchStories(ctx context.Context, query string, tags ...hnapi.Tag) (hnapi.Hits, error)
	SearchComments(ctx context.Context, query string) (hnapi.Hits, error)
	SearchUserStories(ctx context.Context, username string) (hnapi.Hits, error)
}

// LinkOpener opens a link outside the terminal.
type LinkOpener interface {
	Open(link string) error
}

// Deps are the collaborators handed to NewApp. Store, Seen and History may be
// nil.
type Deps struct {
	Config  *config.Config
	Gateway Gateway
	Search  SearchGateway
	Store   *storage.Store
	Seen    search.Searcher
	History *history.History
	Opener  LinkOpener
	Copy    func(link string) error
	Now     func() time.Time
}

// navigator is how screens and components move through the router.
type navigator interface {
	Push(route router.Route)
	Pop()
	Replace(route router.Route)
	Current() router.Route
	IsOnRootScreen() bool
	Quit()
}

// env is shared by every screen and component built by one App.
type env struct {
	Deps
	keys     input.KeyMap
	nav      navigator
	markdown *markdownRenderer
	stories  *storiesSnapshot
	// ticks counts orchestrator ticks; loaders animate from it.
	ticks int
}

func (e *env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// rememberSeen stores displayed items and feeds them to the local index.
// It runs inside fetch commands, off the update loop.
func (e *env) rememberSeen(items []item.Item) {
	if e.Store == nil || len(items) == 0 {
		return
	}
	saved, err := e.Store.SaveItems(items)
	if err != nil {
		debuglog.Warnf("saving seen items: %v", err)
		return
	}
	if l, ok := e.Seen.(search.SeenListener); ok {
		l.OnItemsSeen(saved)
	}
}

func (e *env) open(link string) error {
	if e.Opener == nil {
		return uiErr("no link opener configured")
	}
	return e.Opener.Open(link)
}
