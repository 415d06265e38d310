// Package state holds the application state shared by every screen and
// component during a tick. It is owned by the orchestrator and is not safe for
// concurrent use.
package state

import (
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/item"
)

// ComponentID identifies a component within a screen layout.
type ComponentID string

// SearchTag selects what the search screen queries.
type SearchTag int

const (
	SearchStories SearchTag = iota
	SearchComments
	SearchUsername
	SearchSeen
)

var searchTagNames = []string{"Stories", "Comments", "Username", "Seen"}

// SearchTags lists the tags in display order.
func SearchTags() []SearchTag {
	return []SearchTag{SearchStories, SearchComments, SearchUsername, SearchSeen}
}

func (t SearchTag) String() string {
	if int(t) < 0 || int(t) >= len(searchTagNames) {
		return "Unknown"
	}
	return searchTagNames[t]
}

// State is the single owned aggregate screens and components read and mutate
// one phase at a time: the viewed item and its comment cache, the comment
// chain, listing selections, the flash message and the search inputs.
type State struct {
	viewedItem *item.Item
	switched   bool
	comments   item.Comments

	chain                     []int
	previouslyViewedCommentID *int

	section hnapi.Section
	sorting hnapi.Sorting

	viewedUserID         string
	commentsPanelVisible bool

	flash            flash
	latestInteracted ComponentID

	searchQuery string
	searchTag   SearchTag
}

// New returns an empty state: nothing viewed, Home section, Top sorting.
func New() *State {
	return &State{}
}

// ViewedItem returns the top-level item being viewed, if any.
func (s *State) ViewedItem() (item.Item, bool) {
	if s.viewedItem == nil {
		return item.Item{}, false
	}
	return *s.viewedItem, true
}

// SetViewedItem records the top-level item being viewed. Moving to a
// different item marks the comment cache for replacement on its next write.
func (s *State) SetViewedItem(it item.Item) {
	if s.viewedItem == nil || s.viewedItem.ID != it.ID {
		s.switched = true
	}
	s.viewedItem = &it
}

// Switched reports whether the viewed item changed since the last comment
// cache write.
func (s *State) Switched() bool {
	return s.switched
}

// Comments returns the comment cache of the viewed item. A nil cache means
// no fetch has completed yet.
func (s *State) Comments() item.Comments {
	return s.comments
}

// SetComments writes a fetch result into the cache. The first write after a
// switch replaces the cache; later writes merge, fresh entries winning.
func (s *State) SetComments(fresh item.Comments) {
	if s.switched || s.comments == nil {
		s.comments = make(item.Comments, len(fresh))
		s.switched = false
	}
	for id, c := range fresh {
		s.comments[id] = c
	}
}

// DropMissingKids removes the kids of the viewed item that are absent from
// the comment cache and returns the remaining ones.
func (s *State) DropMissingKids() []int {
	if s.viewedItem == nil {
		return nil
	}
	kids := make([]int, 0, len(s.viewedItem.Kids))
	for _, id := range s.viewedItem.Kids {
		if _, ok := s.comments[id]; ok {
			kids = append(kids, id)
		}
	}
	s.viewedItem.Kids = kids
	return kids
}

// Comment looks up a cached comment.
func (s *State) Comment(id int) (item.Item, bool) {
	c, ok := s.comments[id]
	return c, ok
}

// Chain returns a copy of the comment navigation chain, root-first.
func (s *State) Chain() []int {
	return append([]int(nil), s.chain...)
}

// PushChain appends id unless it already is the last element.
func (s *State) PushChain(id int) {
	if n := len(s.chain); n > 0 && s.chain[n-1] == id {
		return
	}
	s.chain = append(s.chain, id)
}

// ReplaceLatestInChain swaps the last element for id, or pushes it on an
// empty chain.
func (s *State) ReplaceLatestInChain(id int) {
	n := len(s.chain)
	if n == 0 {
		s.chain = append(s.chain, id)
		return
	}
	s.chain[n-1] = id
}

// PopChain removes and returns the last element. An empty chain is left
// untouched.
func (s *State) PopChain() (int, bool) {
	n := len(s.chain)
	if n == 0 {
		return 0, false
	}
	id := s.chain[n-1]
	s.chain = s.chain[:n-1]
	return id, true
}

func (s *State) ResetChain() {
	s.chain = s.chain[:0]
}

// LatestInChain returns the focused comment at the deepest level.
func (s *State) LatestInChain() (int, bool) {
	if len(s.chain) == 0 {
		return 0, false
	}
	return s.chain[len(s.chain)-1], true
}

// ChainParent returns the comment whose replies are listed at the deepest
// level.
func (s *State) ChainParent() (int, bool) {
	if len(s.chain) < 2 {
		return 0, false
	}
	return s.chain[len(s.chain)-2], true
}

// ChainRoot returns the focused top-level comment.
func (s *State) ChainRoot() (int, bool) {
	if len(s.chain) == 0 {
		return 0, false
	}
	return s.chain[0], true
}

func (s *State) SetPreviouslyViewedCommentID(id int) {
	s.previouslyViewedCommentID = &id
}

// PreviouslyViewedCommentID returns the comment focus pending restoration.
func (s *State) PreviouslyViewedCommentID() (int, bool) {
	if s.previouslyViewedCommentID == nil {
		return 0, false
	}
	return *s.previouslyViewedCommentID, true
}

func (s *State) ClearPreviouslyViewedCommentID() {
	s.previouslyViewedCommentID = nil
}

func (s *State) Section() hnapi.Section { return s.section }

func (s *State) SetSection(v hnapi.Section) { s.section = v }

func (s *State) Sorting() hnapi.Sorting { return s.sorting }

func (s *State) SetSorting(v hnapi.Sorting) { s.sorting = v }

func (s *State) ViewedUserID() string { return s.viewedUserID }

func (s *State) SetViewedUserID(id string) { s.viewedUserID = id }

func (s *State) CommentsPanelVisible() bool { return s.commentsPanelVisible }

func (s *State) SetCommentsPanelVisible(v bool) { s.commentsPanelVisible = v }

func (s *State) ToggleCommentsPanel() { s.commentsPanelVisible = !s.commentsPanelVisible }

// LatestInteracted is the last component that claimed a key event.
func (s *State) LatestInteracted() ComponentID { return s.latestInteracted }

func (s *State) SetLatestInteracted(c ComponentID) { s.latestInteracted = c }

func (s *State) SearchQuery() string { return s.searchQuery }

func (s *State) SetSearchQuery(q string) { s.searchQuery = q }

func (s *State) SearchTag() SearchTag { return s.searchTag }

func (s *State) SetSearchTag(t SearchTag) { s.searchTag = t }
