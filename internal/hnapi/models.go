package hnapi

import "fmt"

// Kind discriminates the Item union. Deleted, Dead and Null are placeholder
// variants with no displayable content.
type Kind int

const (
	KindStory Kind = iota
	KindComment
	KindJob
	KindPoll
	KindPollOption
	KindDeleted
	KindDead
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindStory:
		return "story"
	case KindComment:
		return "comment"
	case KindJob:
		return "job"
	case KindPoll:
		return "poll"
	case KindPollOption:
		return "pollopt"
	case KindDeleted:
		return "deleted"
	case KindDead:
		return "dead"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Item is a HackerNews item as served by the item endpoint.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time"`
	Text        string `json:"text,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
	Dead        bool   `json:"dead,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Poll        int    `json:"poll,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Title       string `json:"title,omitempty"`
	Parts       []int  `json:"parts,omitempty"`
	Descendants int    `json:"descendants,omitempty"`

	// Kind is resolved once the item is decoded.
	Kind Kind `json:"-"`
}

// NullItem is the placeholder for an item endpoint answering literal null.
func NullItem(id int) Item {
	return Item{ID: id, Kind: KindNull}
}

// resolveKind sets Kind from the tombstone flags and the type field.
func (i *Item) resolveKind() {
	switch {
	case i.Deleted:
		i.Kind = KindDeleted
	case i.Dead:
		i.Kind = KindDead
	default:
		switch i.Type {
		case "comment":
			i.Kind = KindComment
		case "job":
			i.Kind = KindJob
		case "poll":
			i.Kind = KindPoll
		case "pollopt":
			i.Kind = KindPollOption
		default:
			i.Kind = KindStory
		}
	}
}

// IsPlaceholder reports whether the item must be filtered before display.
func (i Item) IsPlaceholder() bool {
	return i.Kind == KindDeleted || i.Kind == KindDead || i.Kind == KindNull
}

// User is a HackerNews user profile.
type User struct {
	ID        string `json:"id"`
	Created   int64  `json:"created"`
	Karma     int    `json:"karma"`
	About     string `json:"about,omitempty"`
	Submitted []int  `json:"submitted,omitempty"`
}

// Section is a listing tab of the home screen.
type Section int

const (
	SectionHome Section = iota
	SectionAsk
	SectionShow
	SectionJobs
)

var sectionNames = map[Section]string{
	SectionHome: "Home",
	SectionAsk:  "Ask HN",
	SectionShow: "Show HN",
	SectionJobs: "Jobs",
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// Sorting applies to the Home section only.
type Sorting int

const (
	SortingTop Sorting = iota
	SortingNew
	SortingBest
)

func (s Sorting) String() string {
	switch s {
	case SortingNew:
		return "New"
	case SortingBest:
		return "Best"
	default:
		return "Top"
	}
}

// Next cycles Top -> New -> Best -> Top.
func (s Sorting) Next() Sorting {
	return (s + 1) % 3
}

// Listing names a listing endpoint, e.g. "topstories".
type Listing string

const (
	ListingTop  Listing = "topstories"
	ListingNew  Listing = "newstories"
	ListingBest Listing = "beststories"
	ListingAsk  Listing = "askstories"
	ListingShow Listing = "showstories"
	ListingJobs Listing = "jobstories"
)

// ListingFor maps a section and its sorting to the listing endpoint.
func ListingFor(section Section, sorting Sorting) Listing {
	switch section {
	case SectionAsk:
		return ListingAsk
	case SectionShow:
		return ListingShow
	case SectionJobs:
		return ListingJobs
	}
	switch sorting {
	case SortingNew:
		return ListingNew
	case SortingBest:
		return ListingBest
	default:
		return ListingTop
	}
}
