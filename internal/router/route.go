// Package router keeps the navigation stack and the screen built for its top
// route.
package router

import (
	"fmt"

	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/item"
)

type Kind int

const (
	KindHome Kind = iota
	KindItemDetails
	KindItemNestedComments
	KindUserProfile
	KindSettings
	KindHelp
	KindSearch
	KindSearchHelp
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindItemDetails:
		return "item-details"
	case KindItemNestedComments:
		return "item-nested-comments"
	case KindUserProfile:
		return "user-profile"
	case KindSettings:
		return "settings"
	case KindHelp:
		return "help"
	case KindSearch:
		return "search"
	case KindSearchHelp:
		return "search-help"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Route is an immutable description of a navigable location. Item routes
// carry a full item snapshot so the screen can be rebuilt after a pop.
type Route struct {
	Kind    Kind
	Section hnapi.Section
	Item    item.Item
	UserID  string
}

func Home(section hnapi.Section) Route {
	return Route{Kind: KindHome, Section: section}
}

func ItemDetails(it item.Item) Route {
	return Route{Kind: KindItemDetails, Item: it}
}

// ItemNestedComments lists the replies of comment.
func ItemNestedComments(comment item.Item) Route {
	return Route{Kind: KindItemNestedComments, Item: comment}
}

func UserProfile(userID string) Route {
	return Route{Kind: KindUserProfile, UserID: userID}
}

func Settings() Route   { return Route{Kind: KindSettings} }
func Help() Route       { return Route{Kind: KindHelp} }
func Search() Route     { return Route{Kind: KindSearch} }
func SearchHelp() Route { return Route{Kind: KindSearchHelp} }

// IsHome reports whether the route is any Home section.
func (r Route) IsHome() bool {
	return r.Kind == KindHome
}

func (r Route) String() string {
	switch r.Kind {
	case KindHome:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Section)
	case KindItemDetails, KindItemNestedComments:
		return fmt.Sprintf("%s(%d)", r.Kind, r.Item.ID)
	case KindUserProfile:
		return fmt.Sprintf("%s(%s)", r.Kind, r.UserID)
	default:
		return r.Kind.String()
	}
}
