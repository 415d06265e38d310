package item

import (
	"fmt"
	"time"

	"github.com/pders01/hnterm/internal/hnapi"
)

const hackerNewsUserLink = "https://news.ycombinator.com/user?id=%s"

// User is a display-ready user profile.
type User struct {
	ID               string
	CreatedAt        time.Time
	CreatedFormatted string
	Karma            int
	About            string
	Submitted        []int
}

func UserFromAPI(raw hnapi.User) User {
	created := time.Unix(raw.Created, 0).UTC()
	return User{
		ID:               raw.ID,
		CreatedAt:        created,
		CreatedFormatted: created.Format("January 02, 2006"),
		Karma:            raw.Karma,
		About:            raw.About,
		Submitted:        raw.Submitted,
	}
}

// UserLink is the profile page of username on the website.
func UserLink(username string) string {
	return fmt.Sprintf(hackerNewsUserLink, username)
}

func (u User) HackerNewsLink() string {
	return UserLink(u.ID)
}
