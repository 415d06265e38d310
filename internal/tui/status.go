package tui

import (
	"fmt"
	"strings"
)

// Canonical user-facing messages.
const (
	MsgLoading             = "Loading..."
	MsgLoadingStories      = "Loading stories..."
	MsgStoriesFetchFailed  = "Could not fetch HackerNews stories."
	MsgNoStories           = "No stories."
	MsgCommentsFetchFailed = "Comments fetching issue. Please retry later."
	MsgThreadError         = "An error has occurred on this thread. Please retry later."
	MsgNoComments          = "No comments yet."
	MsgCommentDisplayError = "Error while displaying the comment."
	MsgNoSearchInput       = "No search input."
	MsgNoResults           = "No results..."
	MsgSearchFailed        = "Search failed. Please retry later."
	MsgLinkCopied          = "Link copied."
	MsgNoSubmissions       = "No submissions."
)

// flashTicks is how long a flash message stays visible.
const flashTicks = 30

func MsgUserLoadFailed(id string) string {
	return fmt.Sprintf("The user data of '%s' cannot be loaded, please retry later.", strings.TrimSpace(id))
}

func MsgConfigSaveFailed(err error) string {
	return fmt.Sprintf("Settings could not be saved: %v", err)
}

func MsgOpenFailed(err error) string {
	return fmt.Sprintf("Could not open link: %v", err)
}

// MsgCommentPosition is the comments panel footer.
func MsgCommentPosition(index, total, subComments int) string {
	base := fmt.Sprintf("Comment %d / %d", index, total)
	switch {
	case subComments > 1:
		return fmt.Sprintf("%s | %d sub-comments", base, subComments)
	case subComments == 1:
		return base + " | 1 sub-comment"
	default:
		return base
	}
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
