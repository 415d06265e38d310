package tui

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// truncateEnd shortens s to at most limit cells, appending an ellipsis.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(limit), "…")
}

// truncateMiddle keeps both ends of s around a single ellipsis. Useful for
// URLs where the host and the tail both carry meaning.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	n := len(r)
	if n <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left
	return string(r[:left]) + "…" + string(r[n-right:])
}

// wrap word-wraps s to width and caps it at maxLines lines.
func wrap(s string, width, maxLines int) string {
	if width <= 0 {
		return ""
	}
	lines := strings.Split(wordwrap.String(s, width), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncateEnd(lines[maxLines-1]+" …", width)
	}
	return strings.Join(lines, "\n")
}

func pluralize(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}
