package browser

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxLinkLength bounds links handed to external commands.
const MaxLinkLength = 2048

// ValidateLink checks that link is an absolute http(s) URL safe to pass to an
// opener command, and returns its normalized form.
func ValidateLink(link string) (string, error) {
	link = strings.TrimSpace(link)

	if link == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if len(link) > MaxLinkLength {
		return "", fmt.Errorf("URL too long (max %d characters)", MaxLinkLength)
	}

	// Openers receive the link as an argument; quotes and angle brackets
	// have no business there.
	if strings.ContainsAny(link, "<>\"'`") {
		return "", fmt.Errorf("URL contains invalid characters")
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL must use http or https protocol")
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("URL must have a valid hostname")
	}
	if strings.HasPrefix(parsed.Hostname(), "-") {
		return "", fmt.Errorf("suspicious hostname detected")
	}

	return parsed.String(), nil
}
