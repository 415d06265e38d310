package browser

import (
	"fmt"

	"github.com/atotto/clipboard"
)

var writeClipboard = clipboard.WriteAll

// CopyLink validates link and writes it to the system clipboard.
func CopyLink(link string) error {
	normalized, err := ValidateLink(link)
	if err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := writeClipboard(normalized); err != nil {
		return fmt.Errorf("copying link: %w", err)
	}
	return nil
}
