package tui

import (
	"errors"
	"fmt"
)

// ErrUI marks a broken internal invariant, such as state a screen expects
// being missing. The current operation is abandoned and the screen popped.
var ErrUI = errors.New("ui error")

// wrapErr formats an error with a contextual prefix.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

func uiErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUI, fmt.Sprintf(format, args...))
}
