package hnapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers timeouts, DNS failures, resets and HTTP error
	// statuses. It is retryable by the user, never retried silently.
	ErrTransport = errors.New("transport error")
	// ErrNotFound means the remote has nothing for the lookup.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound is returned when the user endpoint answers null.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrDecode means a response body could not be decoded.
	ErrDecode = errors.New("decode error")
)

func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsNotFound reports whether err means the remote has nothing for the lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
