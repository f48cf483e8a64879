package model

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a note is not found
	ErrNotFound = errors.New("note not found")
	// ErrInvalidID is returned when a note identifier is not a valid object id
	ErrInvalidID = errors.New("invalid note id")
	// ErrCanceled is returned when the operation is canceled by the client
	ErrCanceled = errors.New("operation canceled")
	// ErrStreamClosed is returned when reading from a stream that was already closed
	ErrStreamClosed = errors.New("stream closed")
)

// WrapError wraps storage errors to model errors.
// It converts context.Canceled and context.DeadlineExceeded to ErrCanceled.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsCanceled(err) {
		return ErrCanceled
	}
	return err
}

// IsCanceled returns true if the error is due to context cancellation or deadline exceeded.
// It checks both direct context errors and wrapped errors (e.g., from MongoDB driver).
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, ErrCanceled) {
		return true
	}
	// The driver sometimes flattens context errors into its own error strings
	errStr := err.Error()
	return strings.Contains(errStr, "context canceled") || strings.Contains(errStr, "context deadline exceeded")
}
