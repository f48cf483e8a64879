package feed

import (
	"context"
	"errors"
)

var (
	// ErrSnapshotFailed wraps failures of the full collection scan.
	ErrSnapshotFailed = errors.New("snapshot failed")
	// ErrSubscriptionFailed wraps failures of the change subscription.
	ErrSubscriptionFailed = errors.New("change subscription failed")
)

// Iterator is a pull-based event sequence owned by a single consumer.
type Iterator interface {
	// Next advances to the next event. Returns false when done, failed or ctx is done.
	Next(ctx context.Context) bool

	// Event returns the current event.
	Event() Event

	// Err returns the error that ended iteration, nil on clean completion.
	Err() error

	// Close releases the underlying cursors. It is safe to call more than once.
	Close(ctx context.Context) error
}
