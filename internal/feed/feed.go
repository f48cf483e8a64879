package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syntrixbase/notes/internal/storage/types"
)

// Feed opens merged note streams. Every stream owns its own scan and
// its own change subscription.
type Feed struct {
	source types.NoteSource
	opts   types.SubscribeOptions
	logger *slog.Logger
}

// Option configures a Feed.
type Option func(*Feed)

// WithLogger sets the logger used by the feed and its streams.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Feed) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithCollection overrides the collection the subscription watches.
func WithCollection(name string) Option {
	return func(f *Feed) { f.opts.Collection = name }
}

// WithBatchSize sets the change stream batch size.
func WithBatchSize(n int32) Option {
	return func(f *Feed) { f.opts.BatchSize = n }
}

// New creates a Feed over the given source.
func New(source types.NoteSource, opts ...Option) *Feed {
	f := &Feed{
		source: source,
		opts:   types.SubscribeOptions{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With("component", "feed")
	return f
}

// StreamAllWithUpdates returns every stored note as an INITIAL event
// followed by every later change. The subscription is opened before the
// scan starts so nothing that happens during the scan is missed; a note
// changed mid-scan may therefore appear twice.
func (f *Feed) StreamAllWithUpdates(ctx context.Context) (*Sequencer, error) {
	changes, err := f.source.Subscribe(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	}

	scan, err := f.source.ScanAll(ctx)
	if err != nil {
		if cerr := changes.Close(ctx); cerr != nil {
			f.logger.Warn("Failed to close change stream", "error", cerr)
		}
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFailed, err)
	}

	f.logger.Debug("Opened merged stream", "collection", f.opts.Collection)
	return NewSequencer(newSnapshot(scan), newLive(changes, f.logger), f.logger), nil
}

// Live returns only the change events, without the initial snapshot.
func (f *Feed) Live(ctx context.Context) (Iterator, error) {
	changes, err := f.source.Subscribe(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	}
	return newLive(changes, f.logger), nil
}
