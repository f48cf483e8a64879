// Package relay republishes live note changes to NATS.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/pkg/model"
)

// publishTimeout bounds a single publish including its flush.
var publishTimeout = 5 * time.Second

// LiveSource opens a live-only change feed.
type LiveSource interface {
	Live(ctx context.Context) (feed.Iterator, error)
}

// Relay consumes the live feed and publishes every event as a NoteResponseEvent JSON document.
// Snapshot events are never relayed.
type Relay struct {
	source LiveSource
	pub    Publisher
	prefix string
	logger *slog.Logger

	published int
	failed    int
}

func New(source LiveSource, pub Publisher, prefix string, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = DefaultConfig().SubjectPrefix
	}
	return &Relay{
		source: source,
		pub:    pub,
		prefix: prefix,
		logger: logger.With("component", "relay"),
	}
}

// Subject returns the subject an event of kind k is published to.
func (r *Relay) Subject(k feed.Kind) string {
	return r.prefix + "." + strings.ToLower(string(k))
}

// Run relays until ctx is done or the feed ends. Cancellation returns nil; a feed
// failure or a clean end of the change stream is returned so the caller can restart.
func (r *Relay) Run(ctx context.Context) error {
	it, err := r.source.Live(ctx)
	if err != nil {
		return err
	}

	events, wait := feed.Pipe(ctx, it)
	r.logger.Info("Relay started", "prefix", r.prefix)

	for ev := range events {
		r.publish(ctx, ev)
	}

	err = wait()
	r.logger.Info("Relay stopped", "published", r.published, "failed", r.failed)
	if model.IsCanceled(err) || ctx.Err() != nil {
		return nil
	}
	if err == nil {
		return ErrFeedEnded
	}
	return err
}

// ErrFeedEnded is returned when the change stream completes, e.g. after the collection is dropped.
var ErrFeedEnded = errors.New("live feed ended")

func (r *Relay) publish(ctx context.Context, ev feed.Event) {
	data, err := json.Marshal(notes.ToNoteResponseEvent(ev))
	if err != nil {
		r.failed++
		r.logger.Warn("Failed to marshal event", "entity_id", ev.EntityID, "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	subject := r.Subject(ev.Kind)
	if err := r.pub.Publish(pubCtx, subject, data); err != nil {
		r.failed++
		r.logger.Warn("Failed to publish event", "subject", subject, "entity_id", ev.EntityID, "error", err)
		return
	}
	r.published++
	r.logger.Debug("Published event", "subject", subject, "entity_id", ev.EntityID)
}

// RunWithRestart runs the relay and restarts it with exponential backoff until ctx is done.
func (r *Relay) RunWithRestart(ctx context.Context, initial, maxBackoff time.Duration) {
	backoff := initial
	for {
		started := time.Now()
		err := r.Run(ctx)
		if ctx.Err() != nil {
			return
		}

		// A relay that ran for a while before failing starts over with a short delay
		if time.Since(started) > maxBackoff {
			backoff = initial
		}
		r.logger.Warn("Relay failed, restarting", "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
