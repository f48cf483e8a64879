package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syntrixbase/notes/pkg/model"
)

type phase int

const (
	phaseSnapshot phase = iota
	phaseLive
	phaseDone
)

// Sequencer yields every snapshot event and then every live event.
// The live source is expected to be subscribed already, so changes made
// while the snapshot is read are delivered once it completes.
type Sequencer struct {
	snapshot Iterator
	live     Iterator
	logger   *slog.Logger

	phase   phase
	current Event
	err     error

	initial   int
	delivered int
}

// NewSequencer composes a finite snapshot with an unbounded live sequence.
func NewSequencer(snapshot, live Iterator, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		snapshot: snapshot,
		live:     live,
		logger:   logger,
	}
}

// Next advances the combined stream.
func (s *Sequencer) Next(ctx context.Context) bool {
	for {
		switch s.phase {
		case phaseSnapshot:
			if s.snapshot.Next(ctx) {
				s.current = s.snapshot.Event()
				s.initial++
				s.delivered++
				return true
			}
			if err := s.snapshot.Err(); err != nil {
				// the live side may already hold events; they are never delivered
				s.fail(ctx, err, ErrSnapshotFailed)
				return false
			}
			if err := s.snapshot.Close(ctx); err != nil {
				s.logger.Warn("Failed to close snapshot cursor", "error", err)
			}
			s.logger.Debug("Snapshot complete", "initial", s.initial)
			s.phase = phaseLive

		case phaseLive:
			if s.live.Next(ctx) {
				s.current = s.live.Event()
				s.delivered++
				return true
			}
			if err := s.live.Err(); err != nil {
				s.fail(ctx, err, ErrSubscriptionFailed)
				return false
			}
			// the change stream ended on its own, e.g. after an invalidate
			s.logger.Info("Change stream completed", "delivered", s.delivered)
			s.shutdown(ctx)
			return false

		default:
			return false
		}
	}
}

// Event returns the current event.
func (s *Sequencer) Event() Event { return s.current }

// Err returns the error that ended the stream. Cancellation by the consumer
// is reported as model.ErrCanceled.
func (s *Sequencer) Err() error { return s.err }

// Initial returns how many snapshot events have been delivered.
func (s *Sequencer) Initial() int { return s.initial }

// Close tears down both sources.
func (s *Sequencer) Close(ctx context.Context) error {
	return s.shutdown(ctx)
}

func (s *Sequencer) fail(ctx context.Context, err error, kind error) {
	if model.IsCanceled(err) {
		s.err = model.ErrCanceled
	} else {
		s.err = fmt.Errorf("%w: %w", kind, err)
	}
	s.shutdown(ctx)
}

func (s *Sequencer) shutdown(ctx context.Context) error {
	if s.phase == phaseDone && s.snapshot == nil && s.live == nil {
		return nil
	}
	s.phase = phaseDone

	var errs []error
	if s.snapshot != nil {
		if err := s.snapshot.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		s.snapshot = nil
	}
	if s.live != nil {
		if err := s.live.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		s.live = nil
	}
	return errors.Join(errs...)
}
