package feed

import (
	"context"
	"log/slog"

	"github.com/syntrixbase/notes/internal/storage/types"
)

// liveIterator turns change notifications into events, skipping the ones
// Translate rejects.
type liveIterator struct {
	cursor  types.ChangeCursor
	logger  *slog.Logger
	current Event
	err     error
	done    bool
	closed  bool
	dropped int
}

func newLive(cursor types.ChangeCursor, logger *slog.Logger) *liveIterator {
	return &liveIterator{cursor: cursor, logger: logger}
}

func (l *liveIterator) Next(ctx context.Context) bool {
	if l.done {
		return false
	}
	for l.cursor.Next(ctx) {
		raw := l.cursor.Change()
		evt, reason := translate(raw)
		if reason != DropNone {
			l.dropped++
			l.logger.Debug("Dropped change notification", "reason", string(reason), "op", opType(raw))
			continue
		}
		l.current = evt
		return true
	}

	l.done = true
	l.err = l.cursor.Err()
	if l.err == nil {
		l.err = ctx.Err()
	}
	return false
}

func (l *liveIterator) Event() Event { return l.current }

func (l *liveIterator) Err() error { return l.err }

// Dropped returns how many notifications were skipped so far.
func (l *liveIterator) Dropped() int { return l.dropped }

func (l *liveIterator) Close(ctx context.Context) error {
	l.done = true
	if l.closed {
		return nil
	}
	l.closed = true
	return l.cursor.Close(ctx)
}

func opType(raw *types.RawChange) string {
	if raw == nil {
		return ""
	}
	return string(raw.OperationType)
}
