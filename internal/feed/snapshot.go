package feed

import (
	"context"
	"fmt"

	"github.com/syntrixbase/notes/internal/storage/types"
)

// snapshotIterator turns a full scan into INITIAL events.
type snapshotIterator struct {
	cursor  types.NoteCursor
	current Event
	err     error
	done    bool
	closed  bool
	count   int
}

func newSnapshot(cursor types.NoteCursor) *snapshotIterator {
	return &snapshotIterator{cursor: cursor}
}

func (s *snapshotIterator) Next(ctx context.Context) bool {
	if s.done {
		return false
	}
	if !s.cursor.Next(ctx) {
		s.done = true
		s.err = s.cursor.Err()
		if s.err == nil {
			s.err = ctx.Err()
		}
		return false
	}

	note, err := s.cursor.Note()
	if err != nil {
		s.done = true
		s.err = fmt.Errorf("decode note: %w", err)
		return false
	}

	evt := Initial(note)
	if !evt.Valid() {
		s.done = true
		s.err = fmt.Errorf("scanned note has no id")
		return false
	}

	s.current = evt
	s.count++
	return true
}

func (s *snapshotIterator) Event() Event { return s.current }

func (s *snapshotIterator) Err() error { return s.err }

func (s *snapshotIterator) Close(ctx context.Context) error {
	s.done = true
	if s.closed {
		return nil
	}
	s.closed = true
	return s.cursor.Close(ctx)
}
