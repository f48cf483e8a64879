package stream

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/storage/types"
	"github.com/syntrixbase/notes/pkg/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockNoteService mocks only the feed; the CRUD methods are unused here.
type MockNoteService struct {
	notes.Service
	mock.Mock
}

func (m *MockNoteService) StreamAllWithUpdates(ctx context.Context) (feed.Iterator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(feed.Iterator), args.Error(1)
}

// chanIterator yields whatever is sent on events and ends with err once events is closed.
type chanIterator struct {
	events  chan feed.Event
	err     error
	current feed.Event

	mu     sync.Mutex
	failed error
	closed chan struct{}
	once   sync.Once
}

func newChanIterator() *chanIterator {
	return &chanIterator{events: make(chan feed.Event, 16), closed: make(chan struct{})}
}

// finish ends the iterator with err, nil meaning clean completion.
func (c *chanIterator) finish(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	close(c.events)
}

func (c *chanIterator) Next(ctx context.Context) bool {
	select {
	case ev, ok := <-c.events:
		if !ok {
			c.mu.Lock()
			c.failed = c.err
			c.mu.Unlock()
			return false
		}
		c.current = ev
		return true
	case <-ctx.Done():
		c.mu.Lock()
		c.failed = model.ErrCanceled
		c.mu.Unlock()
		return false
	case <-c.closed:
		return false
	}
}

func (c *chanIterator) Event() feed.Event { return c.current }

func (c *chanIterator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

func (c *chanIterator) Close(context.Context) error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *chanIterator) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func testNote(title, category string, important bool) *types.Note {
	return &types.Note{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   title + " content",
		Category:  category,
		Important: important,
	}
}
