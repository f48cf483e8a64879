package relay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/storage/types"
	"github.com/syntrixbase/notes/pkg/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	return m.Called(ctx, subject, data).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// sliceIterator yields events then ends with err, or blocks until ctx is done when block is set.
type sliceIterator struct {
	events  []feed.Event
	pos     int
	err     error
	block   bool
	current feed.Event
}

func (s *sliceIterator) Next(ctx context.Context) bool {
	if s.pos < len(s.events) {
		s.current = s.events[s.pos]
		s.pos++
		return true
	}
	if s.block {
		<-ctx.Done()
		s.err = model.ErrCanceled
	}
	return false
}

func (s *sliceIterator) Event() feed.Event           { return s.current }
func (s *sliceIterator) Err() error                  { return s.err }
func (s *sliceIterator) Close(context.Context) error { return nil }

type fakeSource struct {
	mu    sync.Mutex
	its   []*sliceIterator
	err   error
	opens atomic.Int32
}

func (f *fakeSource) Live(ctx context.Context) (feed.Iterator, error) {
	n := int(f.opens.Add(1)) - 1
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if n < len(f.its) {
		return f.its[n], nil
	}
	return &sliceIterator{block: true}, nil
}

func note(title string) *types.Note {
	return &types.Note{ID: primitive.NewObjectID(), Title: title, Content: "c"}
}

func TestRelay_Subject(t *testing.T) {
	r := New(&fakeSource{}, new(MockPublisher), "", nil)
	assert.Equal(t, "notes.events.inserted", r.Subject(feed.KindInserted))
	assert.Equal(t, "notes.events.deleted", r.Subject(feed.KindDeleted))

	r = New(&fakeSource{}, new(MockPublisher), "app.notes", nil)
	assert.Equal(t, "app.notes.updated", r.Subject(feed.KindUpdated))
}

func TestRelay_PublishesLiveEvents(t *testing.T) {
	n := note("a")
	src := &fakeSource{its: []*sliceIterator{{
		events: []feed.Event{feed.Inserted(n), feed.Updated(n), feed.Deleted(n.ID.Hex())},
		block:  true,
	}}}

	pub := new(MockPublisher)
	var got []notes.NoteResponseEvent
	var mu sync.Mutex
	pub.On("Publish", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			var ev notes.NoteResponseEvent
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &ev))
			mu.Lock()
			got = append(got, ev)
			mu.Unlock()
		}).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(src, pub, "notes.events", nil).Run(ctx) }()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	pub.AssertCalled(t, "Publish", mock.Anything, "notes.events.inserted", mock.Anything)
	pub.AssertCalled(t, "Publish", mock.Anything, "notes.events.updated", mock.Anything)
	pub.AssertCalled(t, "Publish", mock.Anything, "notes.events.deleted", mock.Anything)

	assert.Equal(t, feed.KindInserted, got[0].EventType)
	assert.Equal(t, "a", got[0].Body.Title)
	assert.Equal(t, feed.KindDeleted, got[2].EventType)
	assert.Nil(t, got[2].Body)
	assert.Equal(t, n.ID.Hex(), got[2].EntityID)
}

func TestRelay_PublishFailureIsSkipped(t *testing.T) {
	a, b := note("a"), note("b")
	src := &fakeSource{its: []*sliceIterator{{
		events: []feed.Event{feed.Inserted(a), feed.Inserted(b)},
		err:    errors.New("cursor lost"),
	}}}

	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, "notes.events.inserted", mock.Anything).Return(errors.New("nats down")).Once()
	pub.On("Publish", mock.Anything, "notes.events.inserted", mock.Anything).Return(nil).Once()

	r := New(src, pub, "", nil)
	err := r.Run(context.Background())

	assert.EqualError(t, err, "cursor lost")
	pub.AssertNumberOfCalls(t, "Publish", 2)
	assert.Equal(t, 1, r.published)
	assert.Equal(t, 1, r.failed)
}

func TestRelay_FeedEnded(t *testing.T) {
	src := &fakeSource{its: []*sliceIterator{{}}}
	err := New(src, new(MockPublisher), "", nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrFeedEnded)
}

func TestRelay_OpenFailure(t *testing.T) {
	src := &fakeSource{err: feed.ErrSubscriptionFailed}
	err := New(src, new(MockPublisher), "", nil).Run(context.Background())
	assert.ErrorIs(t, err, feed.ErrSubscriptionFailed)
}

func TestRelay_RunWithRestart(t *testing.T) {
	// Two failing runs, then one that blocks until canceled
	src := &fakeSource{its: []*sliceIterator{{err: errors.New("boom")}, {}}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(src, new(MockPublisher), "", nil).RunWithRestart(ctx, time.Millisecond, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return src.opens.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}
