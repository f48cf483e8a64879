package feed

import (
	"context"
	"sync"

	"github.com/syntrixbase/notes/internal/storage/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newNote(title string) *types.Note {
	n := types.NewNote(title, title+" content", "", false, "")
	n.ID = primitive.NewObjectID()
	return n
}

func insertChange(n *types.Note) *types.RawChange {
	return &types.RawChange{OperationType: types.OperationInsert, FullDocument: n, DocumentKey: bson.M{"_id": n.ID}}
}

func updateChange(n *types.Note) *types.RawChange {
	return &types.RawChange{OperationType: types.OperationUpdate, FullDocument: n, DocumentKey: bson.M{"_id": n.ID}}
}

func deleteChange(id primitive.ObjectID) *types.RawChange {
	return &types.RawChange{OperationType: types.OperationDelete, DocumentKey: bson.M{"_id": id}}
}

// fakeNoteCursor yields notes from a slice and can fail after a given position.
type fakeNoteCursor struct {
	notes     []*types.Note
	failAfter int
	failErr   error
	decodeErr error

	pos    int
	cur    *types.Note
	err    error
	closed bool
}

func (c *fakeNoteCursor) Next(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		c.err = err
		return false
	}
	if c.failErr != nil && c.pos == c.failAfter {
		c.err = c.failErr
		return false
	}
	if c.pos >= len(c.notes) {
		return false
	}
	c.cur = c.notes[c.pos]
	c.pos++
	return true
}

func (c *fakeNoteCursor) Note() (*types.Note, error) {
	if c.decodeErr != nil {
		return nil, c.decodeErr
	}
	return c.cur, nil
}

func (c *fakeNoteCursor) Err() error { return c.err }

func (c *fakeNoteCursor) Close(context.Context) error {
	c.closed = true
	return nil
}

type changeItem struct {
	raw *types.RawChange
	err error
}

// fakeChangeCursor delivers queued notifications and blocks when none are queued.
type fakeChangeCursor struct {
	ch        chan changeItem
	closeOnce sync.Once
	closedCh  chan struct{}

	mu     sync.Mutex
	cur    *types.RawChange
	err    error
	closed bool
}

func newFakeChangeCursor() *fakeChangeCursor {
	return &fakeChangeCursor{
		ch:       make(chan changeItem, 64),
		closedCh: make(chan struct{}),
	}
}

func (c *fakeChangeCursor) push(raws ...*types.RawChange) {
	for _, raw := range raws {
		c.ch <- changeItem{raw: raw}
	}
}

func (c *fakeChangeCursor) fail(err error) {
	c.ch <- changeItem{err: err}
}

// end finishes the stream cleanly, as after an invalidate.
func (c *fakeChangeCursor) end() {
	close(c.ch)
}

func (c *fakeChangeCursor) Next(ctx context.Context) bool {
	select {
	case item, ok := <-c.ch:
		if !ok {
			return false
		}
		if item.err != nil {
			c.setErr(item.err)
			return false
		}
		c.mu.Lock()
		c.cur = item.raw
		c.mu.Unlock()
		return true
	case <-ctx.Done():
		c.setErr(ctx.Err())
		return false
	case <-c.closedCh:
		return false
	}
}

func (c *fakeChangeCursor) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *fakeChangeCursor) Change() *types.RawChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeChangeCursor) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *fakeChangeCursor) Close(context.Context) error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.closedCh)
	})
	return nil
}

func (c *fakeChangeCursor) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeSource records the order in which the primitives are opened.
type fakeSource struct {
	scan         *fakeNoteCursor
	changes      *fakeChangeCursor
	scanErr      error
	subscribeErr error

	calls []string
	opts  types.SubscribeOptions
}

func (s *fakeSource) ScanAll(context.Context) (types.NoteCursor, error) {
	s.calls = append(s.calls, "scan")
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.scan, nil
}

func (s *fakeSource) Subscribe(_ context.Context, opts types.SubscribeOptions) (types.ChangeCursor, error) {
	s.calls = append(s.calls, "subscribe")
	s.opts = opts
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	return s.changes, nil
}
