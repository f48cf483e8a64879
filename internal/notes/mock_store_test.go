package notes

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/syntrixbase/notes/internal/storage/types"
)

type MockNoteStore struct {
	mock.Mock
}

func (m *MockNoteStore) notes(args mock.Arguments) ([]*types.Note, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Note), args.Error(1)
}

func (m *MockNoteStore) ScanAll(ctx context.Context) (types.NoteCursor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.NoteCursor), args.Error(1)
}

func (m *MockNoteStore) Subscribe(ctx context.Context, opts types.SubscribeOptions) (types.ChangeCursor, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.ChangeCursor), args.Error(1)
}

func (m *MockNoteStore) Save(ctx context.Context, note *types.Note) (*types.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Note), args.Error(1)
}

func (m *MockNoteStore) FindByID(ctx context.Context, id string) (*types.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Note), args.Error(1)
}

func (m *MockNoteStore) FindAll(ctx context.Context) ([]*types.Note, error) {
	return m.notes(m.Called(ctx))
}

func (m *MockNoteStore) FindByCategory(ctx context.Context, category string) ([]*types.Note, error) {
	return m.notes(m.Called(ctx, category))
}

func (m *MockNoteStore) FindByImportant(ctx context.Context, important bool) ([]*types.Note, error) {
	return m.notes(m.Called(ctx, important))
}

func (m *MockNoteStore) FindByTitleContaining(ctx context.Context, title string) ([]*types.Note, error) {
	return m.notes(m.Called(ctx, title))
}

func (m *MockNoteStore) FindByContentContaining(ctx context.Context, content string) ([]*types.Note, error) {
	return m.notes(m.Called(ctx, content))
}

func (m *MockNoteStore) FindByTagsContaining(ctx context.Context, tag string) ([]*types.Note, error) {
	return m.notes(m.Called(ctx, tag))
}

func (m *MockNoteStore) CountByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNoteStore) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// sliceCursor serves a fixed list of notes.
type sliceCursor struct {
	notes []*types.Note
	pos   int
}

func (c *sliceCursor) Next(ctx context.Context) bool {
	if c.pos >= len(c.notes) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Note() (*types.Note, error)      { return c.notes[c.pos-1], nil }
func (c *sliceCursor) Err() error                      { return nil }
func (c *sliceCursor) Close(ctx context.Context) error { return nil }

// sliceChanges serves a fixed list of notifications, then ends cleanly.
type sliceChanges struct {
	changes []*types.RawChange
	pos     int
}

func (c *sliceChanges) Next(ctx context.Context) bool {
	if c.pos >= len(c.changes) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceChanges) Change() *types.RawChange         { return c.changes[c.pos-1] }
func (c *sliceChanges) Err() error                      { return nil }
func (c *sliceChanges) Close(ctx context.Context) error { return nil }
