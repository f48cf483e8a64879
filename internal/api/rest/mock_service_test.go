package rest

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) response(args mock.Arguments) (*notes.NoteResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notes.NoteResponse), args.Error(1)
}

func (m *MockNoteService) list(args mock.Arguments) ([]*notes.NoteResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notes.NoteResponse), args.Error(1)
}

func (m *MockNoteService) CreateNote(ctx context.Context, req notes.NoteRequest) (*notes.NoteResponse, error) {
	return m.response(m.Called(ctx, req))
}

func (m *MockNoteService) GetAllNotes(ctx context.Context) ([]*notes.NoteResponse, error) {
	return m.list(m.Called(ctx))
}

func (m *MockNoteService) GetNoteByID(ctx context.Context, id string) (*notes.NoteResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockNoteService) UpdateNote(ctx context.Context, id string, req notes.NoteRequest) (*notes.NoteResponse, error) {
	return m.response(m.Called(ctx, id, req))
}

func (m *MockNoteService) DeleteNote(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNoteService) GetNotesByCategory(ctx context.Context, category string) ([]*notes.NoteResponse, error) {
	return m.list(m.Called(ctx, category))
}

func (m *MockNoteService) GetImportantNotes(ctx context.Context, important bool) ([]*notes.NoteResponse, error) {
	return m.list(m.Called(ctx, important))
}

func (m *MockNoteService) SearchNotesByTitle(ctx context.Context, title string) ([]*notes.NoteResponse, error) {
	return m.list(m.Called(ctx, title))
}

func (m *MockNoteService) SearchNotesByContent(ctx context.Context, content string) ([]*notes.NoteResponse, error) {
	return m.list(m.Called(ctx, content))
}

func (m *MockNoteService) GetNotesByTag(ctx context.Context, tag string) ([]*notes.NoteResponse, error) {
	return m.list(m.Called(ctx, tag))
}

func (m *MockNoteService) CountNotesByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteService) StreamAllWithUpdates(ctx context.Context) (feed.Iterator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(feed.Iterator), args.Error(1)
}
