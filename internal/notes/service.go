// Package notes implements note management on top of the note store and
// exposes the combined snapshot and change feed to transports.
package notes

import (
	"context"
	"errors"
	"log/slog"

	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/storage/types"
	"github.com/syntrixbase/notes/pkg/model"
)

// Service is the note application service.
type Service interface {
	CreateNote(ctx context.Context, req NoteRequest) (*NoteResponse, error)
	GetAllNotes(ctx context.Context) ([]*NoteResponse, error)
	GetNoteByID(ctx context.Context, id string) (*NoteResponse, error)
	UpdateNote(ctx context.Context, id string, req NoteRequest) (*NoteResponse, error)
	DeleteNote(ctx context.Context, id string) error

	GetNotesByCategory(ctx context.Context, category string) ([]*NoteResponse, error)
	GetImportantNotes(ctx context.Context, important bool) ([]*NoteResponse, error)
	SearchNotesByTitle(ctx context.Context, title string) ([]*NoteResponse, error)
	SearchNotesByContent(ctx context.Context, content string) ([]*NoteResponse, error)
	GetNotesByTag(ctx context.Context, tag string) ([]*NoteResponse, error)
	CountNotesByCategory(ctx context.Context, category string) (int64, error)

	// StreamAllWithUpdates returns every stored note as INITIAL events
	// followed by live changes. Map events with ToNoteResponseEvent.
	StreamAllWithUpdates(ctx context.Context) (feed.Iterator, error)
}

type service struct {
	store  types.NoteStore
	feed   *feed.Feed
	logger *slog.Logger
}

// NewService creates a note service. The feed must be built on the same store.
func NewService(store types.NoteStore, f *feed.Feed, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:  store,
		feed:   f,
		logger: logger.With("component", "notes"),
	}
}

func (s *service) CreateNote(ctx context.Context, req NoteRequest) (*NoteResponse, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}

	s.logger.Info("Creating new note", "title", req.Title)
	saved, err := s.store.Save(ctx, types.NewNote(req.Title, req.Content, req.Category, req.important(), req.Tags))
	if err != nil {
		s.logger.Error("Error creating note", "error", err)
		return nil, err
	}

	s.logger.Info("Created note", "id", saved.EntityID())
	return ToNoteResponse(saved), nil
}

func (s *service) GetAllNotes(ctx context.Context) ([]*NoteResponse, error) {
	return s.list(ctx, "Fetching all notes", s.store.FindAll)
}

func (s *service) GetNoteByID(ctx context.Context, id string) (*NoteResponse, error) {
	note, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToNoteResponse(note), nil
}

func (s *service) UpdateNote(ctx context.Context, id string, req NoteRequest) (*NoteResponse, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}

	s.logger.Info("Updating note", "id", id)
	note, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Category = req.Category
	note.Important = req.important()
	note.Tags = req.Tags

	saved, err := s.store.Save(ctx, note)
	if err != nil {
		// deleted between read and write
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNoteNotFound(id)
		}
		s.logger.Error("Error updating note", "id", id, "error", err)
		return nil, err
	}
	return ToNoteResponse(saved), nil
}

func (s *service) DeleteNote(ctx context.Context, id string) error {
	s.logger.Info("Deleting note", "id", id)
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return ErrNoteNotFound(id)
		}
		s.logger.Error("Error deleting note", "id", id, "error", err)
		return err
	}
	return nil
}

func (s *service) GetNotesByCategory(ctx context.Context, category string) ([]*NoteResponse, error) {
	return s.list(ctx, "Fetching notes by category", func(ctx context.Context) ([]*types.Note, error) {
		return s.store.FindByCategory(ctx, category)
	}, "category", category)
}

func (s *service) GetImportantNotes(ctx context.Context, important bool) ([]*NoteResponse, error) {
	return s.list(ctx, "Fetching important notes", func(ctx context.Context) ([]*types.Note, error) {
		return s.store.FindByImportant(ctx, important)
	}, "important", important)
}

func (s *service) SearchNotesByTitle(ctx context.Context, title string) ([]*NoteResponse, error) {
	return s.list(ctx, "Searching notes by title", func(ctx context.Context) ([]*types.Note, error) {
		return s.store.FindByTitleContaining(ctx, title)
	}, "title", title)
}

func (s *service) SearchNotesByContent(ctx context.Context, content string) ([]*NoteResponse, error) {
	return s.list(ctx, "Searching notes by content", func(ctx context.Context) ([]*types.Note, error) {
		return s.store.FindByContentContaining(ctx, content)
	})
}

func (s *service) GetNotesByTag(ctx context.Context, tag string) ([]*NoteResponse, error) {
	return s.list(ctx, "Fetching notes by tag", func(ctx context.Context) ([]*types.Note, error) {
		return s.store.FindByTagsContaining(ctx, tag)
	}, "tag", tag)
}

func (s *service) CountNotesByCategory(ctx context.Context, category string) (int64, error) {
	count, err := s.store.CountByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Error counting notes by category", "category", category, "error", err)
		return 0, err
	}
	s.logger.Info("Counted notes by category", "category", category, "count", count)
	return count, nil
}

func (s *service) StreamAllWithUpdates(ctx context.Context) (feed.Iterator, error) {
	seq, err := s.feed.StreamAllWithUpdates(ctx)
	if err != nil {
		s.logger.Error("Error opening note updates", "error", err)
		return nil, err
	}
	s.logger.Info("Subscribed to note updates")
	return seq, nil
}

func (s *service) find(ctx context.Context, id string) (*types.Note, error) {
	note, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNoteNotFound(id)
		}
		s.logger.Error("Error fetching note", "id", id, "error", err)
		return nil, err
	}
	return note, nil
}

func (s *service) list(ctx context.Context, msg string, query func(context.Context) ([]*types.Note, error), attrs ...any) ([]*NoteResponse, error) {
	s.logger.Info(msg, attrs...)
	found, err := query(ctx)
	if err != nil {
		s.logger.Error(msg+" failed", append(attrs, "error", err)...)
		return nil, err
	}
	return toNoteResponses(found), nil
}
