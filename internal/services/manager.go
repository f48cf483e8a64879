// Package services wires storage, the change feed, the HTTP API and the relay
// into one process.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/syntrixbase/notes/internal/config"
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/relay"
	"github.com/syntrixbase/notes/internal/server"
	"github.com/syntrixbase/notes/internal/storage/types"
)

// noteStorage is an open note store together with the connection behind it.
type noteStorage interface {
	Notes() types.NoteStore
	Close(ctx context.Context) error
}

type relayRunner interface {
	RunWithRestart(ctx context.Context, initial, maxBackoff time.Duration)
}

type Manager struct {
	cfg    *config.Config
	logger *slog.Logger

	storage   noteStorage
	feed      *feed.Feed
	notes     notes.Service
	server    server.Service
	relay     relayRunner
	publisher relay.Publisher

	failed chan error
	wg     sync.WaitGroup
}

func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:    cfg,
		logger: logger,
		failed: make(chan error, 1),
	}
}

// Failed receives the first fatal error of a started component, e.g. the HTTP listener.
func (m *Manager) Failed() <-chan error {
	return m.failed
}

// NoteService returns the note service built by Init.
func (m *Manager) NoteService() notes.Service {
	return m.notes
}
