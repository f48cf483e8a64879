package services

import (
	"context"
	"fmt"

	"github.com/syntrixbase/notes/internal/api/rest"
	"github.com/syntrixbase/notes/internal/api/stream"
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/notes"
	"github.com/syntrixbase/notes/internal/relay"
	"github.com/syntrixbase/notes/internal/server"
	storageconfig "github.com/syntrixbase/notes/internal/storage/config"
	"github.com/syntrixbase/notes/internal/storage/mongo"
	"github.com/syntrixbase/notes/internal/storage/types"
)

type mongoStorage struct {
	provider *mongo.Provider
	store    types.NoteStore
}

func (s *mongoStorage) Notes() types.NoteStore { return s.store }

func (s *mongoStorage) Close(ctx context.Context) error { return s.provider.Close(ctx) }

var storageFactory = func(ctx context.Context, cfg storageconfig.Config) (noteStorage, error) {
	provider, err := mongo.NewProvider(ctx, cfg.Mongo.URI, cfg.Mongo.DatabaseName, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	return &mongoStorage{
		provider: provider,
		store:    mongo.NewNoteStore(provider.Database(), cfg.NotesCollection),
	}, nil
}

var publisherFactory = func(url string) (relay.Publisher, error) {
	return relay.NewNATSPublisher(url)
}

// Init connects to storage and builds every component. Nothing is served until Start.
func (m *Manager) Init(ctx context.Context) error {
	if err := m.initStorage(ctx); err != nil {
		return err
	}

	store := m.storage.Notes()
	m.feed = feed.New(store,
		feed.WithLogger(m.logger),
		feed.WithCollection(m.cfg.Storage.NotesCollection),
		feed.WithBatchSize(m.cfg.Storage.ChangeStreamBatchSize),
	)
	m.notes = notes.NewService(store, m.feed, m.logger)

	m.initHTTPServer()

	if m.cfg.Relay.Enabled {
		if err := m.initRelay(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) initStorage(ctx context.Context) error {
	s, err := storageFactory(ctx, m.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	m.storage = s

	if err := s.Notes().EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure note indexes: %w", err)
	}
	m.logger.Info("Storage initialized",
		"database", m.cfg.Storage.Mongo.DatabaseName,
		"collection", m.cfg.Storage.NotesCollection)
	return nil
}

func (m *Manager) initHTTPServer() {
	m.server = server.New(m.cfg.Server, m.logger)
	mux := m.server.HTTPMux()
	rest.NewHandler(m.notes, m.logger).RegisterRoutes(mux)
	stream.NewHandler(m.notes, m.cfg.Stream, m.logger).RegisterRoutes(mux)
}

func (m *Manager) initRelay() error {
	pub, err := publisherFactory(m.cfg.Relay.URL)
	if err != nil {
		return fmt.Errorf("failed to initialize relay: %w", err)
	}
	m.publisher = pub
	m.relay = relay.New(m.feed, pub, m.cfg.Relay.SubjectPrefix, m.logger)
	m.logger.Info("Relay initialized", "url", m.cfg.Relay.URL, "prefix", m.cfg.Relay.SubjectPrefix)
	return nil
}
