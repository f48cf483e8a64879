package types

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// OperationType is the change stream operation tag.
// The empty value means the notification carried no operation type.
type OperationType string

const (
	OperationInsert     OperationType = "insert"
	OperationUpdate     OperationType = "update"
	OperationReplace    OperationType = "replace"
	OperationDelete     OperationType = "delete"
	OperationInvalidate OperationType = "invalidate"
	OperationDrop       OperationType = "drop"
)

// RawChange is a change notification as the storage engine reports it.
type RawChange struct {
	OperationType OperationType `bson:"operationType"`

	// FullDocument is the resulting document for insert, update and replace
	FullDocument *Note `bson:"fullDocument,omitempty"`

	// DocumentKey identifies the affected document, principally for deletes
	DocumentKey bson.M `bson:"documentKey,omitempty"`

	ResumeToken bson.Raw `bson:"_id,omitempty"`
}

// SubscribeOptions configures a change subscription.
type SubscribeOptions struct {
	// Collection to watch; empty means the store's own collection
	Collection string

	// BatchSize bounds how many notifications the server returns per round trip
	BatchSize int32

	// ResumeAfter resumes the stream after the given token, nil means "from now"
	ResumeAfter bson.Raw
}

// NoteCursor is a lazy, finite sequence of stored notes.
type NoteCursor interface {
	// Next advances to the next note. It returns false on exhaustion or error.
	Next(ctx context.Context) bool

	// Note decodes the current note.
	Note() (*Note, error)

	// Err returns the error that stopped iteration, if any.
	Err() error

	Close(ctx context.Context) error
}

// ChangeCursor is a lazy, unbounded sequence of raw change notifications.
type ChangeCursor interface {
	// Next blocks until a notification arrives. It returns false when the
	// subscription ends, fails or ctx is done.
	Next(ctx context.Context) bool

	// Change returns the current notification, or nil if it could not be decoded.
	Change() *RawChange

	Err() error

	Close(ctx context.Context) error
}

// NoteSource supplies the two primitives the change feed is built on.
type NoteSource interface {
	// ScanAll reads every stored note.
	ScanAll(ctx context.Context) (NoteCursor, error)

	// Subscribe opens a change notification subscription.
	Subscribe(ctx context.Context, opts SubscribeOptions) (ChangeCursor, error)
}

// NoteStore defines the interface for note storage operations
type NoteStore interface {
	NoteSource

	// Save inserts a note with a zero ID or replaces the stored one
	Save(ctx context.Context, note *Note) (*Note, error)

	FindByID(ctx context.Context, id string) (*Note, error)
	FindAll(ctx context.Context) ([]*Note, error)
	FindByCategory(ctx context.Context, category string) ([]*Note, error)
	FindByImportant(ctx context.Context, important bool) ([]*Note, error)

	// FindByTitleContaining matches the title case-insensitively
	FindByTitleContaining(ctx context.Context, title string) ([]*Note, error)

	// FindByContentContaining matches the content case-insensitively
	FindByContentContaining(ctx context.Context, content string) ([]*Note, error)

	// FindByTagsContaining matches the tag list case-insensitively
	FindByTagsContaining(ctx context.Context, tag string) ([]*Note, error)

	CountByCategory(ctx context.Context, category string) (int64, error)
	Delete(ctx context.Context, id string) error

	EnsureIndexes(ctx context.Context) error
}
