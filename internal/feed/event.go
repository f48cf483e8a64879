// Package feed merges a one-time scan of the notes collection with its
// change stream into a single ordered event stream.
package feed

import "github.com/syntrixbase/notes/internal/storage/types"

// Kind is the normalized event kind.
type Kind string

const (
	// KindInitial marks a note that existed when the stream was opened.
	KindInitial Kind = "INITIAL"
	// KindInserted marks a note created after the stream was opened.
	KindInserted Kind = "INSERTED"
	// KindUpdated marks a note updated or replaced after the stream was opened.
	KindUpdated Kind = "UPDATED"
	// KindDeleted marks a note deleted after the stream was opened.
	KindDeleted Kind = "DELETED"
)

// IsValid checks if the kind is one of the four known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindInitial, KindInserted, KindUpdated, KindDeleted:
		return true
	default:
		return false
	}
}

// Event is the unit flowing through the feed.
// Entity is nil for KindDeleted, where EntityID is the only identifying data.
type Event struct {
	Kind     Kind
	Entity   *types.Note
	EntityID string
}

func withEntity(kind Kind, n *types.Note) Event {
	return Event{Kind: kind, Entity: n, EntityID: n.EntityID()}
}

// Initial builds a snapshot event.
func Initial(n *types.Note) Event { return withEntity(KindInitial, n) }

// Inserted builds an insert event.
func Inserted(n *types.Note) Event { return withEntity(KindInserted, n) }

// Updated builds an update event.
func Updated(n *types.Note) Event { return withEntity(KindUpdated, n) }

// Deleted builds a delete event that only carries the id.
func Deleted(id string) Event { return Event{Kind: KindDeleted, EntityID: id} }

// Valid reports whether the event may be delivered: a known kind, a non-empty
// id, and a body that is present with a matching id exactly when the kind is
// not KindDeleted.
func (e Event) Valid() bool {
	if !e.Kind.IsValid() || e.EntityID == "" {
		return false
	}
	if e.Kind == KindDeleted {
		return e.Entity == nil
	}
	return e.Entity != nil && e.Entity.EntityID() == e.EntityID
}
