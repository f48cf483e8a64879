package notes

import (
	"time"

	"github.com/syntrixbase/notes/internal/feed"
)

// NoteRequest is the body of create and update requests.
type NoteRequest struct {
	Title    string `json:"title" validate:"notblank,max=200"`
	Content  string `json:"content" validate:"notblank,max=5000"`
	Category string `json:"category" validate:"max=50"`

	// Important is optional and defaults to false
	Important *bool  `json:"important"`
	Tags      string `json:"tags"`
}

func (r *NoteRequest) important() bool {
	return r.Important != nil && *r.Important
}

// NoteResponse is the public representation of a stored note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Important bool      `json:"important"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      string    `json:"tags,omitempty"`
}

// NoteResponseEvent is one change feed event as streamed to clients.
// Body is null for DELETED events.
type NoteResponseEvent struct {
	EventType feed.Kind     `json:"eventType"`
	Body      *NoteResponse `json:"body"`
	EntityID  string        `json:"entityId"`
}
