package notes

import (
	"github.com/syntrixbase/notes/internal/feed"
	"github.com/syntrixbase/notes/internal/storage/types"
)

// ToNoteResponse maps a stored note to its response form. A nil note maps to nil.
func ToNoteResponse(n *types.Note) *NoteResponse {
	if n == nil {
		return nil
	}
	return &NoteResponse{
		ID:        n.EntityID(),
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		Important: n.Important,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Tags:      n.Tags,
	}
}

func toNoteResponses(notes []*types.Note) []*NoteResponse {
	out := make([]*NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = ToNoteResponse(n)
	}
	return out
}

// ToNoteResponseEvent maps a feed event to the event streamed to clients.
func ToNoteResponseEvent(ev feed.Event) NoteResponseEvent {
	return NoteResponseEvent{
		EventType: ev.Kind,
		Body:      ToNoteResponse(ev.Entity),
		EntityID:  ev.EntityID,
	}
}
