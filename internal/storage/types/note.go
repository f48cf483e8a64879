package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotesCollection is the collection notes are stored in.
const NotesCollection = "notes"

// Note is a stored note document
type Note struct {
	// ID is the mongo object id, zero until the note is first saved
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	Title     string `json:"title" bson:"title"`
	Content   string `json:"content" bson:"content"`
	Category  string `json:"category,omitempty" bson:"category,omitempty"`
	Important bool   `json:"important" bson:"important"`

	// Tags is a free-form, comma separated tag list
	Tags string `json:"tags,omitempty" bson:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// EntityID returns the hex form of the note id, or "" for an unsaved note.
func (n *Note) EntityID() string {
	if n == nil || n.ID.IsZero() {
		return ""
	}
	return n.ID.Hex()
}
