package types

import (
	"fmt"
	"regexp"
	"time"

	"github.com/syntrixbase/notes/pkg/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseNoteID converts the external hex id into a mongo object id.
func ParseNoteID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", model.ErrInvalidID, id)
	}
	return oid, nil
}

// NewNote creates an unsaved note with both timestamps set to now
func NewNote(title, content, category string, important bool, tags string) *Note {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Note{
		Title:     title,
		Content:   content,
		Category:  category,
		Important: important,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ContainsPattern builds a case-insensitive "contains" regex for a literal term.
func ContainsPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
