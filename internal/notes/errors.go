package notes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syntrixbase/notes/pkg/model"
)

// NotFoundError reports a note id with no stored note.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "Note not found with ID: " + e.ID
}

// Is lets callers match with errors.Is(err, model.ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == model.ErrNotFound
}

// ErrNoteNotFound builds the error returned for an unknown note id.
func ErrNoteNotFound(id string) error {
	return &NotFoundError{ID: id}
}

// ValidationError carries one message per rejected request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
