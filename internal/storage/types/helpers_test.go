package types

import (
	"regexp"
	"testing"

	"github.com/syntrixbase/notes/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseNoteID(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	got, err := ParseNoteID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "xyz", "123", oid.Hex() + "00"} {
		_, err := ParseNoteID(bad)
		assert.ErrorIs(t, err, model.ErrInvalidID, "id %q", bad)
	}
}

func TestNewNote(t *testing.T) {
	t.Parallel()

	n := NewNote("Title", "Body", "work", true, "a, b")
	assert.True(t, n.ID.IsZero())
	assert.Equal(t, "Title", n.Title)
	assert.Equal(t, "work", n.Category)
	assert.True(t, n.Important)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestNote_EntityID(t *testing.T) {
	t.Parallel()

	var nilNote *Note
	assert.Equal(t, "", nilNote.EntityID())
	assert.Equal(t, "", (&Note{}).EntityID())

	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), (&Note{ID: oid}).EntityID())
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	p := ContainsPattern("a.b*")
	assert.Equal(t, "i", p.Options)

	re := regexp.MustCompile("(?i)" + p.Pattern)
	assert.True(t, re.MatchString("xxA.B*yy"))
	assert.False(t, re.MatchString("aXbbb"))
}
