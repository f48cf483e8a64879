package mongo

import (
	"context"

	"github.com/syntrixbase/notes/internal/storage/types"
	"go.mongodb.org/mongo-driver/mongo"
)

// noteCursor adapts a find cursor to types.NoteCursor
type noteCursor struct {
	cursor *mongo.Cursor
}

func (c *noteCursor) Next(ctx context.Context) bool { return c.cursor.Next(ctx) }

func (c *noteCursor) Note() (*types.Note, error) {
	var n types.Note
	if err := c.cursor.Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *noteCursor) Err() error { return c.cursor.Err() }

func (c *noteCursor) Close(ctx context.Context) error { return c.cursor.Close(ctx) }

// changeCursor adapts a change stream to types.ChangeCursor
type changeCursor struct {
	stream *mongo.ChangeStream
}

func (c *changeCursor) Next(ctx context.Context) bool { return c.stream.Next(ctx) }

// Change decodes the current notification. A notification that does not
// decode is reported as missing rather than failing the stream.
func (c *changeCursor) Change() *types.RawChange {
	var raw types.RawChange
	if err := c.stream.Decode(&raw); err != nil {
		return nil
	}
	return &raw
}

func (c *changeCursor) Err() error { return c.stream.Err() }

func (c *changeCursor) Close(ctx context.Context) error { return c.stream.Close(ctx) }
