package feed

import (
	"fmt"

	"github.com/syntrixbase/notes/internal/storage/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DropReason says why a notification produced no event.
type DropReason string

const (
	DropNone           DropReason = ""
	DropMissing        DropReason = "missing_notification"
	DropMissingOpType  DropReason = "missing_operation_type"
	DropMissingBody    DropReason = "missing_body"
	DropMissingKey     DropReason = "missing_document_key"
	DropUnsupportedKey DropReason = "unsupported_document_key"
	DropUnknownOpType  DropReason = "unknown_operation_type"
)

// Translate maps one raw notification to at most one event.
// It never fails: a notification that cannot become a valid event is
// reported as dropped.
func Translate(raw *types.RawChange) (Event, bool) {
	evt, reason := translate(raw)
	return evt, reason == DropNone
}

func translate(raw *types.RawChange) (Event, DropReason) {
	if raw == nil {
		return Event{}, DropMissing
	}

	switch raw.OperationType {
	case "":
		return Event{}, DropMissingOpType
	case types.OperationInsert:
		return withBody(Inserted, raw.FullDocument)
	case types.OperationUpdate, types.OperationReplace:
		return withBody(Updated, raw.FullDocument)
	case types.OperationDelete:
		if raw.DocumentKey == nil {
			return Event{}, DropMissingKey
		}
		key, ok := raw.DocumentKey["_id"]
		if !ok || key == nil {
			return Event{}, DropMissingKey
		}
		id, ok := formatID(key)
		if !ok {
			return Event{}, DropUnsupportedKey
		}
		return Deleted(id), DropNone
	default:
		return Event{}, DropUnknownOpType
	}
}

func withBody(build func(*types.Note) Event, body *types.Note) (Event, DropReason) {
	// updateLookup yields a null body when the note was deleted before the lookup ran
	if body == nil || body.ID.IsZero() {
		return Event{}, DropMissingBody
	}
	return build(body), DropNone
}

// formatID renders a document key _id the way note ids are exposed.
func formatID(id any) (string, bool) {
	switch v := id.(type) {
	case primitive.ObjectID:
		if v.IsZero() {
			return "", false
		}
		return v.Hex(), true
	case string:
		return v, v != ""
	case int32, int64:
		return fmt.Sprintf("%d", v), true
	default:
		return "", false
	}
}
