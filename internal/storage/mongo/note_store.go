package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/syntrixbase/notes/internal/storage/types"
	"github.com/syntrixbase/notes/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type noteStore struct {
	db         *mongo.Database
	collection string
}

// NewNoteStore initializes a MongoDB backed note store
func NewNoteStore(db *mongo.Database, collection string) types.NoteStore {
	if collection == "" {
		collection = types.NotesCollection
	}
	return &noteStore{
		db:         db,
		collection: collection,
	}
}

func (s *noteStore) getCollection(name string) *mongo.Collection {
	if name == "" {
		name = s.collection
	}
	return s.db.Collection(name)
}

func (s *noteStore) Save(ctx context.Context, note *types.Note) (*types.Note, error) {
	coll := s.getCollection("")
	now := time.Now().UTC().Truncate(time.Millisecond)

	saved := *note
	saved.UpdatedAt = now

	if saved.ID.IsZero() {
		saved.ID = primitive.NewObjectID()
		if saved.CreatedAt.IsZero() {
			saved.CreatedAt = now
		}
		if _, err := coll.InsertOne(ctx, &saved); err != nil {
			return nil, model.WrapError(err)
		}
		return &saved, nil
	}

	result, err := coll.ReplaceOne(ctx, bson.M{"_id": saved.ID}, &saved)
	if err != nil {
		return nil, model.WrapError(err)
	}
	if result.MatchedCount == 0 {
		return nil, model.ErrNotFound
	}
	return &saved, nil
}

func (s *noteStore) FindByID(ctx context.Context, id string) (*types.Note, error) {
	oid, err := types.ParseNoteID(id)
	if err != nil {
		// no stored note can have a malformed id
		return nil, model.ErrNotFound
	}

	var note types.Note
	err = s.getCollection("").FindOne(ctx, bson.M{"_id": oid}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, model.WrapError(err)
	}
	return &note, nil
}

func (s *noteStore) FindAll(ctx context.Context) ([]*types.Note, error) {
	return s.find(ctx, bson.M{})
}

func (s *noteStore) FindByCategory(ctx context.Context, category string) ([]*types.Note, error) {
	return s.find(ctx, bson.M{"category": category})
}

func (s *noteStore) FindByImportant(ctx context.Context, important bool) ([]*types.Note, error) {
	return s.find(ctx, bson.M{"important": important})
}

func (s *noteStore) FindByTitleContaining(ctx context.Context, title string) ([]*types.Note, error) {
	return s.find(ctx, bson.M{"title": types.ContainsPattern(title)})
}

func (s *noteStore) FindByContentContaining(ctx context.Context, content string) ([]*types.Note, error) {
	return s.find(ctx, bson.M{"content": types.ContainsPattern(content)})
}

func (s *noteStore) FindByTagsContaining(ctx context.Context, tag string) ([]*types.Note, error) {
	return s.find(ctx, bson.M{"tags": types.ContainsPattern(tag)})
}

func (s *noteStore) CountByCategory(ctx context.Context, category string) (int64, error) {
	count, err := s.getCollection("").CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, model.WrapError(err)
	}
	return count, nil
}

func (s *noteStore) Delete(ctx context.Context, id string) error {
	oid, err := types.ParseNoteID(id)
	if err != nil {
		return model.ErrNotFound
	}

	result, err := s.getCollection("").DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return model.WrapError(err)
	}
	if result.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *noteStore) ScanAll(ctx context.Context) (types.NoteCursor, error) {
	cursor, err := s.getCollection("").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return &noteCursor{cursor: cursor}, nil
}

func (s *noteStore) Subscribe(ctx context.Context, opts types.SubscribeOptions) (types.ChangeCursor, error) {
	// updateLookup so update notifications carry the resulting document
	csOpts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	if opts.BatchSize > 0 {
		csOpts.SetBatchSize(opts.BatchSize)
	}
	if opts.ResumeAfter != nil {
		csOpts.SetResumeAfter(opts.ResumeAfter)
	}

	stream, err := s.getCollection(opts.Collection).Watch(ctx, mongo.Pipeline{}, csOpts)
	if err != nil {
		return nil, err
	}
	return &changeCursor{stream: stream}, nil
}

// EnsureIndexes creates the indexes the category and importance lookups use
func (s *noteStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.getCollection("").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "important", Value: 1}}},
	})
	return err
}

func (s *noteStore) find(ctx context.Context, filter bson.M) ([]*types.Note, error) {
	cursor, err := s.getCollection("").Find(ctx, filter)
	if err != nil {
		return nil, model.WrapError(err)
	}
	defer cursor.Close(ctx)

	notes := []*types.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, model.WrapError(err)
	}
	return notes, nil
}
