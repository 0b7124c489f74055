package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by Get when a content document does not exist
// yet. Callers treat a missing document as empty content.
var ErrNotFound = errors.New("docstore: document not found")

// Store gives access to the named content documents. Each document is a
// small bag of arrays and maps mutated with atomic update operators:
// Push appends without clobbering concurrent appends, Pull removes
// matching items, SetField overwrites one field. After every write the
// document is re-read and broadcast to live subscribers.
type Store struct {
	col *mongo.Collection
	hub *Hub
}

func New(col *mongo.Collection) *Store {
	return &Store{col: col, hub: NewHub()}
}

func (s *Store) Hub() *Hub {
	return s.hub
}

// Get decodes the document with the given key into out.
func (s *Store) Get(ctx context.Context, key string, out any) error {
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// Push atomically appends item to the array field, creating the
// document if needed.
func (s *Store) Push(ctx context.Context, key, field string, item any) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$push": bson.M{field: item}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Pull atomically removes every item of the array field matching the
// given filter.
func (s *Store) Pull(ctx context.Context, key, field string, match bson.M) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$pull": bson.M{field: match}},
	)
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// SetField overwrites a single field of the document, creating the
// document if needed. Admin read-modify-write paths use this.
func (s *Store) SetField(ctx context.Context, key, field string, value any) error {
	return s.SetFields(ctx, key, bson.M{field: value})
}

// SetFields overwrites several fields at once.
func (s *Store) SetFields(ctx context.Context, key string, fields bson.M) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Raw returns the document as JSON, or "{}" when missing. The live
// stream sends this shape on connect and after every change.
func (s *Store) Raw(ctx context.Context, key string) ([]byte, error) {
	var doc bson.M
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return json.Marshal(doc)
}

func (s *Store) notify(key string) {
	if !s.hub.HasSubscribers(key) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	data, err := s.Raw(ctx, key)
	if err != nil {
		return
	}
	s.hub.Broadcast(key, data)
}
