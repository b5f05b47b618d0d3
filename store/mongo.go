package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo is a Store backed by one MongoDB collection.
type Mongo[T any, PT Document[T]] struct {
	c    *mongo.Collection
	sort bson.D
}

func NewMongo[T any, PT Document[T]](db *mongo.Database, collection string, sort bson.D) *Mongo[T, PT] {
	return &Mongo[T, PT]{c: db.Collection(collection), sort: sort}
}

func (s *Mongo[T, PT]) fail(op string, err error) error {
	return &Error{Op: op, Collection: s.c.Name(), Err: err}
}

func (s *Mongo[T, PT]) List(ctx context.Context) ([]T, error) {
	opts := options.Find()
	if len(s.sort) > 0 {
		opts.SetSort(s.sort)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, s.fail("find", err)
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, s.fail("decode", err)
	}
	return items, nil
}

func (s *Mongo[T, PT]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, s.fail("find", err)
	}
	return doc, nil
}

func (s *Mongo[T, PT]) Create(ctx context.Context, doc T) (T, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	meta := PT(&doc).Meta()
	meta.ID = primitive.NewObjectID()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		var zero T
		return zero, s.fail("insert", err)
	}
	return doc, nil
}

func (s *Mongo[T, PT]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (T, error) {
	update := cleanSet(set)
	update["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	var doc T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, s.fail("update", err)
	}
	return doc, nil
}

func (s *Mongo[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, s.fail("delete", err)
	}
	return doc, nil
}

func (s *Mongo[T, PT]) Count(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, s.fail("count", err)
	}
	return n, nil
}

func (s *Mongo[T, PT]) Ping(ctx context.Context) error {
	if err := s.c.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return s.fail("ping", err)
	}
	return nil
}
