// Package store persists managed entities in per-type document collections.
//
// A Store is generic over the entity type. Every entity embeds models.Base,
// whose ID and CreatedAt are assigned exactly once by the store on Create and
// are never touched by Update.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/phillip/charity-admin-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("not found")

// Error wraps a persistence failure (connectivity, encoding, driver errors).
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Document is satisfied by a pointer to any struct embedding models.Base.
type Document[T any] interface {
	*T
	Meta() *models.Base
}

// Store is the collection-level contract every entity type is served through.
type Store[T any] interface {
	// List returns every entity ordered by the collection's sort key.
	// It returns an empty, non-nil slice when the collection is empty.
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id primitive.ObjectID) (T, error)
	// Create assigns ID and timestamps and persists doc.
	Create(ctx context.Context, doc T) (T, error)
	// Update merges set onto the stored document and returns the result.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (T, error)
	// Delete removes the document and returns what was removed.
	Delete(ctx context.Context, id primitive.ObjectID) (T, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Backend selects where Open places collections. A nil DB keeps everything
// in process memory.
type Backend struct {
	DB *mongo.Database
}

// Open returns the store for collection on the configured backend.
func Open[T any, PT Document[T]](b *Backend, collection string, sort bson.D) Store[T] {
	if b != nil && b.DB != nil {
		return NewMongo[T, PT](b.DB, collection, sort)
	}
	return NewMemory[T, PT](collection, sort)
}

// immutableKeys are stripped from every update.
var immutableKeys = []string{"_id", "created_at"}

func cleanSet(set bson.M) bson.M {
	out := make(bson.M, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	for _, k := range immutableKeys {
		delete(out, k)
	}
	return out
}
