package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IndexSpec names a collection and the sort key its list queries use.
type IndexSpec struct {
	Collection string
	Sort       bson.D
}

// EnsureIndexes creates the list-sort index and a created_at index on each
// collection. Existing identical indexes are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, specs []IndexSpec, logger *zap.Logger) error {
	for _, spec := range specs {
		models := []mongo.IndexModel{{Keys: bson.D{{Key: "created_at", Value: 1}}}}
		if len(spec.Sort) > 0 && spec.Sort[0].Key != "created_at" {
			models = append(models, mongo.IndexModel{Keys: spec.Sort})
		}
		names, err := db.Collection(spec.Collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", spec.Collection, err)
		}
		logger.Debug("indexes ensured", zap.String("collection", spec.Collection), zap.Strings("indexes", names))
	}
	return nil
}
