package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag builds a weak validator for a single document.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	return fmt.Sprintf(`W/"%s-%d"`, id.Hex(), updatedAt.UnixMilli())
}

// GenerateListETag builds a validator for a collection listing. The count is
// part of the hash so deleting an older document still changes the tag.
func GenerateListETag(count int, latestID primitive.ObjectID, latestUpdate time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d:%s:%d", count, latestID.Hex(), latestUpdate.UnixMilli())))
	return `W/"` + hex.EncodeToString(sum[:8]) + `"`
}
