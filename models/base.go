package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placeholder is the image reference stored when an entity is created without one.
const Placeholder = "/placeholder.svg"

// Base carries the store-generated fields shared by every managed entity.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`

	// Uploaded lists media URLs this server uploaded for the entity. Only
	// these are ever removed from the provider; pasted URLs are left alone.
	Uploaded []string `bson:"uploaded_media,omitempty" json:"-"`
}

// UploadedKey is the stored field name of Base.Uploaded.
const UploadedKey = "uploaded_media"

// Meta gives generic code access to the embedded Base.
func (b *Base) Meta() *Base { return b }
