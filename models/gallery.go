package models

type GalleryImage struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category" json:"category"`
	Image       string `bson:"image" json:"image"`
	Order       int    `bson:"order" json:"order"`
}
