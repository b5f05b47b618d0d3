package models

// MediaArticle is press coverage of the organization.
type MediaArticle struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Publication string `bson:"publication" json:"publication"`
	Excerpt     string `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content     string `bson:"content,omitempty" json:"content,omitempty"` // sanitized HTML
	Link        string `bson:"link,omitempty" json:"link,omitempty"`
	Date        string `bson:"date,omitempty" json:"date,omitempty"`
	Category    string `bson:"category" json:"category"`
	Image       string `bson:"image" json:"image"`
	Order       int    `bson:"order" json:"order"`
}
