package models

// TrackRecord is one milestone on the organization's timeline.
type TrackRecord struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Year        int    `bson:"year" json:"year"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category" json:"category"`
	Image       string `bson:"image" json:"image"`
	Metric      string `bson:"metric,omitempty" json:"metric,omitempty"`
	Order       int    `bson:"order" json:"order"`
}
