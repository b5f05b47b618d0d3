package models

type Video struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category" json:"category"`
	VideoURL    string `bson:"video_url" json:"videoUrl"`
	Thumbnail   string `bson:"thumbnail" json:"thumbnail"`
	Duration    string `bson:"duration,omitempty" json:"duration,omitempty"`
	Order       int    `bson:"order" json:"order"`
}
