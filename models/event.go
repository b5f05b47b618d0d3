package models

type Event struct {
	Base        `bson:",inline"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Date        string   `bson:"date" json:"date"` // YYYY-MM-DD or RFC3339
	Time        string   `bson:"time" json:"time"`
	Location    string   `bson:"location" json:"location"`
	Category    string   `bson:"category" json:"category"`
	Interested  string   `bson:"interested" json:"interested"`
	Status      string   `bson:"status" json:"status"` // upcoming, ongoing, completed
	Image       string   `bson:"image" json:"image"`
	Highlights  []string `bson:"highlights" json:"highlights"`
	Registered  int      `bson:"registered" json:"registered"`
	Capacity    int      `bson:"capacity" json:"capacity"`
	Volunteers  int      `bson:"volunteers" json:"volunteers"`
}
