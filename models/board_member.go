package models

type BoardMember struct {
	Base     `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Position string `bson:"position" json:"position"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
	Image    string `bson:"image" json:"image"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Order    int    `bson:"order" json:"order"`
}
