package models

type Collaborator struct {
	Base        `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	Logo        string `bson:"logo" json:"logo"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	Category    string `bson:"category" json:"category"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Order       int    `bson:"order" json:"order"`
}
