package models

type Banner struct {
	Base       `bson:",inline"`
	Title      string   `bson:"title" json:"title"`
	Subtitle   string   `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Images     []string `bson:"images" json:"images"`
	Link       string   `bson:"link,omitempty" json:"link,omitempty"`
	ButtonText string   `bson:"button_text,omitempty" json:"buttonText,omitempty"`
	IsActive   bool     `bson:"is_active" json:"isActive"`
	Order      int      `bson:"order" json:"order"`
}
