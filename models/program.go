package models

type Program struct {
	Base          `bson:",inline"`
	Title         string   `bson:"title" json:"title"`
	Description   string   `bson:"description" json:"description"`
	Category      string   `bson:"category" json:"category"`
	Image         string   `bson:"image" json:"image"`
	Highlights    []string `bson:"highlights" json:"highlights"`
	Beneficiaries int      `bson:"beneficiaries" json:"beneficiaries"`
	Status        string   `bson:"status" json:"status"` // active, completed
	Order         int      `bson:"order" json:"order"`
}
