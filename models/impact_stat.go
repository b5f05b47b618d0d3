package models

// ImpactStat is a headline counter such as "10,000+ meals served".
type ImpactStat struct {
	Base        `bson:",inline"`
	Label       string `bson:"label" json:"label"`
	Value       string `bson:"value" json:"value"`
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category" json:"category"`
	Order       int    `bson:"order" json:"order"`
}
