package models

type Campaign struct {
	Base          `bson:",inline"`
	Title         string   `bson:"title" json:"title"`
	Description   string   `bson:"description" json:"description"`
	Category      string   `bson:"category" json:"category"`
	GoalAmount    float64  `bson:"goal_amount" json:"goalAmount"`
	RaisedAmount  float64  `bson:"raised_amount" json:"raisedAmount"`
	Images        []string `bson:"images" json:"images"` // at most 3
	Location      string   `bson:"location,omitempty" json:"location,omitempty"`
	Status        string   `bson:"status" json:"status"` // active, completed, paused
	Beneficiaries int      `bson:"beneficiaries" json:"beneficiaries"`
	StartDate     string   `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate       string   `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Order         int      `bson:"order" json:"order"`
}
