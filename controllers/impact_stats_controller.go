package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var impactCategories = []string{"Education", "Health", "Environment", "Community", "Livelihood"}

type createImpactStatInput struct {
	Label       string `form:"label" json:"label" binding:"required,notblank"`
	Value       string `form:"value" json:"value" binding:"required,notblank"`
	Icon        string `form:"icon" json:"icon"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
	Order       int    `form:"order" json:"order"`
}

type updateImpactStatInput struct {
	Label       *string `form:"label" json:"label" bson:"label,omitempty" binding:"omitempty,notblank"`
	Value       *string `form:"value" json:"value" bson:"value,omitempty" binding:"omitempty,notblank"`
	Icon        *string `form:"icon" json:"icon" bson:"icon,omitempty"`
	Description *string `form:"description" json:"description" bson:"description,omitempty"`
	Category    *string `form:"category" json:"category" bson:"category,omitempty"`
	Order       *int    `form:"order" json:"order" bson:"order,omitempty"`
}

// ImpactStats carry no media. Value is display text such as "10,000+".
func ImpactStats() Schema[models.ImpactStat] {
	return Schema[models.ImpactStat]{
		Name:       "impact-stats",
		Label:      "impact stat",
		Sort:       orderSort,
		Categories: impactCategories,
		Build: func(r *Request) (models.ImpactStat, error) {
			var in createImpactStatInput
			if err := r.Bind(&in); err != nil {
				return models.ImpactStat{}, err
			}
			return models.ImpactStat{
				Label:       in.Label,
				Value:       in.Value,
				Icon:        in.Icon,
				Description: in.Description,
				Category:    in.Category,
				Order:       in.Order,
			}, r.CheckCategory(in.Category)
		},
		Patch: func(r *Request, _ models.ImpactStat) (bson.M, error) {
			var in updateImpactStatInput
			if err := r.Bind(&in); err != nil {
				return nil, err
			}
			if err := r.CheckCategory(deref(in.Category)); err != nil {
				return nil, err
			}
			return changes(in)
		},
	}
}
