package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var collaboratorCategories = []string{"Corporate", "NGO", "Government", "Academic", "Media", "Foundation"}

type createCollaboratorInput struct {
	Name        string `form:"name" json:"name" binding:"required,notblank"`
	Website     string `form:"website" json:"website"`
	Category    string `form:"category" json:"category"`
	Description string `form:"description" json:"description"`
	Order       int    `form:"order" json:"order"`
	Logo        string `form:"-" json:"logo"`
	LogoURL     string `form:"logoUrl" json:"logoUrl"`
}

type updateCollaboratorInput struct {
	Name        *string `form:"name" json:"name" bson:"name,omitempty" binding:"omitempty,notblank"`
	Website     *string `form:"website" json:"website" bson:"website,omitempty"`
	Category    *string `form:"category" json:"category" bson:"category,omitempty"`
	Description *string `form:"description" json:"description" bson:"description,omitempty"`
	Order       *int    `form:"order" json:"order" bson:"order,omitempty"`
	Logo        string  `form:"-" json:"logo" bson:"-"`
	LogoURL     string  `form:"logoUrl" json:"logoUrl" bson:"-"`
}

func Collaborators() Schema[models.Collaborator] {
	return Schema[models.Collaborator]{
		Name:       "collaborators",
		Label:      "collaborator",
		Sort:       orderSort,
		Categories: collaboratorCategories,
		Build: func(r *Request) (models.Collaborator, error) {
			var in createCollaboratorInput
			if err := r.Bind(&in); err != nil {
				return models.Collaborator{}, err
			}
			if err := r.CheckCategory(in.Category); err != nil {
				return models.Collaborator{}, err
			}
			c := models.Collaborator{
				Name:        in.Name,
				Website:     in.Website,
				Category:    in.Category,
				Description: in.Description,
				Order:       in.Order,
			}
			logo, err := r.Image("logo", firstOf(in.LogoURL, in.Logo), nil)
			c.Logo = logo
			return c, err
		},
		Patch: func(r *Request, existing models.Collaborator) (bson.M, error) {
			var in updateCollaboratorInput
			if err := r.Bind(&in); err != nil {
				return nil, err
			}
			if err := r.CheckCategory(deref(in.Category)); err != nil {
				return nil, err
			}
			set, err := changes(in)
			if err != nil {
				return nil, err
			}
			return set, r.PatchImage(set, "logo", "logo", firstOf(in.LogoURL, in.Logo), existing.Logo)
		},
		Media: func(c models.Collaborator) []string { return []string{c.Logo} },
	}
}
