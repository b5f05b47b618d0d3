package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var programCategories = []string{"Education", "Healthcare", "Nutrition", "Skills Training", "Environment", "Women Empowerment"}

type createProgramInput struct {
	Title         string   `form:"title" json:"title" binding:"required,notblank"`
	Description   string   `form:"description" json:"description" binding:"required,notblank"`
	Category      string   `form:"category" json:"category"`
	Highlights    []string `form:"highlights" json:"highlights"`
	Beneficiaries int      `form:"beneficiaries" json:"beneficiaries" binding:"gte=0"`
	Status        string   `form:"status" json:"status" binding:"omitempty,oneof=active completed planned"`
	Order         int      `form:"order" json:"order"`
	Image         string   `form:"-" json:"image"`
	ImageURL      string   `form:"imageUrl" json:"imageUrl"`
}

type updateProgramInput struct {
	Title         *string   `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Description   *string   `form:"description" json:"description" bson:"description,omitempty" binding:"omitempty,notblank"`
	Category      *string   `form:"category" json:"category" bson:"category,omitempty"`
	Highlights    *[]string `form:"highlights" json:"highlights" bson:"highlights,omitempty"`
	Beneficiaries *int      `form:"beneficiaries" json:"beneficiaries" bson:"beneficiaries,omitempty" binding:"omitempty,gte=0"`
	Status        *string   `form:"status" json:"status" bson:"status,omitempty" binding:"omitempty,oneof=active completed planned"`
	Order         *int      `form:"order" json:"order" bson:"order,omitempty"`
	Image         string    `form:"-" json:"image" bson:"-"`
	ImageURL      string    `form:"imageUrl" json:"imageUrl" bson:"-"`
}

func Programs() Schema[models.Program] {
	return Schema[models.Program]{
		Name:       "programs",
		Label:      "program",
		Sort:       orderSort,
		Categories: programCategories,
		Build:      buildProgram,
		Patch:      patchProgram,
		Media:      func(p models.Program) []string { return []string{p.Image} },
	}
}

func buildProgram(r *Request) (models.Program, error) {
	var in createProgramInput
	if err := r.Bind(&in); err != nil {
		return models.Program{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.Program{}, err
	}

	program := models.Program{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Highlights:    listOf(in.Highlights),
		Beneficiaries: in.Beneficiaries,
		Status:        orDefault(in.Status, "active"),
		Order:         in.Order,
	}

	img, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
	if err != nil {
		return program, err
	}
	program.Image = img
	return program, nil
}

func patchProgram(r *Request, existing models.Program) (bson.M, error) {
	var in updateProgramInput
	if err := r.Bind(&in); err != nil {
		return nil, err
	}
	if err := r.CheckCategory(deref(in.Category)); err != nil {
		return nil, err
	}
	if in.Highlights != nil {
		*in.Highlights = listOf(*in.Highlights)
	}

	set, err := changes(in)
	if err != nil {
		return nil, err
	}
	if err := r.PatchImage(set, "image", "image", firstOf(in.ImageURL, in.Image), existing.Image); err != nil {
		return nil, err
	}
	return set, nil
}
