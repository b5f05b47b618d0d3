package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var complianceCategories = []string{"Registration", "Tax Exemption", "Audit Report", "Annual Report", "Certification"}

type createComplianceInput struct {
	Title       string `form:"title" json:"title" binding:"required,notblank"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
	DocumentURL string `form:"documentUrl" json:"documentUrl"`
	IssuedBy    string `form:"issuedBy" json:"issuedBy"`
	IssuedDate  string `form:"issuedDate" json:"issuedDate" binding:"flexdate"`
	Order       int    `form:"order" json:"order"`
	Image       string `form:"-" json:"image"`
	ImageURL    string `form:"imageUrl" json:"imageUrl"`
}

type updateComplianceInput struct {
	Title       *string `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Description *string `form:"description" json:"description" bson:"description,omitempty"`
	Category    *string `form:"category" json:"category" bson:"category,omitempty"`
	DocumentURL *string `form:"documentUrl" json:"documentUrl" bson:"document_url,omitempty"`
	IssuedBy    *string `form:"issuedBy" json:"issuedBy" bson:"issued_by,omitempty"`
	IssuedDate  *string `form:"issuedDate" json:"issuedDate" bson:"issued_date,omitempty" binding:"omitempty,flexdate"`
	Order       *int    `form:"order" json:"order" bson:"order,omitempty"`
	Image       string  `form:"-" json:"image" bson:"-"`
	ImageURL    string  `form:"imageUrl" json:"imageUrl" bson:"-"`
}

// Compliance documents must carry an image on create.
func Compliance() Schema[models.ComplianceDocument] {
	return Schema[models.ComplianceDocument]{
		Name:       "compliance",
		Label:      "compliance document",
		Sort:       orderSort,
		Categories: complianceCategories,
		Build:      buildCompliance,
		Patch:      patchCompliance,
		Media:      func(d models.ComplianceDocument) []string { return []string{d.Image} },
	}
}

func buildCompliance(r *Request) (models.ComplianceDocument, error) {
	var in createComplianceInput
	if err := r.Bind(&in); err != nil {
		return models.ComplianceDocument{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.ComplianceDocument{}, err
	}
	if err := r.RequireMedia("image", "image", in.ImageURL, in.Image); err != nil {
		return models.ComplianceDocument{}, err
	}

	doc := models.ComplianceDocument{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		DocumentURL: in.DocumentURL,
		IssuedBy:    in.IssuedBy,
		IssuedDate:  in.IssuedDate,
		Order:       in.Order,
	}

	img, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
	if err != nil {
		return doc, err
	}
	doc.Image = img
	return doc, nil
}

func patchCompliance(r *Request, existing models.ComplianceDocument) (bson.M, error) {
	var in updateComplianceInput
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
	if err := r.PatchImage(set, "image", "image", firstOf(in.ImageURL, in.Image), existing.Image); err != nil {
		return nil, err
	}
	return set, nil
}
