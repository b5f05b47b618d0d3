package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var galleryCategories = []string{"Events", "Programs", "Community", "Volunteers", "Campaigns"}

type createGalleryInput struct {
	Title       string `form:"title" json:"title" binding:"required,notblank"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
	Order       int    `form:"order" json:"order"`
	Image       string `form:"-" json:"image"`
	ImageURL    string `form:"imageUrl" json:"imageUrl"`
}

type updateGalleryInput struct {
	Title       *string `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Description *string `form:"description" json:"description" bson:"description,omitempty"`
	Category    *string `form:"category" json:"category" bson:"category,omitempty"`
	Order       *int    `form:"order" json:"order" bson:"order,omitempty"`
	Image       string  `form:"-" json:"image" bson:"-"`
	ImageURL    string  `form:"imageUrl" json:"imageUrl" bson:"-"`
}

func Gallery() Schema[models.GalleryImage] {
	return Schema[models.GalleryImage]{
		Name:       "gallery",
		Label:      "gallery image",
		Sort:       orderSort,
		Categories: galleryCategories,
		Build: func(r *Request) (models.GalleryImage, error) {
			var in createGalleryInput
			if err := r.Bind(&in); err != nil {
				return models.GalleryImage{}, err
			}
			if err := r.CheckCategory(in.Category); err != nil {
				return models.GalleryImage{}, err
			}
			img := models.GalleryImage{
				Title:       in.Title,
				Description: in.Description,
				Category:    in.Category,
				Order:       in.Order,
			}
			u, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
			img.Image = u
			return img, err
		},
		Patch: func(r *Request, existing models.GalleryImage) (bson.M, error) {
			var in updateGalleryInput
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
			return set, r.PatchImage(set, "image", "image", firstOf(in.ImageURL, in.Image), existing.Image)
		},
		Media: func(g models.GalleryImage) []string { return []string{g.Image} },
	}
}
