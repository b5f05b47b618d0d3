package controllers

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

// orderSort is the display order shared by most content types.
var orderSort = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}

type createBannerInput struct {
	Title      string   `form:"title" json:"title" binding:"required,notblank"`
	Subtitle   string   `form:"subtitle" json:"subtitle"`
	Link       string   `form:"link" json:"link"`
	ButtonText string   `form:"buttonText" json:"buttonText"`
	IsActive   *bool    `form:"isActive" json:"isActive"`
	Order      int      `form:"order" json:"order"`
	Images     []string `form:"-" json:"images"`
	ImageURLs  []string `form:"imageUrls" json:"imageUrls"`
	ImageURL   string   `form:"imageUrl" json:"imageUrl"`
}

type updateBannerInput struct {
	Title      *string  `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Subtitle   *string  `form:"subtitle" json:"subtitle" bson:"subtitle,omitempty"`
	Link       *string  `form:"link" json:"link" bson:"link,omitempty"`
	ButtonText *string  `form:"buttonText" json:"buttonText" bson:"button_text,omitempty"`
	IsActive   *bool    `form:"isActive" json:"isActive" bson:"is_active,omitempty"`
	Order      *int     `form:"order" json:"order" bson:"order,omitempty"`
	Images     []string `form:"-" json:"images" bson:"-"`
	ImageURLs  []string `form:"imageUrls" json:"imageUrls" bson:"-"`
	ImageURL   string   `form:"imageUrl" json:"imageUrl" bson:"-"`
}

func Banners() Schema[models.Banner] {
	return Schema[models.Banner]{
		Name:  "banners",
		Label: "banner",
		Sort:  orderSort,
		Build: buildBanner,
		Patch: patchBanner,
		Media: func(b models.Banner) []string { return b.Images },
	}
}

func buildBanner(r *Request) (models.Banner, error) {
	var in createBannerInput
	if err := r.Bind(&in); err != nil {
		return models.Banner{}, err
	}
	direct := slices.Concat([]string{in.ImageURL}, in.ImageURLs, in.Images)
	if err := r.RequireMedia("images", "images", direct...); err != nil {
		return models.Banner{}, err
	}

	banner := models.Banner{
		Title:      in.Title,
		Subtitle:   in.Subtitle,
		Link:       in.Link,
		ButtonText: in.ButtonText,
		IsActive:   in.IsActive == nil || *in.IsActive,
		Order:      in.Order,
	}

	images, err := r.Images("images", direct, nil, 0)
	if err != nil {
		return banner, err
	}
	banner.Images = images
	return banner, nil
}

func patchBanner(r *Request, existing models.Banner) (bson.M, error) {
	var in updateBannerInput
	if err := r.Bind(&in); err != nil {
		return nil, err
	}

	set, err := changes(in)
	if err != nil {
		return nil, err
	}
	direct := slices.Concat([]string{in.ImageURL}, in.ImageURLs, in.Images)
	if err := r.PatchImages(set, "images", "images", direct, existing.Images, 0); err != nil {
		return nil, err
	}
	return set, nil
}
