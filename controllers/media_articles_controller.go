package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
	utils "github.com/phillip/charity-admin-go/utils"
)

var mediaCategories = []string{"News", "Interview", "Feature", "Press Release", "Blog"}

type createMediaArticleInput struct {
	Title       string `form:"title" json:"title" binding:"required,notblank"`
	Publication string `form:"publication" json:"publication" binding:"required,notblank"`
	Excerpt     string `form:"excerpt" json:"excerpt"`
	Content     string `form:"content" json:"content"`
	Link        string `form:"link" json:"link"`
	Date        string `form:"date" json:"date" binding:"flexdate"`
	Category    string `form:"category" json:"category"`
	Order       int    `form:"order" json:"order"`
	Image       string `form:"-" json:"image"`
	ImageURL    string `form:"imageUrl" json:"imageUrl"`
}

type updateMediaArticleInput struct {
	Title       *string `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Publication *string `form:"publication" json:"publication" bson:"publication,omitempty" binding:"omitempty,notblank"`
	Excerpt     *string `form:"excerpt" json:"excerpt" bson:"excerpt,omitempty"`
	Content     *string `form:"content" json:"content" bson:"content,omitempty"`
	Link        *string `form:"link" json:"link" bson:"link,omitempty"`
	Date        *string `form:"date" json:"date" bson:"date,omitempty" binding:"omitempty,flexdate"`
	Category    *string `form:"category" json:"category" bson:"category,omitempty"`
	Order       *int    `form:"order" json:"order" bson:"order,omitempty"`
	Image       string  `form:"-" json:"image" bson:"-"`
	ImageURL    string  `form:"imageUrl" json:"imageUrl" bson:"-"`
}

// MediaArticles stores content as sanitized HTML.
func MediaArticles() Schema[models.MediaArticle] {
	return Schema[models.MediaArticle]{
		Name:       "media-articles",
		Label:      "media article",
		Sort:       orderSort,
		Categories: mediaCategories,
		Build:      buildMediaArticle,
		Patch:      patchMediaArticle,
		Media:      func(a models.MediaArticle) []string { return []string{a.Image} },
	}
}

func buildMediaArticle(r *Request) (models.MediaArticle, error) {
	var in createMediaArticleInput
	if err := r.Bind(&in); err != nil {
		return models.MediaArticle{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.MediaArticle{}, err
	}

	article := models.MediaArticle{
		Title:       in.Title,
		Publication: in.Publication,
		Excerpt:     in.Excerpt,
		Content:     utils.SanitizeHTML(in.Content),
		Link:        in.Link,
		Date:        in.Date,
		Category:    in.Category,
		Order:       in.Order,
	}

	img, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
	if err != nil {
		return article, err
	}
	article.Image = img
	return article, nil
}

func patchMediaArticle(r *Request, existing models.MediaArticle) (bson.M, error) {
	var in updateMediaArticleInput
	if err := r.Bind(&in); err != nil {
		return nil, err
	}
	if err := r.CheckCategory(deref(in.Category)); err != nil {
		return nil, err
	}
	if in.Content != nil {
		*in.Content = utils.SanitizeHTML(*in.Content)
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
