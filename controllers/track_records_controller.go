package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var trackRecordCategories = []string{"Milestone", "Award", "Partnership", "Expansion", "Recognition"}

type createTrackRecordInput struct {
	Title       string `form:"title" json:"title" binding:"required,notblank"`
	Year        int    `form:"year" json:"year" binding:"required,gte=1900,lte=2100"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
	Metric      string `form:"metric" json:"metric"`
	Order       int    `form:"order" json:"order"`
	Image       string `form:"-" json:"image"`
	ImageURL    string `form:"imageUrl" json:"imageUrl"`
}

type updateTrackRecordInput struct {
	Title       *string `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Year        *int    `form:"year" json:"year" bson:"year,omitempty" binding:"omitempty,gte=1900,lte=2100"`
	Description *string `form:"description" json:"description" bson:"description,omitempty"`
	Category    *string `form:"category" json:"category" bson:"category,omitempty"`
	Metric      *string `form:"metric" json:"metric" bson:"metric,omitempty"`
	Order       *int    `form:"order" json:"order" bson:"order,omitempty"`
	Image       string  `form:"-" json:"image" bson:"-"`
	ImageURL    string  `form:"imageUrl" json:"imageUrl" bson:"-"`
}

// TrackRecords list chronologically by year, then by display order.
func TrackRecords() Schema[models.TrackRecord] {
	return Schema[models.TrackRecord]{
		Name:       "track-records",
		Label:      "track record",
		Sort:       bson.D{{Key: "year", Value: 1}, {Key: "order", Value: 1}, {Key: "created_at", Value: 1}},
		Categories: trackRecordCategories,
		Build:      buildTrackRecord,
		Patch:      patchTrackRecord,
		Media:      func(t models.TrackRecord) []string { return []string{t.Image} },
	}
}

func buildTrackRecord(r *Request) (models.TrackRecord, error) {
	var in createTrackRecordInput
	if err := r.Bind(&in); err != nil {
		return models.TrackRecord{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.TrackRecord{}, err
	}

	record := models.TrackRecord{
		Title:       in.Title,
		Year:        in.Year,
		Description: in.Description,
		Category:    in.Category,
		Metric:      in.Metric,
		Order:       in.Order,
	}

	img, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
	if err != nil {
		return record, err
	}
	record.Image = img
	return record, nil
}

func patchTrackRecord(r *Request, existing models.TrackRecord) (bson.M, error) {
	var in updateTrackRecordInput
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
