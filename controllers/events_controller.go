package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var eventCategories = []string{"Environment", "Education", "Health", "Community", "Fundraiser", "Volunteering"}

type createEventInput struct {
	Title       string   `form:"title" json:"title" binding:"required,notblank"`
	Description string   `form:"description" json:"description"`
	Date        string   `form:"date" json:"date" binding:"required,flexdate"`
	Time        string   `form:"time" json:"time" binding:"required,notblank"`
	Location    string   `form:"location" json:"location" binding:"required,notblank"`
	Category    string   `form:"category" json:"category" binding:"required,notblank"`
	Interested  string   `form:"interested" json:"interested"`
	Status      string   `form:"status" json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Highlights  []string `form:"highlights" json:"highlights"`
	Registered  int      `form:"registered" json:"registered" binding:"gte=0"`
	Capacity    *int     `form:"capacity" json:"capacity" binding:"omitempty,gte=0"`
	Volunteers  int      `form:"volunteers" json:"volunteers" binding:"gte=0"`
	Image       string   `form:"-" json:"image"`
	ImageURL    string   `form:"imageUrl" json:"imageUrl"`
}

type updateEventInput struct {
	Title       *string   `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Description *string   `form:"description" json:"description" bson:"description,omitempty"`
	Date        *string   `form:"date" json:"date" bson:"date,omitempty" binding:"omitempty,notblank,flexdate"`
	Time        *string   `form:"time" json:"time" bson:"time,omitempty" binding:"omitempty,notblank"`
	Location    *string   `form:"location" json:"location" bson:"location,omitempty" binding:"omitempty,notblank"`
	Category    *string   `form:"category" json:"category" bson:"category,omitempty" binding:"omitempty,notblank"`
	Interested  *string   `form:"interested" json:"interested" bson:"interested,omitempty"`
	Status      *string   `form:"status" json:"status" bson:"status,omitempty" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Highlights  *[]string `form:"highlights" json:"highlights" bson:"highlights,omitempty"`
	Registered  *int      `form:"registered" json:"registered" bson:"registered,omitempty" binding:"omitempty,gte=0"`
	Capacity    *int      `form:"capacity" json:"capacity" bson:"capacity,omitempty" binding:"omitempty,gte=0"`
	Volunteers  *int      `form:"volunteers" json:"volunteers" bson:"volunteers,omitempty" binding:"omitempty,gte=0"`
	Image       string    `form:"-" json:"image" bson:"-"`
	ImageURL    string    `form:"imageUrl" json:"imageUrl" bson:"-"`
}

// Events lists by date, soonest first.
func Events() Schema[models.Event] {
	return Schema[models.Event]{
		Name:       "events",
		Label:      "event",
		Sort:       bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}},
		Categories: eventCategories,
		Build:      buildEvent,
		Patch:      patchEvent,
		Media:      func(e models.Event) []string { return []string{e.Image} },
	}
}

// ---------------- CREATE ----------------
func buildEvent(r *Request) (models.Event, error) {
	var in createEventInput
	if err := r.Bind(&in); err != nil {
		return models.Event{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Category:    in.Category,
		Interested:  orDefault(in.Interested, "0+"),
		Status:      orDefault(in.Status, "upcoming"),
		Highlights:  listOf(in.Highlights),
		Registered:  in.Registered,
		Capacity:    100,
		Volunteers:  in.Volunteers,
	}
	if in.Capacity != nil {
		event.Capacity = *in.Capacity
	}

	img, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
	if err != nil {
		return event, err
	}
	event.Image = img
	return event, nil
}

// ---------------- UPDATE ----------------
func patchEvent(r *Request, existing models.Event) (bson.M, error) {
	var in updateEventInput
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
