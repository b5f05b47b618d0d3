package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

var videoCategories = []string{"Documentary", "Event Highlights", "Testimonials", "Campaigns", "Awareness"}

type createVideoInput struct {
	Title        string `form:"title" json:"title" binding:"required,notblank"`
	Description  string `form:"description" json:"description"`
	Category     string `form:"category" json:"category"`
	Duration     string `form:"duration" json:"duration"`
	Order        int    `form:"order" json:"order"`
	VideoURL     string `form:"videoUrl" json:"videoUrl"`
	Thumbnail    string `form:"-" json:"thumbnail"`
	ThumbnailURL string `form:"thumbnailUrl" json:"thumbnailUrl"`
}

type updateVideoInput struct {
	Title        *string `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Description  *string `form:"description" json:"description" bson:"description,omitempty"`
	Category     *string `form:"category" json:"category" bson:"category,omitempty"`
	Duration     *string `form:"duration" json:"duration" bson:"duration,omitempty"`
	Order        *int    `form:"order" json:"order" bson:"order,omitempty"`
	VideoURL     string  `form:"videoUrl" json:"videoUrl" bson:"-"`
	Thumbnail    string  `form:"-" json:"thumbnail" bson:"-"`
	ThumbnailURL string  `form:"thumbnailUrl" json:"thumbnailUrl" bson:"-"`
}

// Videos take the clip itself as an upload under "video" or a hosted link
// under "videoUrl", plus an optional thumbnail image.
func Videos() Schema[models.Video] {
	return Schema[models.Video]{
		Name:       "videos",
		Label:      "video",
		Sort:       orderSort,
		Categories: videoCategories,
		Build:      buildVideo,
		Patch:      patchVideo,
		Media:      func(v models.Video) []string { return []string{v.VideoURL, v.Thumbnail} },
	}
}

func buildVideo(r *Request) (models.Video, error) {
	var in createVideoInput
	if err := r.Bind(&in); err != nil {
		return models.Video{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.Video{}, err
	}
	if err := r.RequireMedia("video", "video", in.VideoURL); err != nil {
		return models.Video{}, err
	}

	video := models.Video{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Duration:    in.Duration,
		Order:       in.Order,
	}

	src, err := r.Image("video", in.VideoURL, nil)
	if err != nil {
		return video, err
	}
	video.VideoURL = src

	thumb, err := r.Image("thumbnail", firstOf(in.ThumbnailURL, in.Thumbnail), nil)
	if err != nil {
		return video, err
	}
	video.Thumbnail = thumb
	return video, nil
}

func patchVideo(r *Request, existing models.Video) (bson.M, error) {
	var in updateVideoInput
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
	if err := r.PatchImage(set, "video_url", "video", in.VideoURL, existing.VideoURL); err != nil {
		return nil, err
	}
	if err := r.PatchImage(set, "thumbnail", "thumbnail", firstOf(in.ThumbnailURL, in.Thumbnail), existing.Thumbnail); err != nil {
		return nil, err
	}
	return set, nil
}
