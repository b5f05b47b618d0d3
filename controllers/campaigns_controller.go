package controllers

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
)

const maxCampaignImages = 3

var campaignCategories = []string{"Education", "Healthcare", "Food Security", "Clean Water", "Disaster Relief", "Women Empowerment", "Child Welfare"}

type createCampaignInput struct {
	Title         string   `form:"title" json:"title" binding:"required,notblank"`
	Description   string   `form:"description" json:"description" binding:"required,notblank"`
	Category      string   `form:"category" json:"category"`
	GoalAmount    float64  `form:"goalAmount" json:"goalAmount" binding:"required,finite,gte=0"`
	RaisedAmount  float64  `form:"raisedAmount" json:"raisedAmount" binding:"finite,gte=0"`
	Location      string   `form:"location" json:"location"`
	Status        string   `form:"status" json:"status" binding:"omitempty,oneof=active completed paused"`
	Beneficiaries int      `form:"beneficiaries" json:"beneficiaries" binding:"gte=0"`
	StartDate     string   `form:"startDate" json:"startDate" binding:"flexdate"`
	EndDate       string   `form:"endDate" json:"endDate" binding:"flexdate"`
	Order         int      `form:"order" json:"order"`
	Images        []string `form:"-" json:"images"`
	ImageURLs     []string `form:"imageUrls" json:"imageUrls"`
	ImageURL      string   `form:"imageUrl" json:"imageUrl"`
}

type updateCampaignInput struct {
	Title         *string  `form:"title" json:"title" bson:"title,omitempty" binding:"omitempty,notblank"`
	Description   *string  `form:"description" json:"description" bson:"description,omitempty" binding:"omitempty,notblank"`
	Category      *string  `form:"category" json:"category" bson:"category,omitempty"`
	GoalAmount    *float64 `form:"goalAmount" json:"goalAmount" bson:"goal_amount,omitempty" binding:"omitempty,finite,gte=0"`
	RaisedAmount  *float64 `form:"raisedAmount" json:"raisedAmount" bson:"raised_amount,omitempty" binding:"omitempty,finite,gte=0"`
	Location      *string  `form:"location" json:"location" bson:"location,omitempty"`
	Status        *string  `form:"status" json:"status" bson:"status,omitempty" binding:"omitempty,oneof=active completed paused"`
	Beneficiaries *int     `form:"beneficiaries" json:"beneficiaries" bson:"beneficiaries,omitempty" binding:"omitempty,gte=0"`
	StartDate     *string  `form:"startDate" json:"startDate" bson:"start_date,omitempty" binding:"omitempty,flexdate"`
	EndDate       *string  `form:"endDate" json:"endDate" bson:"end_date,omitempty" binding:"omitempty,flexdate"`
	Order         *int     `form:"order" json:"order" bson:"order,omitempty"`
	Images        []string `form:"-" json:"images" bson:"-"`
	ImageURLs     []string `form:"imageUrls" json:"imageUrls" bson:"-"`
	ImageURL      string   `form:"imageUrl" json:"imageUrl" bson:"-"`
}

func Campaigns() Schema[models.Campaign] {
	return Schema[models.Campaign]{
		Name:       "campaigns",
		Label:      "campaign",
		Sort:       orderSort,
		Categories: campaignCategories,
		Build:      buildCampaign,
		Patch:      patchCampaign,
		Media:      func(c models.Campaign) []string { return c.Images },
	}
}

func buildCampaign(r *Request) (models.Campaign, error) {
	var in createCampaignInput
	if err := r.Bind(&in); err != nil {
		return models.Campaign{}, err
	}
	if err := r.CheckCategory(in.Category); err != nil {
		return models.Campaign{}, err
	}

	campaign := models.Campaign{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		GoalAmount:    in.GoalAmount,
		RaisedAmount:  in.RaisedAmount,
		Location:      in.Location,
		Status:        orDefault(in.Status, "active"),
		Beneficiaries: in.Beneficiaries,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Order:         in.Order,
	}

	direct := slices.Concat(in.ImageURLs, []string{in.ImageURL}, in.Images)
	images, err := r.Images("images", direct, nil, maxCampaignImages)
	if err != nil {
		return campaign, err
	}
	if len(images) == 0 {
		images = []string{r.Placeholder()}
	}
	campaign.Images = images
	return campaign, nil
}

func patchCampaign(r *Request, existing models.Campaign) (bson.M, error) {
	var in updateCampaignInput
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
	direct := slices.Concat(in.ImageURLs, []string{in.ImageURL}, in.Images)
	if err := r.PatchImages(set, "images", "images", direct, existing.Images, maxCampaignImages); err != nil {
		return nil, err
	}
	return set, nil
}
