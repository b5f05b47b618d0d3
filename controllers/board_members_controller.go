package controllers

import (
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/phillip/charity-admin-go/models"
	utils "github.com/phillip/charity-admin-go/utils"
)

type createBoardMemberInput struct {
	Name     string `form:"name" json:"name" binding:"required,notblank"`
	Position string `form:"position" json:"position" binding:"required,notblank"`
	Bio      string `form:"bio" json:"bio"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
	LinkedIn string `form:"linkedin" json:"linkedin"`
	Order    int    `form:"order" json:"order"`
	Image    string `form:"-" json:"image"`
	ImageURL string `form:"imageUrl" json:"imageUrl"`
}

type updateBoardMemberInput struct {
	Name     *string `form:"name" json:"name" bson:"name,omitempty" binding:"omitempty,notblank"`
	Position *string `form:"position" json:"position" bson:"position,omitempty" binding:"omitempty,notblank"`
	Bio      *string `form:"bio" json:"bio" bson:"bio,omitempty"`
	Email    *string `form:"email" json:"email" bson:"email,omitempty" binding:"omitempty,email"`
	LinkedIn *string `form:"linkedin" json:"linkedin" bson:"linkedin,omitempty"`
	Order    *int    `form:"order" json:"order" bson:"order,omitempty"`
	Image    string  `form:"-" json:"image" bson:"-"`
	ImageURL string  `form:"imageUrl" json:"imageUrl" bson:"-"`
}

func BoardMembers() Schema[models.BoardMember] {
	return Schema[models.BoardMember]{
		Name:  "board-members",
		Label: "board member",
		Sort:  orderSort,
		Build: buildBoardMember,
		Patch: patchBoardMember,
		Media: func(m models.BoardMember) []string { return []string{m.Image} },
	}
}

func buildBoardMember(r *Request) (models.BoardMember, error) {
	var in createBoardMemberInput
	if err := r.Bind(&in); err != nil {
		return models.BoardMember{}, err
	}

	member := models.BoardMember{
		Name:     in.Name,
		Position: in.Position,
		Bio:      utils.SanitizeHTML(in.Bio),
		Email:    in.Email,
		LinkedIn: in.LinkedIn,
		Order:    in.Order,
	}

	img, err := r.Image("image", firstOf(in.ImageURL, in.Image), nil)
	if err != nil {
		return member, err
	}
	member.Image = img
	return member, nil
}

func patchBoardMember(r *Request, existing models.BoardMember) (bson.M, error) {
	var in updateBoardMemberInput
	if err := r.Bind(&in); err != nil {
		return nil, err
	}
	if in.Bio != nil {
		*in.Bio = utils.SanitizeHTML(*in.Bio)
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
