package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	models "github.com/phillip/charity-admin-go/models"
)

type createMessageInput struct {
	Name    string `form:"name" json:"name" binding:"required,notblank"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Phone   string `form:"phone" json:"phone"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message" binding:"required,notblank"`
	Status  string `form:"status" json:"status" binding:"omitempty,oneof=unread read replied"`
}

type updateMessageInput struct {
	Name    *string `form:"name" json:"name" bson:"name,omitempty" binding:"omitempty,notblank"`
	Email   *string `form:"email" json:"email" bson:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `form:"phone" json:"phone" bson:"phone,omitempty"`
	Subject *string `form:"subject" json:"subject" bson:"subject,omitempty"`
	Message *string `form:"message" json:"message" bson:"message,omitempty" binding:"omitempty,notblank"`
	Status  *string `form:"status" json:"status" bson:"status,omitempty" binding:"omitempty,oneof=unread read replied"`
}

// Messages is the contact-form inbox: anyone may submit, only admins read.
// Each new message is forwarded by email when mail is configured.
func Messages(deps Deps) Schema[models.Message] {
	return Schema[models.Message]{
		Name:         "messages",
		Label:        "message",
		Sort:         bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		PublicCreate: true,
		PrivateList:  true,
		Build:        buildMessage,
		Patch:        patchMessage,
		AfterCreate: func(ctx context.Context, m models.Message) {
			if err := deps.Mailer.NotifyContact(ctx, m.Name, m.Email, m.Subject, m.Message); err != nil {
				deps.Log.Warn("contact notification failed",
					zap.String("message_id", m.ID.Hex()), zap.Error(err))
			}
		},
	}
}

func buildMessage(r *Request) (models.Message, error) {
	var in createMessageInput
	if err := r.Bind(&in); err != nil {
		return models.Message{}, err
	}
	return models.Message{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
		Status:  orDefault(in.Status, "unread"),
	}, nil
}

func patchMessage(r *Request, _ models.Message) (bson.M, error) {
	var in updateMessageInput
	if err := r.Bind(&in); err != nil {
		return nil, err
	}
	return changes(in)
}
