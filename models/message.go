package models

// Message is a contact-form submission from the public site.
type Message struct {
	Base    `bson:",inline"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject string `bson:"subject,omitempty" json:"subject,omitempty"`
	Message string `bson:"message" json:"message"`
	Status  string `bson:"status" json:"status"` // unread, read, replied
}
