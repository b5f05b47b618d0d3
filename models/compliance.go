package models

// ComplianceDocument is a registration or certificate shown on the transparency page.
type ComplianceDocument struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category" json:"category"`
	Image       string `bson:"image" json:"image"`
	DocumentURL string `bson:"document_url,omitempty" json:"documentUrl,omitempty"`
	IssuedBy    string `bson:"issued_by,omitempty" json:"issuedBy,omitempty"`
	IssuedDate  string `bson:"issued_date,omitempty" json:"issuedDate,omitempty"`
	Order       int    `bson:"order" json:"order"`
}
