package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// MailConfig holds the ZeptoMail settings.
type MailConfig struct {
	APIURL string // e.g. https://api.zeptomail.com/v1.1/email
	APIKey string // e.g. Zoho-enczapikey xxxxx
	From   string // e.g. noreply@example.org
	To     string // inbox that receives contact-form notifications
	ToName string
}

// Mailer sends HTML email through the ZeptoMail HTTP API.
type Mailer struct {
	cfg    MailConfig
	client *http.Client
	log    *zap.Logger
}

func NewMailer(cfg MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, client: &http.Client{Timeout: 15 * time.Second}, log: logger}
}

// Enabled reports whether enough configuration is present to send mail.
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.APIURL != "" && m.cfg.APIKey != "" && m.cfg.From != "" && m.cfg.To != ""
}

// SendEmail sends an HTML email to a single recipient.
func (m *Mailer) SendEmail(ctx context.Context, to, toName, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("missing required email config")
	}

	payload := emailRequest{
		From: emailAddress{Address: m.cfg.From},
		To: []toRecipient{
			{Email: emailWithName{Address: to, Name: toName}},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	m.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// NotifyContact forwards a contact-form submission to the configured inbox.
// It is a no-op when mail is not configured.
func (m *Mailer) NotifyContact(ctx context.Context, name, email, subject, message string) error {
	if !m.Enabled() {
		return nil
	}
	if subject == "" {
		subject = "New message from " + name
	}
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p><strong>Subject:</strong> %s</p><p>%s</p>",
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(subject),
		html.EscapeString(message),
	)
	return m.SendEmail(ctx, m.cfg.To, m.cfg.ToName, "[Contact] "+subject, body)
}
