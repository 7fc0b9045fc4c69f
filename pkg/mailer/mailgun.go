package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an email via Mailgun. html is optional; if provided it is used
// as the HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// Render produces subject and text body for a named template.
func Render(template string, data map[string]any) (subject, text string, err error) {
	switch template {
	case TemplateWelcome:
		name := fmt.Sprintf("%v", data["FirstName"])
		username := fmt.Sprintf("%v", data["Username"])
		subject = "Welcome aboard"
		text = fmt.Sprintf("Hi %s,\n\nYour account %q has been created. You can sign in right away.\n", name, username)
		return subject, text, nil
	}
	return "", "", fmt.Errorf("unknown email template %q", template)
}
