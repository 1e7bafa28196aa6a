package contact

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"jobboard-backend/internal/shared/telemetry"
)

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Sender delivers contact form mail.
type Sender interface {
	Send(msg Message) error
}

// SMTPMailer sends the admin notification and a confirmation copy to the
// submitter over SMTP.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	recipient string
}

// NewSMTPMailer builds an SMTPMailer. The recipient is where form
// submissions land.
func NewSMTPMailer(host string, port int, username, password, recipient string) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(host, port, username, password),
		from:      username,
		recipient: recipient,
	}
}

// Send delivers both mails in one SMTP session. The confirmation copy is
// best effort; only the admin notification can fail the send.
func (m *SMTPMailer) Send(msg Message) error {
	notification := gomail.NewMessage()
	notification.SetHeader("From", m.from)
	notification.SetHeader("To", m.recipient)
	notification.SetHeader("Reply-To", msg.Email)
	notification.SetHeader("Subject", fmt.Sprintf("Contact form: %s", msg.Subject))
	notification.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Message,
	))

	confirmation := gomail.NewMessage()
	confirmation.SetHeader("From", m.from)
	confirmation.SetHeader("To", msg.Email)
	confirmation.SetHeader("Subject", "We received your message")
	confirmation.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nThanks for reaching out. We received your message and will get back to you soon.\n\nYour message:\n%s\n",
		msg.Name, msg.Message,
	))

	sender, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer sender.Close()

	if err := gomail.Send(sender, notification); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	if err := gomail.Send(sender, confirmation); err != nil {
		telemetry.Warn("contact.confirmation_failed", map[string]any{
			"to":    msg.Email,
			"error": err.Error(),
		})
	}
	return nil
}
