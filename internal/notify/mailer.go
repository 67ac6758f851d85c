package notify

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gomail "gopkg.in/mail.v2"
)

// Mailer delivers digests over SMTP as plain-text email.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailerFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD
// and SMTP_FROM; returns nil when the host or sender is missing.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("SMTP_FROM")
	if host == "" || from == "" {
		return nil
	}

	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			port = parsed
		}
	}

	return &Mailer{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
