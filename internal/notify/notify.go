// Package notify hands formatted digests to external delivery channels.
// It carries no formatting or aggregation logic of its own.
package notify

import (
	"context"
	"fmt"
	"log"
)

// Result records the outcome of one delivery attempt on one channel.
type Result struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Dispatcher fans a message out to whichever channels are configured and
// have a recipient. A nil channel means "not configured".
type Dispatcher struct {
	WhatsApp *WhatsAppClient
	Mail     *Mailer
}

func NewDispatcherFromEnv() *Dispatcher {
	return &Dispatcher{
		WhatsApp: NewWhatsAppClientFromEnv(),
		Mail:     NewMailerFromEnv(),
	}
}

// HasChannels reports whether at least one delivery channel is configured.
func (d *Dispatcher) HasChannels() bool {
	return d.WhatsApp != nil || d.Mail != nil
}

// SendDigest delivers the digest text to the given phone number and/or
// email address. Empty recipients are skipped; an unconfigured channel
// with a recipient is reported as a failed Result rather than an error,
// so one dead channel never blocks the other.
func (d *Dispatcher) SendDigest(ctx context.Context, phone, email, subject, body string) []Result {
	var results []Result

	if phone != "" {
		r := Result{Channel: "whatsapp", Recipient: phone}
		if d.WhatsApp == nil {
			r.Error = "whatsapp delivery is not configured"
		} else if id, err := d.WhatsApp.SendText(ctx, phone, body); err != nil {
			r.Error = err.Error()
		} else {
			r.Success = true
			r.MessageID = id
		}
		results = append(results, r)
	}

	if email != "" {
		r := Result{Channel: "email", Recipient: email}
		if d.Mail == nil {
			r.Error = "email delivery is not configured"
		} else if err := d.Mail.Send(email, subject, body); err != nil {
			r.Error = err.Error()
		} else {
			r.Success = true
		}
		results = append(results, r)
	}

	return results
}

// SendLoginNotice greets a returning user on WhatsApp. Best effort: the
// login flow never fails because of it.
func (d *Dispatcher) SendLoginNotice(ctx context.Context, phone, name, state string) {
	if d.WhatsApp == nil || phone == "" {
		return
	}

	message := fmt.Sprintf(
		"👋 Welcome back, %s!\n\nYou're now viewing leads for *%s*.\n\nWe'll notify you about new high-priority opportunities in your state.",
		name, state,
	)
	if _, err := d.WhatsApp.SendText(ctx, phone, message); err != nil {
		log.Printf("login notice to %s failed: %v", phone, err)
	}
}
