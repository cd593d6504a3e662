// Package mailer delivers transactional notifications, primarily the
// usage-nudge emails sent when a workspace approaches a plan limit.
package mailer

import "context"

// Mailer sends a single transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the message has a recipient, subject, and body.
func (m Message) Validate() error {
	if !emailRegex.MatchString(m.To) {
		return ErrInvalidRecipient
	}
	if m.Subject == "" || m.BodyHTML == "" {
		return ErrEmptyMessage
	}
	return nil
}
