package mailer

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidConfig is returned when required settings are missing.
	ErrInvalidConfig = errors.New("invalid mailer configuration")

	// ErrInvalidRecipient is returned for a malformed recipient address.
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrEmptyMessage is returned for a message without subject or body.
	ErrEmptyMessage = errors.New("message subject and body are required")

	// ErrSendFailed is returned when the delivery provider rejects the message.
	ErrSendFailed = errors.New("failed to send email")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
