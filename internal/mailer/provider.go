package mailer

import "context"

// Email is a single outgoing message addressed to one recipient. HTMLBody is
// optional; providers send a text-only message when it is empty.
type Email struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Provider is a transactional-email delivery backend. Send returns the
// provider-assigned message ID on success. Provider instances are shared
// read-only across worker goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g. "ses", "smtp").
	Name() string
	// Send delivers one email and returns the provider message ID.
	Send(ctx context.Context, email Email) (string, error)
}
