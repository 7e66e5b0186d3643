// Package mailer delivers single HTML messages through a pluggable transport.
package mailer

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by transports missing host or credentials.
var ErrNotConfigured = errors.New("mailer: transport is not configured")

// Message is one HTML email to one recipient.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message. Implementations must not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
