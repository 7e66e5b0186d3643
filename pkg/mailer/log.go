package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes messages to a logger instead of a relay. It is meant for
// local development where no SMTP credentials exist.
type LogSender struct {
	Logger zerolog.Logger
}

// Send logs msg at info level.
func (s LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Logger.Info().
		Str("from", msg.From).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("mail not sent: log driver")
	return nil
}
