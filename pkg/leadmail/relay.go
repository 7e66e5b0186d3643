package leadmail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadform/pkg/mailer"
	"github.com/goliatone/go-leadform/pkg/metrics"
	"github.com/goliatone/go-leadform/pkg/submission"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

var (
	// ErrCompose reports a failure rendering the notification.
	ErrCompose = errors.New("leadmail: compose failed")
	// ErrDeliver reports a failure handing the notification to the transport.
	ErrDeliver = errors.New("leadmail: delivery failed")
)

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithLogger sets the fallback logger. A logger carried by the request
// context takes precedence.
func WithLogger(logger zerolog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithRecorder records one observation per delivery attempt.
func WithRecorder(recorder metrics.Recorder) RelayOption {
	return func(r *Relay) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

// Relay composes a lead notification and sends it to a fixed recipient.
type Relay struct {
	composer *Composer
	sender   mailer.Sender
	from     string
	to       string

	logger   zerolog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

var _ wizard.Submitter = (*Relay)(nil)

// NewRelay returns a Relay sending from one address to another.
func NewRelay(composer *Composer, sender mailer.Sender, from, to string, options ...RelayOption) *Relay {
	r := &Relay{
		composer: composer,
		sender:   sender,
		from:     strings.TrimSpace(from),
		to:       strings.TrimSpace(to),
		logger:   zerolog.Nop(),
		recorder: metrics.Nop{},
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Deliver composes and sends one notification for p. Template faults,
// transport errors and panics are all returned as errors wrapping ErrCompose
// or ErrDeliver.
func (r *Relay) Deliver(ctx context.Context, p submission.Payload) (err error) {
	started := r.now()
	service := strings.TrimSpace(p.ServiceType)
	log := r.log(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", ErrDeliver, rec)
		}
		outcome := metrics.OutcomeSent
		if err != nil {
			outcome = metrics.OutcomeFailed
			log.Error().Err(err).Str("service", service).Msg("lead delivery failed")
		} else {
			log.Info().Str("service", service).Str("contact_method", p.ContactMethod).Msg("lead delivered")
		}
		label := service
		if !wizard.ServiceType(service).Valid() {
			label = ""
		}
		r.recorder.ObserveSubmission(label, outcome, r.now().Sub(started))
	}()

	if r.composer == nil {
		return fmt.Errorf("%w: no composer", ErrCompose)
	}
	if r.sender == nil {
		return fmt.Errorf("%w: %w", ErrDeliver, mailer.ErrNotConfigured)
	}

	email, err := r.composer.Compose(p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompose, err)
	}

	msg := mailer.Message{
		From:    r.from,
		To:      r.to,
		Subject: email.Subject,
		HTML:    email.HTML,
	}
	if err := r.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliver, err)
	}
	return nil
}

// Submit implements wizard.Submitter for in-process front ends.
func (r *Relay) Submit(ctx context.Context, answers wizard.AnswerSet) error {
	return r.Deliver(ctx, submission.FromAnswers(answers))
}

func (r *Relay) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &r.logger
}
