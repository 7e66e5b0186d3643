package leadmail_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-leadform/pkg/leadmail"
	"github.com/goliatone/go-leadform/pkg/mailer"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

type observation struct {
	service string
	outcome string
}

type recorder struct {
	observed []observation
}

func (r *recorder) ObserveSubmission(service, outcome string, _ time.Duration) {
	r.observed = append(r.observed, observation{service: service, outcome: outcome})
}

func TestRelayDeliver(t *testing.T) {
	sender := &testsupport.RecordingSender{}
	rec := &recorder{}
	relay := leadmail.NewRelay(newComposer(t), sender, "studio@example.com", "owner@example.com", leadmail.WithRecorder(rec))

	if err := relay.Deliver(testsupport.Context(), testsupport.Payload(testsupport.PhotographyMail())); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	messages := sender.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.From != "studio@example.com" || msg.To != "owner@example.com" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if !strings.Contains(msg.HTML, "<p><strong>Email:</strong> x@y.com</p>") {
		t.Fatalf("expected email line in body\n%s", msg.HTML)
	}
	if len(rec.observed) != 1 || rec.observed[0] != (observation{service: "Photography", outcome: "sent"}) {
		t.Fatalf("unexpected observations: %+v", rec.observed)
	}
}

func TestRelaySubmitPrunesAnswers(t *testing.T) {
	sender := &testsupport.RecordingSender{}
	relay := leadmail.NewRelay(newComposer(t), sender, "a@example.com", "b@example.com")

	answers := testsupport.PhotographyMail()
	answers.VideographyType = "Wedding"
	if err := relay.Submit(context.Background(), answers); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if strings.Contains(sender.Messages()[0].HTML, "Videography Type") {
		t.Fatalf("expected untaken branch pruned")
	}
}

func TestRelayTransportFailure(t *testing.T) {
	rec := &recorder{}
	relay := leadmail.NewRelay(newComposer(t), testsupport.FailingSender{}, "a@example.com", "b@example.com", leadmail.WithRecorder(rec))

	err := relay.Deliver(testsupport.Context(), testsupport.Payload(testsupport.PhotographyMail()))
	if !errors.Is(err, leadmail.ErrDeliver) {
		t.Fatalf("expected ErrDeliver, got %v", err)
	}
	if !errors.Is(err, testsupport.ErrTransport) {
		t.Fatalf("expected transport error to be wrapped, got %v", err)
	}
	if len(rec.observed) != 1 || rec.observed[0].outcome != "failed" {
		t.Fatalf("unexpected observations: %+v", rec.observed)
	}
}

func TestRelayMisconfiguredTransportSendsNothing(t *testing.T) {
	smtp := mailer.NewSMTPSender(mailer.SMTPConfig{Host: "smtp.example.com", Port: 587})
	relay := leadmail.NewRelay(newComposer(t), smtp, "", "owner@example.com")

	err := relay.Deliver(testsupport.Context(), testsupport.Payload(testsupport.PhotographyMail()))
	if !errors.Is(err, mailer.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRelayRecoversPanics(t *testing.T) {
	relay := leadmail.NewRelay(newComposer(t), testsupport.PanickingSender{}, "a@example.com", "b@example.com")

	err := relay.Deliver(testsupport.Context(), testsupport.Payload(testsupport.PhotographyMail()))
	if !errors.Is(err, leadmail.ErrDeliver) {
		t.Fatalf("expected ErrDeliver, got %v", err)
	}
}

func TestRelayWithoutSender(t *testing.T) {
	relay := leadmail.NewRelay(newComposer(t), nil, "a@example.com", "b@example.com")

	err := relay.Deliver(testsupport.Context(), testsupport.Payload(testsupport.PhotographyMail()))
	if !errors.Is(err, mailer.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRelayRecordsUnknownServiceWithoutLabel(t *testing.T) {
	rec := &recorder{}
	relay := leadmail.NewRelay(newComposer(t), &testsupport.RecordingSender{}, "a@example.com", "b@example.com", leadmail.WithRecorder(rec))

	payload := testsupport.Payload(testsupport.PhotographyMail())
	payload.ServiceType = "Drone"
	_ = relay.Deliver(testsupport.Context(), payload)

	if len(rec.observed) != 1 || rec.observed[0].service != "" {
		t.Fatalf("expected unknown service recorded without label, got %+v", rec.observed)
	}
}
