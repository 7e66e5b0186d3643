package testsupport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-leadform/pkg/mailer"
	"github.com/goliatone/go-leadform/pkg/submission"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

// ErrTransport is returned by FailingSender.
var ErrTransport = errors.New("testsupport: transport unavailable")

// PhotographyMail is a complete photography lead contacted by mail.
func PhotographyMail() wizard.AnswerSet {
	return wizard.AnswerSet{
		Service:         wizard.ServicePhotography,
		PhotographyType: "Wedding",
		Budget:          "£1,000 - £1,999",
		Contact:         wizard.Mail("x@y.com"),
	}
}

// VideographyWhatsApp is a complete videography lead contacted on WhatsApp.
func VideographyWhatsApp() wizard.AnswerSet {
	return wizard.AnswerSet{
		Service:         wizard.ServiceVideography,
		VideographyType: "Music Video",
		FinalProduct:    "Highlight video",
		Budget:          "£2,000 - £2,999",
		Contact:         wizard.WhatsApp("+447514996775"),
	}
}

// Payload returns the wire payload for answers.
func Payload(answers wizard.AnswerSet) submission.Payload {
	return submission.FromAnswers(answers)
}

// RecordingSender captures every message it is asked to send.
type RecordingSender struct {
	mu       sync.Mutex
	messages []mailer.Message
}

// Send implements mailer.Sender.
func (r *RecordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

// Messages returns a copy of the captured messages.
func (r *RecordingSender) Messages() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Message(nil), r.messages...)
}

// FailingSender rejects every message with Err, or ErrTransport when unset.
type FailingSender struct {
	Err error
}

// Send implements mailer.Sender.
func (f FailingSender) Send(context.Context, mailer.Message) error {
	if f.Err != nil {
		return f.Err
	}
	return ErrTransport
}

// PanickingSender panics on Send.
type PanickingSender struct{}

// Send implements mailer.Sender.
func (PanickingSender) Send(context.Context, mailer.Message) error {
	panic("testsupport: sender exploded")
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
