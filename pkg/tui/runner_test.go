package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/wizard"
)

// scriptedDriver answers prompts from fixed scripts. Selections are given by
// option label so scripts read like the session they drive.
type scriptedDriver struct {
	selects  []string
	inputs   []string
	confirms []bool
	infos    []string
	messages []string
	rejected []string
}

func (s *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	label := s.selects[0]
	s.selects = s.selects[1:]
	s.messages = append(s.messages, cfg.Message)
	idx := indexOf(cfg.Options, label)
	if idx < 0 {
		return -1, errors.New("scripted option not offered: " + label)
	}
	return idx, nil
}

func (s *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	for len(s.inputs) > 0 {
		value := s.inputs[0]
		s.inputs = s.inputs[1:]
		if cfg.Validator != nil {
			if err := cfg.Validator(value); err != nil {
				s.rejected = append(s.rejected, value)
				continue
			}
		}
		return value, nil
	}
	return "", errors.New("no input scripted")
}

func (s *scriptedDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[0]
	s.confirms = s.confirms[1:]
	return val, nil
}

func (s *scriptedDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

type stubSubmitter struct {
	errs  []error
	calls []wizard.AnswerSet
}

func (s *stubSubmitter) Submit(_ context.Context, answers wizard.AnswerSet) error {
	s.calls = append(s.calls, answers)
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func TestRunnerCompletesPhotographyLead(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := &scriptedDriver{
		selects: []string{"Photography", "Wedding", "£1,000 - £1,999", "Mail"},
		inputs:  []string{"not-an-email", "x@y.com"},
	}
	runner, err := New(wizard.NewSession(wizard.WithSubmitter(submitter)), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []wizard.AnswerSet{{
		Service:         wizard.ServicePhotography,
		PhotographyType: "Wedding",
		Budget:          "£1,000 - £1,999",
		Contact:         wizard.Mail("x@y.com"),
	}}
	if diff := cmp.Diff(want, submitter.calls); diff != "" {
		t.Fatalf("submitted answers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"not-an-email"}, driver.rejected); diff != "" {
		t.Fatalf("rejected inputs mismatch (-want +got):\n%s", diff)
	}
	last := driver.infos[len(driver.infos)-1]
	if !strings.Contains(last, wizard.ThankYouTitle) {
		t.Fatalf("expected thank-you message, got %q", last)
	}
	if !strings.HasPrefix(driver.messages[0], "[ 14%]") {
		t.Fatalf("expected progress prefix, got %q", driver.messages[0])
	}
}

func TestRunnerBackNavigation(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := &scriptedDriver{
		selects: []string{
			"Videography", BackOption,
			"Photography", "Headshot", "Other", "WhatsApp",
			"Phone Call",
		},
		inputs: []string{BackInput, "+447514996775"},
	}
	runner, err := New(wizard.NewSession(wizard.WithSubmitter(submitter)), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(submitter.calls) != 1 {
		t.Fatalf("expected one submission, got %d", len(submitter.calls))
	}
	got := submitter.calls[0]
	if got.Service != wizard.ServicePhotography || got.VideographyType != "" {
		t.Fatalf("expected photography answers without videography, got %+v", got)
	}
	if got.Contact != wizard.Phone("+447514996775") {
		t.Fatalf("unexpected contact: %+v", got.Contact)
	}
}

func TestRunnerRetriesFailedSubmission(t *testing.T) {
	submitter := &stubSubmitter{errs: []error{errors.New("boom")}}
	driver := &scriptedDriver{
		selects:  []string{"Photography", "Headshot", "Other", "Mail"},
		inputs:   []string{"x@y.com", "x@y.com"},
		confirms: []bool{true},
	}
	runner, err := New(wizard.NewSession(wizard.WithSubmitter(submitter)), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(submitter.calls) != 2 {
		t.Fatalf("expected two attempts, got %d", len(submitter.calls))
	}
	found := false
	for _, msg := range driver.infos {
		if strings.Contains(msg, FailureMessage) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected failure message in %q", driver.infos)
	}
}

func TestRunnerAbortAfterFailure(t *testing.T) {
	submitErr := errors.New("boom")
	submitter := &stubSubmitter{errs: []error{submitErr}}
	driver := &scriptedDriver{
		selects:  []string{"Photography", "Headshot", "Other", "Mail"},
		inputs:   []string{"x@y.com"},
		confirms: []bool{false},
	}
	runner, err := New(wizard.NewSession(wizard.WithSubmitter(submitter)), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	err = runner.Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !errors.Is(err, submitErr) {
		t.Fatalf("expected submit error to be wrapped, got %v", err)
	}
}

func TestNewRequiresSession(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
