// Package tui drives a wizard.Session from the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-leadform/pkg/wizard"
)

const (
	// BackOption is appended to selection steps that can go back.
	BackOption = "← Back"
	// BackInput typed at the contact prompt goes back a step.
	BackInput = "<"
	// FailureMessage is shown when a submission fails.
	FailureMessage = "Failed to submit form. Please try again."
)

// Runner walks a session step by step until thank-you.
type Runner struct {
	session *wizard.Session
	driver  PromptDriver
	theme   Theme
}

// New returns a Runner for session. Without WithPromptDriver it prompts on
// the process terminal.
func New(session *wizard.Session, options ...Option) (*Runner, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	r := &Runner{
		session: session,
		theme:   Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Run opens the session and prompts until the lead is submitted. Declining
// to retry a failed submission returns an error wrapping ErrAborted and the
// submission failure.
func (r *Runner) Run(ctx context.Context) error {
	r.session.Open()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := r.session.Step()
		switch {
		case step.Terminal():
			return r.info(ctx, fmt.Sprintf("%s %s", wizard.ThankYouTitle, wizard.ThankYouMessage))
		case step == wizard.StepContactDetails:
			if err := r.contactDetails(ctx); err != nil {
				return err
			}
		default:
			if err := r.selection(ctx); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) selection(ctx context.Context) error {
	q, ok := r.session.Question()
	if !ok {
		return fmt.Errorf("tui: step %s has no question", r.session.Step())
	}

	options := append([]string(nil), q.Options...)
	canBack := r.session.CanGoBack()
	if canBack {
		options = append(options, BackOption)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.title(q.Title),
		Options:      options,
		DefaultIndex: indexOf(q.Options, r.session.Answers().Field(q.Field)),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: selection %d out of range", idx)
	}
	if canBack && options[idx] == BackOption {
		_, err := r.session.Back()
		return err
	}

	if err := r.session.Choose(options[idx]); err != nil {
		return err
	}
	_, err = r.session.Next(ctx)
	return err
}

func (r *Runner) contactDetails(ctx context.Context) error {
	prompt, ok := r.session.ContactPrompt()
	if !ok {
		_, err := r.session.Back()
		return err
	}

	method := prompt.Method
	value, err := r.driver.Input(ctx, InputConfig{
		Message: r.title(prompt.Title),
		Default: r.session.Draft(method),
		Help:    fmt.Sprintf("%s. Enter %q to go back.", prompt.Placeholder, BackInput),
		Validator: func(s string) error {
			if strings.TrimSpace(s) == BackInput {
				return nil
			}
			return contactError(wizard.ContactDetail{Method: method, Value: s})
		},
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(value) == BackInput {
		_, err := r.session.Back()
		return err
	}

	if err := r.session.SetContactValue(value); err != nil {
		return err
	}
	if !r.session.CanAdvance() {
		return r.info(ctx, r.theme.ErrorPrefix+contactError(r.session.Answers().Contact).Error())
	}

	if err := r.info(ctx, "Submitting..."); err != nil {
		return err
	}
	_, err = r.session.Next(ctx)
	var submitErr *wizard.SubmitError
	if !errors.As(err, &submitErr) {
		return err
	}

	if err := r.info(ctx, r.theme.ErrorPrefix+FailureMessage); err != nil {
		return err
	}
	retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
	if err != nil {
		return err
	}
	if !retry {
		return fmt.Errorf("%w: %w", ErrAborted, submitErr)
	}
	return nil
}

func (r *Runner) title(title string) string {
	return fmt.Sprintf("[%3.0f%%] %s", r.session.Progress(), title)
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func contactError(c wizard.ContactDetail) error {
	if c.Valid() {
		return nil
	}
	switch c.Method {
	case wizard.ContactMail:
		return errors.New("please enter a valid email address")
	default:
		return errors.New("please enter a valid phone number")
	}
}
