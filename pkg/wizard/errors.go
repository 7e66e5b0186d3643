package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrGuard matches every *ValidationError.
	ErrGuard = errors.New("wizard: step requirements not met")
	// ErrNoBack is returned when stepping back from the first step.
	ErrNoBack = errors.New("wizard: no previous step")
	// ErrTerminal is returned for transitions out of thank-you.
	ErrTerminal = errors.New("wizard: flow already complete")
	// ErrUnknownStep is returned for steps outside the graph.
	ErrUnknownStep = errors.New("wizard: unknown step")
	// ErrUnknownOption is returned when a choice is not offered on the step.
	ErrUnknownOption = errors.New("wizard: option not offered on this step")
	// ErrNotSelectionStep is returned by Choose outside selection steps.
	ErrNotSelectionStep = errors.New("wizard: step does not take a selection")
	// ErrSubmissionPending is returned while a submission is in flight.
	ErrSubmissionPending = errors.New("wizard: submission already in flight")
	// ErrNoSubmitter is returned when the session has nothing to submit to.
	ErrNoSubmitter = errors.New("wizard: submitter is not configured")
	// ErrClosed is returned when acting on a closed session.
	ErrClosed = errors.New("wizard: session is closed")
)

// ValidationError reports the field that blocks a step.
type ValidationError struct {
	Step   Step
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: %s: %s %s", e.Step, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrGuard) match any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrGuard
}

// SubmitError wraps a failed submission attempt. The session stays on
// contact-details with its answers intact.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return "wizard: submission failed"
	}
	return "wizard: submission failed: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error { return e.Err }

func required(step Step, field string) error {
	return &ValidationError{Step: step, Field: field, Reason: "is required"}
}

func invalid(step Step, field, reason string) error {
	return &ValidationError{Step: step, Field: field, Reason: reason}
}
