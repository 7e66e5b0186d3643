package site

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

// Notices shown inside the modal.
const (
	NoticeChoose       = "Please choose an option to continue."
	NoticeEmail        = "Please enter a valid email address."
	NoticePhone        = "Please enter a valid phone number."
	NoticeSubmitFailed = "Failed to submit form. Please try again."
)

// wizardView is the template context for the modal.
type wizardView struct {
	session *wizard.Session
	open    bool
	notice  string
	failed  bool
}

func (v wizardView) context(action string, openDelayMs int64) map[string]any {
	s := v.session
	step := s.Step()
	ctx := map[string]any{
		"action":      action,
		"open":        v.open,
		"openDelayMs": openDelayMs,
		"step":        string(step),
		"progress":    fmt.Sprintf("%.1f", s.Progress()),
		"canBack":     s.CanGoBack(),
		"actionLabel": s.ActionLabel(),
		"notice":      v.notice,
		"failed":      v.failed,

		"failureNotice": NoticeSubmitFailed,
	}

	if step.Terminal() {
		ctx["progress"] = "100"
		ctx["thankYou"] = map[string]any{
			"title":   wizard.ThankYouTitle,
			"message": wizard.ThankYouMessage,
		}
		ctx["hidden"] = hiddenContext(render.StateFields(s.State()))
		return ctx
	}

	var skip string
	if q, ok := s.Question(); ok {
		skip = q.Field
		current := s.Answers().Field(q.Field)
		options := make([]map[string]any, 0, len(q.Options))
		for i, option := range q.Options {
			options = append(options, map[string]any{
				"id":      fmt.Sprintf("lf-%s-%d", q.Field, i),
				"value":   option,
				"checked": option == current,
			})
		}
		ctx["title"] = q.Title
		ctx["field"] = q.Field
		ctx["options"] = options
	} else if p, ok := s.ContactPrompt(); ok {
		skip = p.Field
		ctx["title"] = p.Title
		ctx["contact"] = map[string]any{
			"method":      string(p.Method),
			"label":       p.Label,
			"field":       p.Field,
			"placeholder": p.Placeholder,
			"inputType":   p.InputType,
			"value":       s.Draft(p.Method),
		}
	}

	ctx["hidden"] = hiddenContext(render.StateFields(s.State(), skip))
	return ctx
}

func hiddenContext(fields []render.HiddenField) []map[string]any {
	out := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

// noticeFor maps a transition error to the copy shown in the modal.
func noticeFor(s *wizard.Session, err error) (string, bool) {
	var submitErr *wizard.SubmitError
	if errors.As(err, &submitErr) {
		return NoticeSubmitFailed, true
	}
	if s.Step() == wizard.StepContactDetails {
		if s.Answers().Contact.Method == wizard.ContactMail {
			return NoticeEmail, false
		}
		return NoticePhone, false
	}
	return NoticeChoose, false
}
