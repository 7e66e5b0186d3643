package wizard

import (
	"context"
	"time"
)

// DefaultOpenDelay is how long a mounted session stays hidden.
const DefaultOpenDelay = 5 * time.Second

// Submitter delivers a completed answer set.
type Submitter interface {
	Submit(ctx context.Context, answers AnswerSet) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, answers AnswerSet) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, answers AnswerSet) error {
	return f(ctx, answers)
}

// Option configures a Session.
type Option func(*Session)

// WithSubmitter sets the target for the final step.
func WithSubmitter(submitter Submitter) Option {
	return func(s *Session) {
		s.submitter = submitter
	}
}

// WithOpenDelay overrides DefaultOpenDelay. Negative values are ignored.
func WithOpenDelay(delay time.Duration) Option {
	return func(s *Session) {
		if delay >= 0 {
			s.openDelay = delay
		}
	}
}

// Session is one interactive run of the wizard. It is driven by a single
// goroutine; the pending flag only guards against re-entrant submission from
// that same driver.
type Session struct {
	submitter Submitter
	openDelay time.Duration

	step    Step
	answers AnswerSet
	drafts  map[ContactMethod]string

	mountedAt time.Time
	mounted   bool
	opened    bool
	closed    bool
	pending   bool
}

// NewSession returns a hidden session positioned on the initial step.
func NewSession(options ...Option) *Session {
	s := &Session{openDelay: DefaultOpenDelay}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.reset()
	return s
}

// Mount starts the open-delay timer and clears any state left from an
// earlier mount.
func (s *Session) Mount(now time.Time) {
	s.reset()
	s.mountedAt = now
	s.mounted = true
	s.opened = false
	s.closed = false
}

// Open shows the session immediately.
func (s *Session) Open() {
	s.opened = true
	s.closed = false
}

// Close hides the session and discards every answer. There is no resume:
// the next Mount or Open starts from scratch.
func (s *Session) Close() {
	s.reset()
	s.closed = true
	s.opened = false
}

// Visible reports whether the session should be shown at now.
func (s *Session) Visible(now time.Time) bool {
	if s.closed {
		return false
	}
	if s.opened {
		return true
	}
	return s.mounted && !now.Before(s.mountedAt.Add(s.openDelay))
}

// OpenDelay reports the configured open delay.
func (s *Session) OpenDelay() time.Duration { return s.openDelay }

// Step returns the active step.
func (s *Session) Step() Step { return s.step }

// Answers returns a copy of the collected answers.
func (s *Session) Answers() AnswerSet { return s.answers }

// Draft returns the value last typed for method, if any.
func (s *Session) Draft(method ContactMethod) string { return s.drafts[method] }

// Progress returns the completion percentage of the active step.
func (s *Session) Progress() float64 { return Progress(s.step) }

// Pending reports whether a submission is in flight.
func (s *Session) Pending() bool { return s.pending }

// CanAdvance reports whether the Next action is enabled.
func (s *Session) CanAdvance() bool {
	return !s.closed && !s.pending && CanAdvance(s.step, s.answers)
}

// CanGoBack reports whether the Back action is available.
func (s *Session) CanGoBack() bool {
	if s.closed || s.pending {
		return false
	}
	_, err := Back(s.step, s.answers)
	return err == nil
}

// ActionLabel returns the caption of the forward action.
func (s *Session) ActionLabel() string {
	if s.step != StepContactDetails {
		return "Next"
	}
	if s.pending {
		return "Submitting..."
	}
	return "Submit"
}

// Question returns the selection question for the active step.
func (s *Session) Question() (Question, bool) { return QuestionFor(s.step) }

// ContactPrompt returns the input copy for the chosen contact method.
func (s *Session) ContactPrompt() (ContactPrompt, bool) {
	return PromptFor(s.answers.Contact.Method)
}

// Choose records value as the answer to the active selection step.
func (s *Session) Choose(value string) error {
	if err := s.writable(); err != nil {
		return err
	}
	q, ok := QuestionFor(s.step)
	if !ok {
		return ErrNotSelectionStep
	}
	if !contains(q.Options, value) {
		return ErrUnknownOption
	}
	switch s.step {
	case StepServiceType:
		s.answers.Service = ServiceType(value)
	case StepVideographyType:
		s.answers.VideographyType = value
	case StepPhotographyType:
		s.answers.PhotographyType = value
	case StepFinalProduct:
		s.answers.FinalProduct = value
	case StepBudget:
		s.answers.Budget = value
	case StepContactMethod:
		s.selectMethod(ContactMethod(value))
	}
	return nil
}

// SetContactMethod chooses method on the contact-method step. A value typed
// earlier for method is restored from its draft.
func (s *Session) SetContactMethod(method ContactMethod) error {
	if err := s.writable(); err != nil {
		return err
	}
	if s.step != StepContactMethod {
		return ErrNotSelectionStep
	}
	return s.Choose(string(method))
}

// SetContactValue records the contact detail for the chosen method. It is
// only accepted on contact-details; the value is kept as that method's draft.
func (s *Session) SetContactValue(value string) error {
	if err := s.writable(); err != nil {
		return err
	}
	if s.step != StepContactDetails {
		return ErrNotSelectionStep
	}
	method := s.answers.Contact.Method
	s.drafts[method] = value
	s.answers.Contact = ContactDetail{Method: method, Value: value}
	return nil
}

func (s *Session) selectMethod(method ContactMethod) {
	s.answers.Contact = ContactDetail{Method: method, Value: s.drafts[method]}
}

// Next advances the session. On contact-details it submits the answers and
// moves to thank-you only when the submitter succeeds; on failure the step
// and answers are left untouched and a *SubmitError is returned.
func (s *Session) Next(ctx context.Context) (Step, error) {
	if err := s.writable(); err != nil {
		return s.step, err
	}
	next, err := Next(s.step, s.answers)
	if err != nil {
		return s.step, err
	}
	if s.step == StepContactDetails {
		if err := s.submit(ctx); err != nil {
			return s.step, err
		}
		s.answers = AnswerSet{}
		s.drafts = make(map[ContactMethod]string)
	}
	s.step = next
	return s.step, nil
}

// Back returns to the previous step, keeping every answer.
func (s *Session) Back() (Step, error) {
	if err := s.writable(); err != nil {
		return s.step, err
	}
	prev, err := Back(s.step, s.answers)
	if err != nil {
		return s.step, err
	}
	s.step = prev
	return s.step, nil
}

func (s *Session) submit(ctx context.Context) error {
	if s.submitter == nil {
		return &SubmitError{Err: ErrNoSubmitter}
	}
	s.pending = true
	defer func() { s.pending = false }()

	if err := s.submitter.Submit(ctx, s.answers.Pruned()); err != nil {
		return &SubmitError{Err: err}
	}
	return nil
}

func (s *Session) writable() error {
	if s.closed {
		return ErrClosed
	}
	if s.pending {
		return ErrSubmissionPending
	}
	return nil
}

func (s *Session) reset() {
	s.step = InitialStep
	s.answers = AnswerSet{}
	s.drafts = make(map[ContactMethod]string)
	s.pending = false
}

// State is the part of a session that stateless front ends carry between
// requests.
type State struct {
	Step    Step
	Answers AnswerSet
	Drafts  map[ContactMethod]string
}

// State returns a copy of the session's step, answers and drafts.
func (s *Session) State() State {
	drafts := make(map[ContactMethod]string, len(s.drafts))
	for method, value := range s.drafts {
		drafts[method] = value
	}
	return State{Step: s.step, Answers: s.answers, Drafts: drafts}
}

// Restore replaces the session state with st and opens the session. The
// step must lie on the path the answers route through, every earlier step
// must be satisfied, and every selection must be an offered option.
func (s *Session) Restore(st State) error {
	if !st.Step.Valid() {
		return ErrUnknownStep
	}
	if st.Step.Terminal() {
		s.reset()
		s.step = st.Step
		s.Open()
		return nil
	}
	if err := checkRestorable(st.Step, st.Answers); err != nil {
		return err
	}

	s.reset()
	s.step = st.Step
	s.answers = st.Answers
	for method, value := range st.Drafts {
		if method.Valid() {
			s.drafts[method] = value
		}
	}
	if method := s.answers.Contact.Method; method.Valid() {
		if draft, ok := s.drafts[method]; ok {
			s.answers.Contact.Value = draft
		} else {
			s.drafts[method] = s.answers.Contact.Value
		}
	}
	s.Open()
	return nil
}

func checkRestorable(step Step, a AnswerSet) error {
	path := a.Path()
	if !onPath(path, step) {
		return ErrUnknownStep
	}
	for _, earlier := range path {
		if earlier == step {
			break
		}
		if err := Guard(earlier, a); err != nil {
			return err
		}
	}
	for _, candidate := range path {
		q, ok := QuestionFor(candidate)
		if !ok {
			continue
		}
		if value := a.Field(q.Field); value != "" && !contains(q.Options, value) {
			return ErrUnknownOption
		}
	}
	return nil
}

func onPath(path []Step, step Step) bool {
	for _, candidate := range path {
		if candidate == step {
			return true
		}
	}
	return false
}
