package wizard

// Step identifies one position in the wizard.
type Step string

const (
	StepServiceType     Step = "service-type"
	StepVideographyType Step = "videography-type"
	StepPhotographyType Step = "photography-type"
	StepFinalProduct    Step = "final-product"
	StepBudget          Step = "budget"
	StepContactMethod   Step = "contact-method"
	StepContactDetails  Step = "contact-details"
	StepThankYou        Step = "thank-you"
)

// InitialStep is where every session starts.
const InitialStep = StepServiceType

// progressSteps lists the pre-terminal steps in display order. Both branches
// are counted so the bar width matches the original site.
var progressSteps = []Step{
	StepServiceType,
	StepVideographyType,
	StepPhotographyType,
	StepFinalProduct,
	StepBudget,
	StepContactMethod,
	StepContactDetails,
}

// Steps returns every step, terminal one included.
func Steps() []Step {
	out := make([]Step, 0, len(progressSteps)+1)
	out = append(out, progressSteps...)
	return append(out, StepThankYou)
}

// ParseStep converts raw input into a Step, reporting whether it is known.
func ParseStep(raw string) (Step, bool) {
	step := Step(raw)
	return step, step.Valid()
}

// Valid reports whether s is one of the declared steps.
func (s Step) Valid() bool {
	if s == StepThankYou {
		return true
	}
	return s.index() >= 0
}

// Terminal reports whether s ends the flow.
func (s Step) Terminal() bool {
	return s == StepThankYou
}

func (s Step) String() string {
	return string(s)
}

func (s Step) index() int {
	for i, step := range progressSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// Progress returns the completion percentage for s: its 1-based position
// among the pre-terminal steps over their count. Unknown and terminal steps
// yield 0.
func Progress(s Step) float64 {
	idx := s.index()
	if idx < 0 {
		return 0
	}
	return float64(idx+1) / float64(len(progressSteps)) * 100
}
