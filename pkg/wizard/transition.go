package wizard

// Guard returns nil when the answers satisfy step's requirement, or a
// *ValidationError naming the blocking field.
func Guard(step Step, a AnswerSet) error {
	switch step {
	case StepServiceType:
		if a.Service == "" {
			return required(step, FieldServiceType)
		}
		if !a.Service.Valid() {
			return invalid(step, FieldServiceType, "is not a known service")
		}
	case StepVideographyType:
		if a.VideographyType == "" {
			return required(step, FieldVideographyType)
		}
	case StepPhotographyType:
		if a.PhotographyType == "" {
			return required(step, FieldPhotographyType)
		}
	case StepFinalProduct:
		if a.FinalProduct == "" {
			return required(step, FieldFinalProduct)
		}
	case StepBudget:
		if a.Budget == "" {
			return required(step, FieldBudget)
		}
	case StepContactMethod:
		if a.Contact.Method == "" {
			return required(step, FieldContactMethod)
		}
		if !a.Contact.Method.Valid() {
			return invalid(step, FieldContactMethod, "is not a known contact method")
		}
	case StepContactDetails:
		return contactGuard(a.Contact)
	case StepThankYou:
		return ErrTerminal
	default:
		return ErrUnknownStep
	}
	return nil
}

func contactGuard(c ContactDetail) error {
	step := StepContactDetails
	switch c.Method {
	case ContactPhone:
		if !ValidPhone(c.Value) {
			return invalid(step, FieldPhoneNumber, "must be 7 to 15 digits with an optional leading +")
		}
	case ContactWhatsApp:
		if !ValidPhone(c.Value) {
			return invalid(step, FieldWhatsAppNumber, "must be 7 to 15 digits with an optional leading +")
		}
	case ContactMail:
		if !ValidEmail(c.Value) {
			return invalid(step, FieldEmail, "must look like name@domain.tld")
		}
	default:
		return required(step, FieldContactMethod)
	}
	return nil
}

// CanAdvance reports whether Next would leave step.
func CanAdvance(step Step, a AnswerSet) bool {
	return Guard(step, a) == nil
}

// Next returns the step that follows step for the given answers. Leaving
// contact-details yields thank-you; callers are expected to submit the
// answers before moving there.
func Next(step Step, a AnswerSet) (Step, error) {
	if err := Guard(step, a); err != nil {
		return step, err
	}
	switch step {
	case StepServiceType:
		if a.Service == ServiceVideography {
			return StepVideographyType, nil
		}
		return StepPhotographyType, nil
	case StepVideographyType:
		return StepFinalProduct, nil
	case StepPhotographyType, StepFinalProduct:
		return StepBudget, nil
	case StepBudget:
		return StepContactMethod, nil
	case StepContactMethod:
		return StepContactDetails, nil
	case StepContactDetails:
		return StepThankYou, nil
	}
	return step, ErrUnknownStep
}

// Back returns the step Next came from. It mirrors Next exactly, using the
// service type to pick the branch when leaving budget.
func Back(step Step, a AnswerSet) (Step, error) {
	switch step {
	case StepServiceType:
		return step, ErrNoBack
	case StepVideographyType, StepPhotographyType:
		return StepServiceType, nil
	case StepFinalProduct:
		return StepVideographyType, nil
	case StepBudget:
		if a.Service == ServiceVideography {
			return StepFinalProduct, nil
		}
		return StepPhotographyType, nil
	case StepContactMethod:
		return StepBudget, nil
	case StepContactDetails:
		return StepContactMethod, nil
	case StepThankYou:
		return step, ErrTerminal
	}
	return step, ErrUnknownStep
}

// ValidateComplete checks every step on the path the answers take, and that
// each selection is one of the offered options.
func ValidateComplete(a AnswerSet) error {
	for _, step := range a.Path() {
		if err := Guard(step, a); err != nil {
			return err
		}
		q, ok := QuestionFor(step)
		if !ok {
			continue
		}
		if value := a.Field(q.Field); !contains(q.Options, value) {
			return invalid(step, q.Field, "is not one of the offered options")
		}
	}
	return nil
}
