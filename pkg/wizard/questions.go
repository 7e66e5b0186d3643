package wizard

// Wire field names shared by the payload, the HTML forms and the contract.
const (
	FieldServiceType     = "serviceType"
	FieldVideographyType = "videographyType"
	FieldPhotographyType = "photographyType"
	FieldFinalProduct    = "finalProduct"
	FieldBudget          = "budget"
	FieldContactMethod   = "contactMethod"
	FieldPhoneNumber     = "phoneNumber"
	FieldWhatsAppNumber  = "whatsappNumber"
	FieldEmail           = "email"
)

var (
	serviceTypes = []string{
		string(ServiceVideography),
		string(ServicePhotography),
	}
	videographyTypes = []string{
		"Event Coverage",
		"Commercial",
		"Full length movie",
		"Music Video",
		"Personal Requirement",
		"Short film",
		"School Project",
		"Christening",
		"Conference",
		"Funeral",
		"Graduation",
		"Office party",
		"Sports game",
		"Wedding",
		"Other",
	}
	photographyTypes = []string{
		"Event Coverage",
		"Birthday Party (Adult)",
		"Birthday Party (Child)",
		"Commercial",
		"Headshot",
		"Portraits & Family Photos",
		"Property",
		"Wedding",
		"Other",
	}
	finalProducts = []string{
		"Raw footage",
		"Full length movie",
		"Highlight video",
		"Other",
	}
	budgets = []string{
		"Less than £250",
		"£250 - £499",
		"£500 - £999",
		"£1,000 - £1,999",
		"£2,000 - £2,999",
		"£3,000 - £4,999",
		"£5,000 or more",
		"Other",
	}
	contactMethods = []string{
		string(ContactPhone),
		string(ContactWhatsApp),
		string(ContactMail),
	}
)

// Question describes a selection step for front-ends.
type Question struct {
	Step    Step
	Title   string
	Field   string
	Options []string
}

// ContactPrompt describes the contact-details input for one method.
type ContactPrompt struct {
	Method      ContactMethod
	Title       string
	Label       string
	Field       string
	Placeholder string
	InputType   string
}

// ThankYou copy shown on the terminal step.
const (
	ThankYouTitle   = "Thank You!"
	ThankYouMessage = "I'll get in touch within next 2 Hours."
)

// QuestionFor returns the selection question for step. The second result is
// false for contact-details and thank-you, which are not selection steps.
func QuestionFor(step Step) (Question, bool) {
	q := Question{Step: step}
	switch step {
	case StepServiceType:
		q.Title = "Which of the following describe your requirements?"
		q.Field = FieldServiceType
		q.Options = serviceTypes
	case StepVideographyType:
		q.Title = "Which of the following describe your requirements?"
		q.Field = FieldVideographyType
		q.Options = videographyTypes
	case StepPhotographyType:
		q.Title = "Which type of photography do you need?"
		q.Field = FieldPhotographyType
		q.Options = photographyTypes
	case StepFinalProduct:
		q.Title = "What final product do you need?"
		q.Field = FieldFinalProduct
		q.Options = finalProducts
	case StepBudget:
		q.Title = "What is your estimated budget?"
		q.Field = FieldBudget
		q.Options = budgets
	case StepContactMethod:
		q.Title = "How do you prefer to be contacted?"
		q.Field = FieldContactMethod
		q.Options = contactMethods
	default:
		return Question{}, false
	}
	q.Options = append([]string(nil), q.Options...)
	return q, true
}

// PromptFor returns the contact-details copy for method.
func PromptFor(method ContactMethod) (ContactPrompt, bool) {
	switch method {
	case ContactPhone:
		return ContactPrompt{
			Method:      method,
			Title:       "Enter your phone number.",
			Label:       "Phone Number",
			Field:       FieldPhoneNumber,
			Placeholder: "+44 1234 567890",
			InputType:   "tel",
		}, true
	case ContactWhatsApp:
		return ContactPrompt{
			Method:      method,
			Title:       "Enter your WhatsApp number.",
			Label:       "WhatsApp Number",
			Field:       FieldWhatsAppNumber,
			Placeholder: "+44 1234 567890",
			InputType:   "tel",
		}, true
	case ContactMail:
		return ContactPrompt{
			Method:      method,
			Title:       "Enter your mail address.",
			Label:       "Email",
			Field:       FieldEmail,
			Placeholder: "olivia@untitledui.com",
			InputType:   "email",
		}, true
	}
	return ContactPrompt{}, false
}

// ServiceTypes lists the service type options.
func ServiceTypes() []string { return append([]string(nil), serviceTypes...) }

// VideographyTypes lists the videography options.
func VideographyTypes() []string { return append([]string(nil), videographyTypes...) }

// PhotographyTypes lists the photography options.
func PhotographyTypes() []string { return append([]string(nil), photographyTypes...) }

// FinalProducts lists the final product options.
func FinalProducts() []string { return append([]string(nil), finalProducts...) }

// Budgets lists the budget ranges.
func Budgets() []string { return append([]string(nil), budgets...) }

// ContactMethods lists the contact method options.
func ContactMethods() []string { return append([]string(nil), contactMethods...) }

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
