package wizard

import "strings"

// ServiceType is the first branching answer.
type ServiceType string

const (
	ServiceVideography ServiceType = "Videography"
	ServicePhotography ServiceType = "Photography"
)

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool {
	return t == ServiceVideography || t == ServicePhotography
}

// ContactMethod selects which contact detail the lead provides.
type ContactMethod string

const (
	ContactPhone    ContactMethod = "Phone Call"
	ContactWhatsApp ContactMethod = "WhatsApp"
	ContactMail     ContactMethod = "Mail"
)

// Valid reports whether m is a known contact method.
func (m ContactMethod) Valid() bool {
	switch m {
	case ContactPhone, ContactWhatsApp, ContactMail:
		return true
	}
	return false
}

// ContactDetail pairs the chosen method with the single value entered for it.
// Holding both in one value makes it impossible to carry details for two
// methods at once.
type ContactDetail struct {
	Method ContactMethod
	Value  string
}

// Phone builds a phone-call contact detail.
func Phone(number string) ContactDetail {
	return ContactDetail{Method: ContactPhone, Value: number}
}

// WhatsApp builds a WhatsApp contact detail.
func WhatsApp(number string) ContactDetail {
	return ContactDetail{Method: ContactWhatsApp, Value: number}
}

// Mail builds an email contact detail.
func Mail(address string) ContactDetail {
	return ContactDetail{Method: ContactMail, Value: address}
}

// Valid reports whether the value passes the format check for its method.
func (c ContactDetail) Valid() bool {
	switch c.Method {
	case ContactPhone, ContactWhatsApp:
		return ValidPhone(c.Value)
	case ContactMail:
		return ValidEmail(c.Value)
	}
	return false
}

// AnswerSet accumulates the answers of one wizard session.
type AnswerSet struct {
	Service         ServiceType
	VideographyType string
	PhotographyType string
	FinalProduct    string
	Budget          string
	Contact         ContactDetail
}

// Field returns the answer stored under a wire field name.
func (a AnswerSet) Field(name string) string {
	switch name {
	case FieldServiceType:
		return string(a.Service)
	case FieldVideographyType:
		return a.VideographyType
	case FieldPhotographyType:
		return a.PhotographyType
	case FieldFinalProduct:
		return a.FinalProduct
	case FieldBudget:
		return a.Budget
	case FieldContactMethod:
		return string(a.Contact.Method)
	case FieldPhoneNumber:
		if a.Contact.Method == ContactPhone {
			return a.Contact.Value
		}
	case FieldWhatsAppNumber:
		if a.Contact.Method == ContactWhatsApp {
			return a.Contact.Value
		}
	case FieldEmail:
		if a.Contact.Method == ContactMail {
			return a.Contact.Value
		}
	}
	return ""
}

// Pruned returns a copy with the untaken branch cleared and the contact value
// in its canonical form: phone numbers without whitespace, addresses trimmed.
func (a AnswerSet) Pruned() AnswerSet {
	switch a.Service {
	case ServiceVideography:
		a.PhotographyType = ""
	case ServicePhotography:
		a.VideographyType = ""
		a.FinalProduct = ""
	default:
		a.VideographyType = ""
		a.PhotographyType = ""
		a.FinalProduct = ""
	}
	switch a.Contact.Method {
	case ContactPhone, ContactWhatsApp:
		a.Contact.Value = NormalizePhone(a.Contact.Value)
	default:
		a.Contact.Value = strings.TrimSpace(a.Contact.Value)
	}
	return a
}

// Path returns the steps the answers route through, in order, ending with
// contact-details. A missing service type stops the path at the first step.
func (a AnswerSet) Path() []Step {
	path := []Step{StepServiceType}
	switch a.Service {
	case ServiceVideography:
		path = append(path, StepVideographyType, StepFinalProduct)
	case ServicePhotography:
		path = append(path, StepPhotographyType)
	default:
		return path
	}
	return append(path, StepBudget, StepContactMethod, StepContactDetails)
}
