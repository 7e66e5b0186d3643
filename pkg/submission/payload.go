// Package submission defines the wire shapes exchanged between the wizard
// and the submission endpoint.
package submission

import (
	"strings"

	"github.com/goliatone/go-leadform/pkg/wizard"
)

// Payload is the flat JSON object posted by the wizard. Exactly one of the
// three contact keys is populated, selected by ContactMethod.
type Payload struct {
	ServiceType     string `json:"serviceType"`
	VideographyType string `json:"videographyType"`
	PhotographyType string `json:"photographyType"`
	FinalProduct    string `json:"finalProduct"`
	Budget          string `json:"budget"`
	ContactMethod   string `json:"contactMethod"`
	PhoneNumber     string `json:"phoneNumber"`
	WhatsAppNumber  string `json:"whatsappNumber"`
	Email           string `json:"email"`
}

// FromAnswers builds the payload for a, clearing the untaken branch.
func FromAnswers(a wizard.AnswerSet) Payload {
	a = a.Pruned()
	return Payload{
		ServiceType:     string(a.Service),
		VideographyType: a.VideographyType,
		PhotographyType: a.PhotographyType,
		FinalProduct:    a.FinalProduct,
		Budget:          a.Budget,
		ContactMethod:   string(a.Contact.Method),
		PhoneNumber:     a.Field(wizard.FieldPhoneNumber),
		WhatsAppNumber:  a.Field(wizard.FieldWhatsAppNumber),
		Email:           a.Field(wizard.FieldEmail),
	}
}

// Answers converts the payload back into an answer set. Only the contact key
// matching ContactMethod is read; the others are ignored.
func (p Payload) Answers() wizard.AnswerSet {
	method := wizard.ContactMethod(strings.TrimSpace(p.ContactMethod))
	contact := wizard.ContactDetail{Method: method}
	switch method {
	case wizard.ContactPhone:
		contact.Value = p.PhoneNumber
	case wizard.ContactWhatsApp:
		contact.Value = p.WhatsAppNumber
	case wizard.ContactMail:
		contact.Value = p.Email
	}
	return wizard.AnswerSet{
		Service:         wizard.ServiceType(strings.TrimSpace(p.ServiceType)),
		VideographyType: strings.TrimSpace(p.VideographyType),
		PhotographyType: strings.TrimSpace(p.PhotographyType),
		FinalProduct:    strings.TrimSpace(p.FinalProduct),
		Budget:          strings.TrimSpace(p.Budget),
		Contact:         contact,
	}
}

// Normalized keeps only what the chosen path and contact method use, in the
// form FromAnswers produces. Keys for untaken branches and other contact
// methods are cleared.
func (p Payload) Normalized() Payload {
	return FromAnswers(p.Answers())
}

// Validate checks that the payload describes a complete path through the
// wizard.
func (p Payload) Validate() error {
	return wizard.ValidateComplete(p.Answers())
}

// Map returns the payload as a generic JSON object, the shape schema
// validators consume.
func (p Payload) Map() map[string]any {
	return map[string]any{
		wizard.FieldServiceType:     p.ServiceType,
		wizard.FieldVideographyType: p.VideographyType,
		wizard.FieldPhotographyType: p.PhotographyType,
		wizard.FieldFinalProduct:    p.FinalProduct,
		wizard.FieldBudget:          p.Budget,
		wizard.FieldContactMethod:   p.ContactMethod,
		wizard.FieldPhoneNumber:     p.PhoneNumber,
		wizard.FieldWhatsAppNumber:  p.WhatsAppNumber,
		wizard.FieldEmail:           p.Email,
	}
}
