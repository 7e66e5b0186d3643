package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-leadform/pkg/wizard"
)

// FieldStep carries the active wizard step between requests.
const FieldStep = "step"

// contactFields maps each contact method to the input that holds its draft.
var contactFields = map[wizard.ContactMethod]string{
	wizard.ContactPhone:    wizard.FieldPhoneNumber,
	wizard.ContactWhatsApp: wizard.FieldWhatsAppNumber,
	wizard.ContactMail:     wizard.FieldEmail,
}

// HiddenField represents a hidden form input that carries wizard state
// between requests.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names and empty values are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" || value == "" {
			continue
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}

// StateFields encodes st as sorted hidden fields. Names listed in skip are
// left out, typically because the page renders them as visible inputs.
func StateFields(st wizard.State, skip ...string) []HiddenField {
	a := st.Answers
	fields := MergeHiddenFields(nil,
		Hidden(FieldStep, st.Step),
		Hidden(wizard.FieldServiceType, a.Service),
		Hidden(wizard.FieldVideographyType, a.VideographyType),
		Hidden(wizard.FieldPhotographyType, a.PhotographyType),
		Hidden(wizard.FieldFinalProduct, a.FinalProduct),
		Hidden(wizard.FieldBudget, a.Budget),
		Hidden(wizard.FieldContactMethod, a.Contact.Method),
	)
	for method, name := range contactFields {
		fields[name] = st.Drafts[method]
	}
	if method := a.Contact.Method; method.Valid() {
		fields[contactFields[method]] = a.Contact.Value
	}
	for _, name := range skip {
		delete(fields, strings.TrimSpace(name))
	}
	return SortedHiddenFields(fields)
}

// StateFromForm decodes wizard state posted by a page rendered with
// StateFields. Missing fields decode as empty answers.
func StateFromForm(form url.Values) wizard.State {
	st := wizard.State{
		Step: wizard.Step(strings.TrimSpace(form.Get(FieldStep))),
		Answers: wizard.AnswerSet{
			Service:         wizard.ServiceType(form.Get(wizard.FieldServiceType)),
			VideographyType: form.Get(wizard.FieldVideographyType),
			PhotographyType: form.Get(wizard.FieldPhotographyType),
			FinalProduct:    form.Get(wizard.FieldFinalProduct),
			Budget:          form.Get(wizard.FieldBudget),
		},
		Drafts: make(map[wizard.ContactMethod]string, len(contactFields)),
	}
	if st.Step == "" {
		st.Step = wizard.InitialStep
	}
	for method, name := range contactFields {
		if value := form.Get(name); value != "" {
			st.Drafts[method] = value
		}
	}
	method := wizard.ContactMethod(form.Get(wizard.FieldContactMethod))
	st.Answers.Contact = wizard.ContactDetail{Method: method, Value: st.Drafts[method]}
	return st
}

// ContactField returns the input name holding the value for method.
func ContactField(method wizard.ContactMethod) string {
	return contactFields[method]
}
