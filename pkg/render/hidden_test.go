package render_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.Hidden("step", wizard.StepBudget),
		render.Hidden(" budget ", "Other"),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"step":     "budget",
		"budget":   "Other",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "budget", Value: "Other"},
		{Name: "existing", Value: "keep"},
		{Name: "step", Value: "budget"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestStateFieldsRoundTrip(t *testing.T) {
	st := wizard.State{
		Step: wizard.StepContactDetails,
		Answers: wizard.AnswerSet{
			Service:         wizard.ServiceVideography,
			VideographyType: "Wedding",
			FinalProduct:    "Highlight video",
			Budget:          "Other",
			Contact:         wizard.WhatsApp("+4917612345"),
		},
		Drafts: map[wizard.ContactMethod]string{
			wizard.ContactWhatsApp: "+4917612345",
			wizard.ContactMail:     "ada@example.com",
		},
	}

	fields := render.StateFields(st)
	form := url.Values{}
	for _, field := range fields {
		form.Set(field.Name, field.Value)
	}

	got := render.StateFromForm(form)
	if diff := cmp.Diff(st, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateFieldsSkip(t *testing.T) {
	st := wizard.State{
		Step:    wizard.StepContactDetails,
		Answers: wizard.AnswerSet{Contact: wizard.Mail("ada@example.com")},
		Drafts:  map[wizard.ContactMethod]string{wizard.ContactMail: "ada@example.com"},
	}

	fields := render.StateFields(st, wizard.FieldEmail)
	for _, field := range fields {
		if field.Name == wizard.FieldEmail {
			t.Fatalf("expected %q to be skipped", wizard.FieldEmail)
		}
	}
}

func TestStateFromFormDefaults(t *testing.T) {
	got := render.StateFromForm(url.Values{})
	if got.Step != wizard.InitialStep {
		t.Fatalf("expected initial step, got %q", got.Step)
	}
	if got.Answers != (wizard.AnswerSet{}) {
		t.Fatalf("expected empty answers, got %+v", got.Answers)
	}
}
