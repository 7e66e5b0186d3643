package site_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/site"
	"github.com/goliatone/go-leadform/pkg/testsupport"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

type stubSubmitter struct {
	calls []wizard.AnswerSet
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, answers wizard.AnswerSet) error {
	s.calls = append(s.calls, answers)
	return s.err
}

func newSite(t *testing.T, submitter wizard.Submitter) http.Handler {
	t.Helper()
	s, err := site.New(submitter)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	mux := http.NewServeMux()
	if err := s.RegisterRoutes(mux); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return mux
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postWizard(h http.Handler, form url.Values, partial bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, site.WizardPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if partial {
		req.Header.Set(site.PartialHeader, "1")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func form(pairs ...string) url.Values {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		values.Set(pairs[i], pairs[i+1])
	}
	return values
}

func mustContain(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q\n%s", want, body)
		}
	}
}

func TestIndexRendersClosedModal(t *testing.T) {
	rec := get(newSite(t, &stubSubmitter{}), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	mustContain(t, body,
		`<div id="leadform-modal" class="lf-modal" data-open-delay="5000"`,
		`--primary: #C4F82A;`,
		`--whatsapp: #25D366;`,
		`href="https://wa.me/+4407514996775"`,
		`href="/assets/site.css"`,
		`src="/assets/wizard.js"`,
		"Which of the following describe your requirements?",
		`name="serviceType" value="Videography"`,
	)
}

func TestIndexOpensOnRequest(t *testing.T) {
	rec := get(newSite(t, &stubSubmitter{}), "/?wizard=open")
	mustContain(t, rec.Body.String(), `class="lf-modal is-open"`)
}

func TestWizardRoundTrip(t *testing.T) {
	submitter := &stubSubmitter{}
	h := newSite(t, submitter)

	rec := postWizard(h, form("step", "service-type", "serviceType", "Photography", "action", "next"), false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(),
		"Which type of photography do you need?",
		`<input type="hidden" name="serviceType" value="Photography">`,
		`<input type="hidden" name="step" value="photography-type">`,
		`value="back"`,
	)

	rec = postWizard(h, form(
		"step", "contact-method",
		"serviceType", "Photography",
		"photographyType", "Wedding",
		"budget", "£1,000 - £1,999",
		"contactMethod", "Mail",
		"action", "next",
	), false)
	mustContain(t, rec.Body.String(), `type="email" name="email"`, ">Submit<")

	rec = postWizard(h, form(
		"step", "contact-details",
		"serviceType", "Photography",
		"photographyType", "Wedding",
		"budget", "£1,000 - £1,999",
		"contactMethod", "Mail",
		"email", "x@y.com",
		"action", "next",
	), false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), wizard.ThankYouTitle)

	if diff := cmp.Diff([]wizard.AnswerSet{testsupport.PhotographyMail()}, submitter.calls); diff != "" {
		t.Fatalf("submitted answers mismatch (-want +got):\n%s", diff)
	}
}

func TestWizardBackKeepsAnswers(t *testing.T) {
	h := newSite(t, &stubSubmitter{})

	rec := postWizard(h, form(
		"step", "budget",
		"serviceType", "Videography",
		"videographyType", "Wedding",
		"finalProduct", "Raw footage",
		"budget", "Other",
		"action", "back",
	), false)
	mustContain(t, rec.Body.String(),
		"What final product do you need?",
		`value="Raw footage" checked`,
		`<input type="hidden" name="budget" value="Other">`,
	)
}

func TestWizardGuardShowsNotice(t *testing.T) {
	h := newSite(t, &stubSubmitter{})

	rec := postWizard(h, form("step", "service-type", "action", "next"), false)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), site.NoticeChoose)

	rec = postWizard(h, form(
		"step", "contact-details",
		"serviceType", "Photography",
		"photographyType", "Wedding",
		"budget", "Other",
		"contactMethod", "Phone Call",
		"phoneNumber", "12345",
		"action", "next",
	), false)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), site.NoticePhone, `value="12345"`)
}

func TestWizardSubmissionFailureKeepsAnswers(t *testing.T) {
	submitter := &stubSubmitter{err: errors.New("smtp down")}
	h := newSite(t, submitter)

	rec := postWizard(h, form(
		"step", "contact-details",
		"serviceType", "Photography",
		"photographyType", "Wedding",
		"budget", "Other",
		"contactMethod", "Mail",
		"email", "x@y.com",
		"action", "next",
	), true)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	body := rec.Body.String()
	mustContain(t, body, site.NoticeSubmitFailed, `value="x@y.com"`, "is-failure")
	if strings.Contains(body, "<html") {
		t.Fatalf("expected partial response without page shell")
	}
	if len(submitter.calls) != 1 {
		t.Fatalf("expected one submission attempt, got %d", len(submitter.calls))
	}
}

func TestWizardRejectsTamperedState(t *testing.T) {
	submitter := &stubSubmitter{}
	h := newSite(t, submitter)

	rec := postWizard(h, form(
		"step", "contact-details",
		"serviceType", "Photography",
		"photographyType", "Drone",
		"budget", "Other",
		"contactMethod", "Mail",
		"email", "x@y.com",
		"action", "next",
	), false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), `<input type="hidden" name="step" value="service-type">`)
	if len(submitter.calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(submitter.calls))
	}
}

func TestWizardClosePartialIsEmpty(t *testing.T) {
	h := newSite(t, &stubSubmitter{})

	rec := postWizard(h, form("step", "budget", "serviceType", "Photography", "photographyType", "Wedding", "action", "close"), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestWizardMethodNotAllowed(t *testing.T) {
	rec := get(newSite(t, &stubSubmitter{}), site.WizardPath)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestAssetsServed(t *testing.T) {
	h := newSite(t, &stubSubmitter{})
	for _, path := range []string{"/assets/wizard.js", "/assets/site.css"} {
		rec := get(h, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestWizardWithoutActionDoesNotSubmit(t *testing.T) {
	submitter := &stubSubmitter{}
	h := newSite(t, submitter)

	for _, action := range []string{"", "retry"} {
		values := form(
			"step", "contact-details",
			"serviceType", "Photography",
			"photographyType", "Wedding",
			"budget", "Other",
			"contactMethod", "Mail",
			"email", "x@y.com",
		)
		if action != "" {
			values.Set("action", action)
		}
		rec := postWizard(h, values, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for action %q, got %d", action, rec.Code)
		}
		mustContain(t, rec.Body.String(), `<input type="hidden" name="step" value="contact-details">`, `value="x@y.com"`)
	}
	if len(submitter.calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(submitter.calls))
	}
}

func TestWizardMarkupSupportsClientSideFailure(t *testing.T) {
	h := newSite(t, &stubSubmitter{})

	rec := postWizard(h, form(
		"step", "contact-method",
		"serviceType", "Photography",
		"photographyType", "Wedding",
		"budget", "Other",
		"contactMethod", "Mail",
		"action", "next",
	), true)
	body := rec.Body.String()
	mustContain(t, body, `data-failure-notice="`+site.NoticeSubmitFailed+`"`)

	// Implicit submission (Enter in the contact input) uses the first submit
	// button, which must be next rather than back.
	next := strings.Index(body, `value="next"`)
	back := strings.Index(body, `value="back"`)
	if next < 0 || back < 0 || next > back {
		t.Fatalf("expected next button before back button, got next=%d back=%d", next, back)
	}

	script := get(h, "/assets/wizard.js").Body.String()
	if strings.Contains(script, "form.submit()") {
		t.Fatalf("expected script to never fall back to a native form submit")
	}
	mustContain(t, script, "dataset.failureNotice")
}

func TestWhatsAppLinkDialsNormalizedNumber(t *testing.T) {
	s, err := site.New(&stubSubmitter{}, site.WithConfig(site.Config{WhatsApp: "+44 7514\t996775"}))
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	rec := httptest.NewRecorder()
	s.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	mustContain(t, rec.Body.String(), `href="https://wa.me/+447514996775"`)
}

func TestTemplatesDirOverridesPage(t *testing.T) {
	dir := t.TempDir()
	page := `{% extends "layout.tpl" %}{% block content %}<p class="custom">{{ site.brand }}</p>{% endblock %}`
	if err := os.WriteFile(filepath.Join(dir, "index.tpl"), []byte(page), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	s, err := site.New(&stubSubmitter{}, site.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	rec := httptest.NewRecorder()
	s.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), `<p class="custom">Braga Experience</p>`, `href="/assets/site.css"`)
}

func TestTemplatesDirMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := site.New(&stubSubmitter{}, site.WithTemplatesDir(missing)); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}
