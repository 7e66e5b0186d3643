package leadmail

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-leadform/pkg/render/template"
	"github.com/goliatone/go-leadform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-leadform/pkg/submission"
)

// DefaultBrand names the business in subjects and headings.
const DefaultBrand = "Braga Experience"

const leadTemplate = "lead_email"

//go:embed templates/*.tpl
var templateFS embed.FS

// Templates returns the embedded notification templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return sub
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Email is a composed notification.
type Email struct {
	Subject string
	HTML    string
}

// Composer renders lead notifications.
type Composer struct {
	engine template.TemplateRenderer
	brand  string
}

// ComposerOption configures a Composer.
type ComposerOption func(*composerConfig)

type composerConfig struct {
	brand     string
	templates fs.FS
}

// WithBrand overrides DefaultBrand.
func WithBrand(brand string) ComposerOption {
	return func(cfg *composerConfig) {
		if trimmed := strings.TrimSpace(brand); trimmed != "" {
			cfg.brand = trimmed
		}
	}
}

// WithTemplates replaces the embedded templates. The FS must provide
// lead_email.tpl at its root.
func WithTemplates(files fs.FS) ComposerOption {
	return func(cfg *composerConfig) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// NewComposer builds a Composer backed by the embedded template.
func NewComposer(options ...ComposerOption) (*Composer, error) {
	cfg := composerConfig{brand: DefaultBrand}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates == nil {
		cfg.templates = Templates()
	}

	engine, err := gotemplate.New(gotemplate.WithFS(cfg.templates))
	if err != nil {
		return nil, fmt.Errorf("leadmail: template engine: %w", err)
	}
	return &Composer{engine: engine, brand: cfg.brand}, nil
}

// Brand reports the brand used in subjects and headings.
func (c *Composer) Brand() string { return c.brand }

// Compose renders the subject and HTML body for p. Output depends only on p
// and the brand.
func (c *Composer) Compose(p submission.Payload) (Email, error) {
	lead := sanitizePayload(p)
	body, err := c.engine.RenderTemplate(leadTemplate, map[string]any{
		"brand": c.brand,
		"lead":  lead.Map(),
	})
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: fmt.Sprintf("New %s Request - %s", lead.ServiceType, c.brand),
		HTML:    body,
	}, nil
}

func sanitizePayload(p submission.Payload) submission.Payload {
	return submission.Payload{
		ServiceType:     plainText(p.ServiceType),
		VideographyType: plainText(p.VideographyType),
		PhotographyType: plainText(p.PhotographyType),
		FinalProduct:    plainText(p.FinalProduct),
		Budget:          plainText(p.Budget),
		ContactMethod:   plainText(p.ContactMethod),
		PhoneNumber:     plainText(p.PhoneNumber),
		WhatsAppNumber:  plainText(p.WhatsAppNumber),
		Email:           plainText(p.Email),
	}
}

// plainText drops markup and returns unescaped text; the engine escapes it
// once on output.
func plainText(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(value)))
}
