package site

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/render/template"
	"github.com/goliatone/go-leadform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

// Routes served by the site.
const (
	WizardPath = "/wizard"
	AssetsPath = "/assets/"

	// PartialHeader asks POST /wizard for the modal markup only.
	PartialHeader = "X-Leadform-Partial"

	maxFormBytes = 16 << 10
)

// Wizard actions posted by the modal.
const (
	ActionNext  = "next"
	ActionBack  = "back"
	ActionClose = "close"
)

//go:embed templates/*.tpl
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS

// Templates returns the embedded page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Assets returns the embedded stylesheet and script.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Config holds the page copy and wizard timing.
type Config struct {
	Brand        string
	Title        string
	Description  string
	WhatsApp     string
	ThemeVariant string
	OpenDelay    time.Duration
}

// DefaultConfig mirrors the production landing page.
func DefaultConfig() Config {
	return Config{
		Brand:       "Braga Experience",
		Title:       "Braga Experience - Professional Videography & Photography",
		Description: "From corporate films to creative content - we make visuals that move audiences.",
		WhatsApp:    "+4407514996775",
		OpenDelay:   wizard.DefaultOpenDelay,
	}
}

// Option configures a Site.
type Option func(*Site)

// WithConfig replaces DefaultConfig. Empty fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *Site) {
		def := s.cfg
		if cfg.Brand == "" {
			cfg.Brand = def.Brand
		}
		if cfg.Title == "" {
			cfg.Title = def.Title
		}
		if cfg.Description == "" {
			cfg.Description = def.Description
		}
		if cfg.WhatsApp == "" {
			cfg.WhatsApp = def.WhatsApp
		}
		if cfg.OpenDelay <= 0 {
			cfg.OpenDelay = def.OpenDelay
		}
		s.cfg = cfg
	}
}

// WithTemplates overrides the embedded templates, e.g. with a directory on
// disk during development.
func WithTemplates(files fs.FS) Option {
	return func(s *Site) {
		if files != nil {
			s.templates = files
		}
	}
}

// WithTemplatesDir loads page templates from dir ahead of the embedded
// ones, so a deployment can replace single pages.
func WithTemplatesDir(dir string) Option {
	return func(s *Site) {
		s.templatesDir = strings.TrimSpace(dir)
	}
}

// WithManifest replaces BrandManifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(s *Site) {
		if manifest != nil {
			s.manifest = manifest
		}
	}
}

// WithLogger sets the logger used for render and submission failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// Site renders the landing page and runs the wizard over HTTP.
type Site struct {
	cfg          Config
	submitter    wizard.Submitter
	templates    fs.FS
	templatesDir string
	manifest     *theme.Manifest
	logger       zerolog.Logger

	engine template.TemplateRenderer
	theme  *theme.RendererConfig
}

// New builds a Site that submits completed wizards through submitter.
func New(submitter wizard.Submitter, options ...Option) (*Site, error) {
	s := &Site{
		cfg:       DefaultConfig(),
		submitter: submitter,
		templates: Templates(),
		manifest:  BrandManifest(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	cfg, err := ThemeConfig(s.manifest, s.cfg.ThemeVariant)
	if err != nil {
		return nil, err
	}
	s.theme = cfg

	engine, err := gotemplate.New(
		gotemplate.WithFS(s.templates),
		gotemplate.WithBaseDir(s.templatesDir),
		gotemplate.WithFilter("dial", filterDial),
		gotemplate.WithGlobalData(map[string]any{
			"site": map[string]any{
				"brand":       s.cfg.Brand,
				"title":       s.cfg.Title,
				"description": s.cfg.Description,
				"whatsapp":    s.cfg.WhatsApp,
			},
			"theme": map[string]any{
				"name":    cfg.Theme,
				"variant": cfg.Variant,
				"cssVars": cssVarsStyle(cfg.CSSVars),
			},
			"assets": map[string]any{
				"stylesheet": cfg.AssetURL("stylesheet"),
				"script":     cfg.AssetURL("script"),
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("site: template engine: %w", err)
	}
	s.engine = engine
	return s, nil
}

// filterDial strips the spacing from a display number for wa.me links.
func filterDial(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(wizard.NormalizePhone(in.String())), nil
}

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the page, the wizard action and the assets.
func (s *Site) RegisterRoutes(mux Mux) error {
	if mux == nil {
		return errors.New("site: missing mux")
	}
	mux.Handle("/{$}", http.HandlerFunc(s.Index))
	mux.Handle(WizardPath, http.HandlerFunc(s.Wizard))
	mux.Handle(AssetsPath, http.StripPrefix(strings.TrimSuffix(AssetsPath, "/"), http.FileServerFS(Assets())))
	return nil
}

// Index renders the landing page with a fresh wizard. The modal opens after
// the configured delay, or immediately with ?wizard=open.
func (s *Site) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	session := s.newSession()
	session.Mount(time.Now())
	view := wizardView{session: session, open: r.URL.Query().Get("wizard") == "open"}
	s.render(w, r, http.StatusOK, "index", &view)
}

// Wizard applies one posted action to the restored session. A missing or
// unknown action leaves the wizard on its current step.
func (s *Site) Wizard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	session := s.newSession()
	view := wizardView{session: session, open: true}
	status := http.StatusOK

	if err := session.Restore(render.StateFromForm(r.PostForm)); err != nil {
		s.logger.Warn().Err(err).Msg("wizard state rejected")
		session.Close()
		session.Open()
		s.render(w, r, http.StatusBadRequest, "index", &view)
		return
	}

	switch strings.TrimSpace(r.PostForm.Get("action")) {
	case ActionClose:
		session.Close()
		s.render(w, r, http.StatusOK, "index", nil)
		return
	case ActionBack:
		if _, err := session.Back(); err != nil && !errors.Is(err, wizard.ErrNoBack) {
			status = http.StatusBadRequest
		}
	case ActionNext:
		if _, err := session.Next(r.Context()); err != nil {
			view.notice, view.failed = noticeFor(session, err)
			status = http.StatusUnprocessableEntity
			if view.failed {
				s.logger.Error().Err(err).Msg("wizard submission failed")
				status = http.StatusBadGateway
			}
		}
	default:
		// Only an explicit next may advance, and so submit, the wizard.
		s.logger.Warn().Str("action", r.PostForm.Get("action")).Msg("wizard action rejected")
		status = http.StatusBadRequest
	}

	s.render(w, r, status, "index", &view)
}

func (s *Site) newSession() *wizard.Session {
	return wizard.NewSession(
		wizard.WithSubmitter(s.submitter),
		wizard.WithOpenDelay(s.cfg.OpenDelay),
	)
}

// render writes the full page, or only the modal when the request asks for
// the partial. A nil view renders the page without the modal.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, page string, view *wizardView) {
	data := map[string]any{}
	if view != nil {
		data["wizard"] = view.context(WizardPath, s.cfg.OpenDelay.Milliseconds())
	}

	name := page
	if r.Header.Get(PartialHeader) != "" {
		name = "wizard"
		if view == nil {
			w.WriteHeader(status)
			return
		}
	}

	out, err := s.engine.RenderTemplate(name, data)
	if err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(out))
}
