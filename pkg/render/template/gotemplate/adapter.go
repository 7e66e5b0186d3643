package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-leadform/pkg/render/template"
)

// Extension is appended to template names that do not carry it.
const Extension = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir string
	files   fs.FS
	filters map[string]pongo2.FilterFunction
	globals pongo2.Context
}

// WithBaseDir loads templates from a directory on disk. Templates found
// there shadow those from WithFS, so a site can override single pages.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically an embed.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithFilter registers a pongo2 filter. Filters are process wide in pongo2;
// the first registration of a name wins.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction)
		}
		cfg.filters[name] = fn
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(pongo2.Context, len(data))
		}
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// Engine renders templates from a pongo2 template set. Output is
// auto-escaped and compiled templates are cached by the set.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var layers layeredFS
	if cfg.baseDir != "" {
		info, err := os.Stat(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: base dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("gotemplate: base dir %q is not a directory", cfg.baseDir)
		}
		layers = append(layers, os.DirFS(cfg.baseDir))
	}
	if cfg.files != nil {
		layers = append(layers, cfg.files)
	}

	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	set := pongo2.NewSet("leadform", pongo2.NewFSLoader(layers))
	if len(cfg.globals) > 0 {
		set.Globals.Update(cfg.globals)
	}
	return &Engine{set: set}, nil
}

// RenderTemplate executes the named template, appending Extension when
// missing, and copies the output to every non-nil writer in out.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}

	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}
	rendered, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", name, err)
	}

	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// layeredFS opens a name from the first layer that has it. Resolving
// through one loader keeps template names relative, so includes from an
// override still reach the layers below it.
type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
	for _, layer := range l {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
