package site

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeName is the registered brand manifest.
const ThemeName = "braga"

// BrandManifest returns the brand colours as a go-theme manifest. The "dark"
// variant only overrides surface tokens.
func BrandManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":       "#C4F82A",
			"primary-hover": "#B5E625",
			"accent":        "#6366F1",
			"whatsapp":      "#25D366",
			"surface":       "#FFFFFF",
			"page":          "#0A0A0A",
			"text":          "#111827",
			"muted":         "#4B5563",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "site.css",
				"script":     "wizard.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#171717",
					"text":    "#F5F5F5",
					"muted":   "#A3A3A3",
				},
			},
		},
	}
}

// ThemeConfig resolves manifest tokens for variant into renderer settings.
// An unknown variant is an error; an empty one selects the base tokens.
func ThemeConfig(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, fmt.Errorf("site: theme manifest is required")
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("site: register theme: %w", err)
	}

	tokens := copyStringMap(manifest.Tokens)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	variant = strings.TrimSpace(variant)
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("site: theme %q has no variant %q", manifest.Name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   manifest.Name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
		AssetURL: func(key string) string {
			name, ok := files[key]
			if !ok || name == "" {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + name
		},
	}, nil
}

// cssVarsStyle renders vars as a sorted declaration list.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
