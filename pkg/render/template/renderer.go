package template

import (
	"io"
)

// TemplateRenderer executes a named template with data, returning the output
// and copying it to any writers given.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}
