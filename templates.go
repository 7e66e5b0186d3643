package leadform

import (
	"io/fs"

	"github.com/goliatone/go-leadform/pkg/leadmail"
	"github.com/goliatone/go-leadform/pkg/site"
)

// EmbeddedTemplates exposes the built-in landing page templates so callers
// can copy or extend them and pass the result to site.WithTemplates.
func EmbeddedTemplates() fs.FS {
	return site.Templates()
}

// EmbeddedEmailTemplates exposes the lead notification template for use with
// leadmail.WithTemplates.
func EmbeddedEmailTemplates() fs.FS {
	return leadmail.Templates()
}
