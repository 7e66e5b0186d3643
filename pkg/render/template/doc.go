// Package template defines the engine contract shared by the site pages and
// the lead email. The pongo2-backed implementation lives in the gotemplate
// subpackage.
package template
