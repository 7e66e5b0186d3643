// Package site serves the landing page and the lead wizard modal.
//
// Pages are rendered server-side from embedded pongo2 templates. The wizard
// keeps no server state: every answer, the active step and the per-method
// contact drafts travel in hidden form fields, and POST /wizard restores a
// wizard.Session from them, applies one action and renders the next modal.
// The bundled script opens the modal after the configured delay, swaps the
// modal in place, and disables the action button while a submission is in
// flight. Without the script the same form works as plain POSTs.
package site
