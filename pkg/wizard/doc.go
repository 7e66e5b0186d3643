// Package wizard models the lead-capture flow as a small state machine.
//
// The flow is a fixed graph of string-tagged steps. Next and Back are pure
// functions of the current step and the collected AnswerSet, so the graph can
// be exercised without any rendering layer. Session layers the interactive
// concerns on top: visibility, per-method contact drafts, and the single
// in-flight submission.
//
//	service-type -> videography-type -> final-product -> budget
//	             -> photography-type ------------------> budget
//	budget -> contact-method -> contact-details -> thank-you
package wizard
