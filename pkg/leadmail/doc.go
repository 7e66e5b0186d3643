// Package leadmail turns a submitted lead into an HTML email and hands it to
// a mail transport.
//
// The Composer renders the message from an embedded pongo2 template. Every
// answer is stripped of markup before rendering and escaped again by the
// engine, so a lead cannot inject HTML into the notification. The Relay pairs
// a Composer with a mailer.Sender and is what the HTTP handler and the
// in-process web wizard call.
package leadmail
