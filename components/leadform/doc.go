// Package leadform provides the mountable net/http handler that accepts a
// completed lead as JSON, validates it, and forwards it through a Deliverer.
//
// The handler only answers POST. Payloads are checked against the OpenAPI
// contract when one is configured and always against the wizard path rules;
// failures produce 400. A delivery error produces 500 with the message
// "Failed to send email". Responses are always the submission.Result JSON
// shape and carry an X-Request-ID header.
package leadform
