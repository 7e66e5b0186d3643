// Package contract loads the OpenAPI description of the submission endpoint
// and validates incoming payloads against it.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-leadform/pkg/submission"
)

// SubmitPath is the route the contract describes.
const SubmitPath = "/api/submit-form"

//go:embed openapi.yaml
var document []byte

// ErrInvalidPayload wraps every schema violation.
var ErrInvalidPayload = errors.New("contract: payload does not match schema")

// FieldError reports the payload property that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidPayload, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidPayload, e.Field, e.Reason)
}

// Is matches ErrInvalidPayload.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidPayload
}

// Contract is a loaded and validated submission contract.
type Contract struct {
	doc     *openapi3.T
	payload *openapi3.Schema
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	item := doc.Paths.Value(SubmitPath)
	if item == nil || item.Post == nil || item.Post.RequestBody == nil || item.Post.RequestBody.Value == nil {
		return nil, fmt.Errorf("contract: %s has no POST request body", SubmitPath)
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: %s has no JSON schema", SubmitPath)
	}

	return &Contract{doc: doc, payload: media.Schema.Value}, nil
}

// ValidatePayload checks p against the request schema. Failures are
// *FieldError values matching ErrInvalidPayload.
func (c *Contract) ValidatePayload(p submission.Payload) error {
	err := c.payload.VisitJSON(p.Map())
	if err == nil {
		return nil
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return &FieldError{
			Field:  strings.Join(schemaErr.JSONPointer(), "."),
			Reason: schemaErr.Reason,
		}
	}
	return &FieldError{Reason: err.Error()}
}

// Enum returns the non-empty enum values of a payload property.
func (c *Contract) Enum(field string) []string {
	prop, ok := c.payload.Properties[field]
	if !ok || prop == nil || prop.Value == nil {
		return nil
	}
	var out []string
	for _, value := range prop.Value.Enum {
		if s, ok := value.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Document returns the raw YAML document.
func Document() []byte {
	return append([]byte(nil), document...)
}

// Handler serves the raw document.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(document)
	})
}
