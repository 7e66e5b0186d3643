package leadform

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-leadform/pkg/contract"
	"github.com/goliatone/go-leadform/pkg/metrics"
	"github.com/goliatone/go-leadform/pkg/submission"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

var errNoDeliverer = errors.New("leadform: no deliverer configured")

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds the submission handler with default options plus any
// overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		id := RequestID(r)
		w.Header().Set(RequestIDHeader, id)
		logger := opts.Logger.With().Str("request_id", id).Logger()

		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				logger.Warn().Err(err).Msg("submission rejected by guard")
				writeGuardError(w, err)
				return
			}
		}

		started := time.Now()
		payload, err := decodePayload(w, r, opts.MaxBodyBytes)
		if err != nil {
			logger.Warn().Err(err).Msg("malformed submission")
			opts.Recorder.ObserveSubmission("", metrics.OutcomeInvalid, time.Since(started))
			writeResult(w, http.StatusBadRequest, submission.Failed(submission.MessageInvalid))
			return
		}

		payload = payload.Normalized()
		if field, err := validate(opts.Contract, payload); err != nil {
			logger.Warn().Err(err).Str("field", field).Msg("invalid submission")
			opts.Recorder.ObserveSubmission(serviceLabel(payload.ServiceType), metrics.OutcomeInvalid, time.Since(started))
			result := submission.Failed(submission.MessageInvalid)
			result.Field = field
			writeResult(w, http.StatusBadRequest, result)
			return
		}

		ctx := logger.WithContext(r.Context())
		if opts.Deliverer == nil {
			err = errNoDeliverer
		} else {
			err = opts.Deliverer.Deliver(ctx, payload)
		}
		if err != nil {
			logger.Error().Err(err).Str("service", payload.ServiceType).Msg("submission delivery failed")
			writeResult(w, http.StatusInternalServerError, submission.Failed(submission.MessageDeliveryFailed))
			return
		}

		writeResult(w, http.StatusOK, submission.Succeeded())
	})
}

// RequestID returns the inbound X-Request-ID or a fresh UUID.
func RequestID(r *http.Request) string {
	if r != nil {
		if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" && len(id) <= 128 {
			return id
		}
	}
	return uuid.NewString()
}

func decodePayload(w http.ResponseWriter, r *http.Request, limit int64) (submission.Payload, error) {
	var payload submission.Payload
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(&payload); err != nil {
		return submission.Payload{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return submission.Payload{}, errors.New("leadform: trailing data after payload")
	}
	return payload, nil
}

// serviceLabel keeps metric labels to the known service types; anything a
// client made up is recorded as unknown.
func serviceLabel(service string) string {
	if wizard.ServiceType(service).Valid() {
		return service
	}
	return ""
}

// validate returns the offending field name alongside the error.
func validate(c *contract.Contract, p submission.Payload) (string, error) {
	if c != nil {
		if err := c.ValidatePayload(p); err != nil {
			var fieldErr *contract.FieldError
			if errors.As(err, &fieldErr) {
				return fieldErr.Field, err
			}
			return "", err
		}
	}
	if err := p.Validate(); err != nil {
		var vErr *wizard.ValidationError
		if errors.As(err, &vErr) {
			return vErr.Field, err
		}
		return "", err
	}
	return "", nil
}

func writeResult(w http.ResponseWriter, status int, result submission.Result) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(result)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
