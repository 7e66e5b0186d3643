package leadform

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadform/pkg/contract"
	"github.com/goliatone/go-leadform/pkg/metrics"
	"github.com/goliatone/go-leadform/pkg/submission"
)

// DefaultMaxBodyBytes bounds the request body.
const DefaultMaxBodyBytes int64 = 64 << 10

// GuardFunc runs before the body is read. A non-nil error rejects the request
// with the error's StatusCode, or 403.
type GuardFunc func(r *http.Request) error

// Deliverer forwards a validated payload.
type Deliverer interface {
	Deliver(ctx context.Context, p submission.Payload) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, p submission.Payload) error

// Deliver implements Deliverer.
func (f DelivererFunc) Deliver(ctx context.Context, p submission.Payload) error {
	return f(ctx, p)
}

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	Deliverer    Deliverer
	Contract     *contract.Contract
	Logger       zerolog.Logger
	Recorder     metrics.Recorder
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    contract.SubmitPath,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       zerolog.Nop(),
		Recorder:     metrics.Nop{},
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = contract.SubmitPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Nop{}
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithDeliverer(d Deliverer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Deliverer = d
	}
}

// WithContract enables schema validation against c.
func WithContract(c *contract.Contract) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Contract = c
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithRecorder records rejected payloads. Delivery outcomes are recorded by
// the Deliverer.
func WithRecorder(recorder metrics.Recorder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Recorder = recorder
	}
}
