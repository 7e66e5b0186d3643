// Package server assembles the leadform HTTP service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadform/components/leadform"
	"github.com/goliatone/go-leadform/internal/config"
	"github.com/goliatone/go-leadform/pkg/contract"
	"github.com/goliatone/go-leadform/pkg/leadmail"
	"github.com/goliatone/go-leadform/pkg/mailer"
	"github.com/goliatone/go-leadform/pkg/metrics"
	"github.com/goliatone/go-leadform/pkg/site"
)

// Routes owned by the server itself.
const (
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
	ContractPath = "/api/openapi.yaml"
)

// Server is the configured HTTP service.
type Server struct {
	cfg      config.Config
	logger   zerolog.Logger
	handler  http.Handler
	registry *prometheus.Registry
	sender   mailer.Sender
}

// Option customises New.
type Option func(*Server)

// WithSender replaces the sender chosen by mail.driver.
func WithSender(sender mailer.Sender) Option {
	return func(s *Server) { s.sender = sender }
}

// New wires the contract, relay, submission component and site onto one mux.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger, options ...Option) (*Server, error) {
	s := &Server{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(s.registry)

	c, err := contract.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	composer, err := leadmail.NewComposer(leadmail.WithBrand(cfg.Site.Brand))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if s.sender == nil {
		s.sender = senderFor(cfg.Mail, logger)
	}
	relay := leadmail.NewRelay(composer, s.sender, cfg.Mail.From, cfg.Mail.To,
		leadmail.WithLogger(logger),
		leadmail.WithRecorder(recorder),
	)

	mux := http.NewServeMux()
	component := leadform.New(
		leadform.WithContract(c),
		leadform.WithDeliverer(relay),
		leadform.WithLogger(logger),
		leadform.WithRecorder(recorder),
	)
	if _, err := component.RegisterRoutes(mux, ""); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	web, err := site.New(relay,
		site.WithConfig(site.Config{
			Brand:        cfg.Site.Brand,
			WhatsApp:     cfg.Site.WhatsApp,
			ThemeVariant: cfg.Site.ThemeVariant,
			OpenDelay:    cfg.Wizard.OpenDelay,
		}),
		site.WithTemplatesDir(cfg.Site.TemplatesDir),
		site.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if err := web.RegisterRoutes(mux); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	mux.Handle(ContractPath, contract.Handler())
	mux.Handle(MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	s.handler = withRequestID(withAccessLog(mux, logger))
	return s, nil
}

func senderFor(cfg config.MailConfig, logger zerolog.Logger) mailer.Sender {
	if cfg.Driver == config.DriverLog {
		return mailer.LogSender{Logger: logger}
	}
	return mailer.NewSMTPSender(cfg.SMTP())
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler { return s.handler }

// Registry returns the registry served on /metrics.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled, then
// drains in-flight requests within the shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return s.logger.WithContext(context.Background()) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("leadform listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Msg("leadform shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
