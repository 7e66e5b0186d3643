package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadform/components/leadform"
)

// withRequestID makes sure every request and response carries an id, so the
// submission component and the access log agree on it.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := leadform.RequestID(r)
		r.Header.Set(leadform.RequestIDHeader, id)
		w.Header().Set(leadform.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// withAccessLog writes one line per request and puts a request scoped logger
// on the context.
func withAccessLog(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		reqLogger := logger.With().Str("request_id", r.Header.Get(leadform.RequestIDHeader)).Logger()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r.WithContext(reqLogger.WithContext(r.Context())))

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		event := reqLogger.Info()
		if status >= http.StatusInternalServerError {
			event = reqLogger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(started)).
			Msg("request")
	})
}
