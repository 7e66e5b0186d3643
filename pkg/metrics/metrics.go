// Package metrics records submission outcomes. The Prometheus recorder is
// registered on a caller-supplied registry; Nop is the default elsewhere.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

// Recorder observes completed submissions.
type Recorder interface {
	ObserveSubmission(service, outcome string, duration time.Duration)
}

// Nop discards every observation.
type Nop struct{}

// ObserveSubmission implements Recorder.
func (Nop) ObserveSubmission(string, string, time.Duration) {}

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	submissionsTotal   *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the submission collectors on reg. A nil reg
// falls back to the default registerer.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadform_submissions_total",
				Help: "Total number of lead submissions by service type and outcome",
			},
			[]string{"service", "outcome"},
		),
		submissionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "leadform_submission_duration_seconds",
				Help:    "Duration of lead submissions in seconds, compose and send included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service"},
		),
	}
}

// ObserveSubmission records one submission.
func (p *PrometheusRecorder) ObserveSubmission(service, outcome string, duration time.Duration) {
	if service == "" {
		service = "unknown"
	}
	p.submissionsTotal.WithLabelValues(service, outcome).Inc()
	p.submissionDuration.WithLabelValues(service).Observe(duration.Seconds())
}
