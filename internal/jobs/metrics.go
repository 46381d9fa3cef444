package jobs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSucceeded = "succeeded"
	outcomeRetried   = "retried"
	outcomeFailed    = "failed"
	outcomeDropped   = "dropped"
)

type Metrics struct {
	enqueuedTotal *prometheus.CounterVec
	total         *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics registers the job collectors with reg. A nil reg keeps them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		enqueuedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parcels_jobs_enqueued_total",
			Help: "Jobs accepted by the queue.",
		}, []string{"type"}),
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parcels_jobs_total",
			Help: "Job executions by outcome.",
		}, []string{"type", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parcels_job_duration_seconds",
			Help:    "Job handler duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
	}
}

func (m *Metrics) enqueued(t Type) {
	m.enqueuedTotal.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) outcome(t Type, outcome string) {
	m.total.WithLabelValues(string(t), outcome).Inc()
}

func (m *Metrics) observe(t Type, d time.Duration) {
	m.duration.WithLabelValues(string(t)).Observe(d.Seconds())
}
