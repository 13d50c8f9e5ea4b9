package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus. Metric
// registration is deferred to first use so constructing the collector can
// never panic on duplicate registration in tests.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	publishes     *prometheus.CounterVec
	claimAttempts *prometheus.CounterVec
	claimWait     prometheus.Histogram
	waiters       prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements Collector.
var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector. reg defaults to
// prometheus.DefaultRegisterer and namespace to "jibriqueue".
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "jibriqueue"
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.publishes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "publishes_total",
			Help:      "Total worker state publishes by discoverability outcome.",
		}, []string{"available"})

		p.claimAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "claim_attempts_total",
			Help:      "Total pending-lock acquisition attempts by outcome.",
		}, []string{"acquired"})

		p.claimWait = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      "claim_wait_seconds",
			Help:      "Time for a ClaimNext call to resolve, in seconds.",
			Buckets:   []float64{0.005, 0.05, 0.25, 1, 5, 15, 60, 300},
		})

		p.waiters = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "waiters",
			Help:      "ClaimNext calls currently suspended waiting for an idle notification.",
		})

		p.reg.MustRegister(p.publishes, p.claimAttempts, p.claimWait, p.waiters)
	})
}

// RecordPublish counts a publish by discoverability outcome.
func (p *PrometheusCollector) RecordPublish(available bool) {
	p.ensureRegistered()
	p.publishes.WithLabelValues(boolLabel(available)).Inc()
}

// RecordClaimAttempt counts a pending-lock attempt by outcome.
func (p *PrometheusCollector) RecordClaimAttempt(acquired bool) {
	p.ensureRegistered()
	p.claimAttempts.WithLabelValues(boolLabel(acquired)).Inc()
}

// ObserveClaimWait records a resolved ClaimNext duration.
func (p *PrometheusCollector) ObserveClaimWait(seconds float64) {
	p.ensureRegistered()
	p.claimWait.Observe(seconds)
}

// AddWaiters adjusts the suspended-waiter gauge.
func (p *PrometheusCollector) AddWaiters(delta float64) {
	p.ensureRegistered()
	p.waiters.Add(delta)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
