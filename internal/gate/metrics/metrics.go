package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the approval gate and batch processing.
type Metrics struct {
	// Decision outcomes by terminal state
	DecisionOutcome *prometheus.CounterVec

	// Generation backend latency, including failed calls
	GenerateLatency prometheus.Histogram

	// Batch items by per-item result
	BatchItems *prometheus.CounterVec
}

// New creates a Metrics instance with all gate metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remedia_decision_outcomes_total",
			Help: "Total decision outcomes by terminal state",
		}, []string{"outcome"}), // outcome: "approved", "approved_confirmed", "denied", "generation_failed", "input_rejected", "audit_failed"

		GenerateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "remedia_generation_duration_seconds",
			Help:    "Duration of generation backend calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		BatchItems: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remedia_batch_items_total",
			Help: "Total batch items by per-item result",
		}, []string{"result"}), // result: "approved", "denied", "failed"
	}
}

// IncrementOutcome records a terminal decision state.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveGenerateLatency records the duration of one generation call.
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}

// IncrementBatchItem records one processed batch item.
func (m *Metrics) IncrementBatchItem(result string) {
	if m != nil {
		m.BatchItems.WithLabelValues(result).Inc()
	}
}
