package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes recorded on GenerationsTotal.
const (
	OutcomeAI          = "ai"
	OutcomeBasic       = "basic"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizplan_generations_total",
			Help: "Total number of plan generation requests by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bizplan_generation_duration_seconds",
			Help:    "Duration of the model call during plan generation in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizplan_extractions_total",
			Help: "Total number of field extractions by matching strategy",
		},
		[]string{"strategy"},
	)

	SectionFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bizplan_section_fallbacks_total",
			Help: "Total number of fields filled from section-level provenance excerpts",
		},
	)

	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizplan_store_operations_total",
			Help: "Total number of plan store operations by result",
		},
		[]string{"op", "result"},
	)
)

// RecordGeneration counts one generation request and, for requests that
// reached the model, its duration.
func RecordGeneration(outcome string, elapsed time.Duration) {
	GenerationsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeAI || outcome == OutcomeFailed {
		GenerationDuration.Observe(elapsed.Seconds())
	}
}

// RecordExtractions adds per-strategy hit counts.
func RecordExtractions(byStrategy map[string]int) {
	for strategy, n := range byStrategy {
		ExtractionsTotal.WithLabelValues(strategy).Add(float64(n))
	}
}

// RecordSectionFallbacks adds n provenance-filled fields.
func RecordSectionFallbacks(n int) {
	if n > 0 {
		SectionFallbacksTotal.Add(float64(n))
	}
}

// RecordStoreOp counts a store operation. Not-found reads are reported as
// "miss" so they stay distinguishable from failures.
func RecordStoreOp(op string, err error, notFound bool) {
	result := "ok"
	switch {
	case notFound:
		result = "miss"
	case err != nil:
		result = "error"
	}
	StoreOperationsTotal.WithLabelValues(op, result).Inc()
}
