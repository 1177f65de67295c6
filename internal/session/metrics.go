package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchesTotal counts fresh searches (filter changes).
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_sessions_searches_total",
		Help: "Total number of fresh searches started by filter changes",
	})

	// pageLoadsTotal counts load-more page fetches.
	pageLoadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_sessions_page_loads_total",
		Help: "Total number of load-more page fetches",
	})

	// staleResponsesTotal counts responses discarded by the sequence token.
	staleResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_sessions_stale_responses_total",
		Help: "Total number of superseded responses discarded",
	})

	// resultCount tracks the distribution of total result counts per search.
	resultCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_sessions_result_count",
		Help:    "Total result count per fresh search",
		Buckets: []float64{0, 1, 5, 10, 24, 48, 96, 240},
	})
)

// MetricsRecorder provides a typed interface for recording session metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

func (m *MetricsRecorder) RecordSearch() {
	searchesTotal.Inc()
}

func (m *MetricsRecorder) RecordPageLoad() {
	pageLoadsTotal.Inc()
}

func (m *MetricsRecorder) RecordStaleResponse() {
	staleResponsesTotal.Inc()
}

func (m *MetricsRecorder) RecordResultCount(n int) {
	resultCount.Observe(float64(n))
}
