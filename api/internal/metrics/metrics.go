package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// RequestsTotal counts /calculate responses by outcome: success, warning, rejected, failed.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calc_vision",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of analysis requests, labeled by outcome.",
	}, []string{"outcome"})

	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calc_vision",
		Subsystem: "api",
		Name:      "requests_in_flight",
		Help:      "Current number of analysis requests being processed.",
	})

	// InferenceDurationSeconds is time per model call, labeled by stage (classify, extract) and result.
	InferenceDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "calc_vision",
		Subsystem: "inference",
		Name:      "duration_seconds",
		Help:      "Time spent in one generative model call.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"stage", "result"})

	CategoriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calc_vision",
		Subsystem: "inference",
		Name:      "categories_total",
		Help:      "Images by detected content category.",
	}, []string{"category"})

	// ParseStrategyTotal counts which parser recovered the reply; "none" when all failed.
	ParseStrategyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calc_vision",
		Subsystem: "normalize",
		Name:      "parse_strategy_total",
		Help:      "Model replies by the parse strategy that succeeded.",
	}, []string{"strategy"})
)

// Register registers the collectors with the default registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			InFlight,
			InferenceDurationSeconds,
			CategoriesTotal,
			ParseStrategyTotal,
		)
	})
}

// ResultLabel maps an error to the "result" label value.
func ResultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
