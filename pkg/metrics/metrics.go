package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "tidecast",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0},
		},
		[]string{"verb", "path"},
	)

	providerAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "provider_attempts_total",
			Subsystem: "tidecast",
			Help:      "Tide provider fetch attempts by outcome.",
		},
		[]string{"provider", "outcome"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "cache_lookups_total",
			Subsystem: "tidecast",
			Help:      "Tide cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	approximations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:      "approximations_total",
			Subsystem: "tidecast",
			Help:      "Queries answered by the analytic approximation fallback.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		providerAttempts,
		cacheLookups,
		approximations,
	)
}

// Provider fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

func ObserveProviderAttempt(provider, outcome string) {
	providerAttempts.With(prometheus.Labels{"provider": provider, "outcome": outcome}).Inc()
}

func ObserveCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func ObserveApproximation() {
	approximations.Inc()
}

// LatencyHandler records request latency for every request passing
// through it.
func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		defer func() {
			requestLatency.With(prometheus.Labels{
				"verb": r.Method,
				"path": path,
			}).Observe(time.Since(t).Seconds())
		}()

		next.ServeHTTP(w, r)
	})
}
