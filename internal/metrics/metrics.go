package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AutomationRunsTotal tracks finished automation runs by outcome
	// (completed, failed, login_failed, error).
	AutomationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alleviate_automation_runs_total",
			Help: "Total number of browser automation runs by outcome.",
		},
		[]string{"outcome"},
	)

	// AutomationDuration measures end-to-end automation run duration.
	AutomationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alleviate_automation_duration_seconds",
			Help:    "Duration of browser automation runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 500ms → ~4m
		},
	)

	// BrowserSessionsActive tracks currently open browser sessions.
	BrowserSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alleviate_browser_sessions_active",
			Help: "Number of currently open headless browser sessions.",
		},
	)
)

// IncRun increments the automation run counter for the given outcome.
func IncRun(outcome string) {
	AutomationRunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRunDuration records elapsed time since start for one automation run.
func ObserveRunDuration(start time.Time) {
	AutomationDuration.Observe(time.Since(start).Seconds())
}
