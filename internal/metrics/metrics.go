// Package metrics provides the centralized Prometheus metrics registry for the scanner.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RefreshCyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "refresh_cycles_total",
		Help:      "Total number of refresh cycles started",
	})
	RefreshCycleErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "refresh_cycle_errors_total",
		Help:      "Total number of refresh cycles that failed",
	})
	QuotesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "quotes_processed_total",
		Help:      "Total number of bookmaker quotes fed to the engine",
	})
	PropsEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "props_evaluated_total",
		Help:      "Total number of player prop groups evaluated",
	})
	PropsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "props_skipped_total",
		Help:      "Total number of player prop groups skipped, by reason",
	}, []string{"reason"})
	OpportunitiesFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "opportunities_found_total",
		Help:      "Total number of positive EV opportunities that passed filtering",
	})
	BetsInsertedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "bets_inserted_total",
		Help:      "Total number of scored bets persisted",
	})
	BetsDeactivatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "bets_deactivated_total",
		Help:      "Total number of bets deactivated as commenced or stale",
	})
)

// Gauge metrics
var (
	ActiveBets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "active_bets",
		Help:      "Number of currently active stored bets",
	})
	OddsAPIRequestsRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "odds_api_requests_remaining",
		Help:      "Request quota remaining on the odds provider account",
	})
	LastCycleTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "last_cycle_timestamp_seconds",
		Help:      "Unix timestamp of the last completed refresh cycle",
	})
)

// Histogram metrics
var (
	RefreshCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "refresh_cycle_duration_seconds",
		Help:      "Duration of a full refresh cycle in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
	EventOddsFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "event_odds_fetch_duration_seconds",
		Help:      "Duration of a single event odds fetch in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RefreshCyclesTotal)
		registry.MustRegister(RefreshCycleErrorsTotal)
		registry.MustRegister(QuotesProcessedTotal)
		registry.MustRegister(PropsEvaluatedTotal)
		registry.MustRegister(PropsSkippedTotal)
		registry.MustRegister(OpportunitiesFoundTotal)
		registry.MustRegister(BetsInsertedTotal)
		registry.MustRegister(BetsDeactivatedTotal)

		// Register gauge metrics
		registry.MustRegister(ActiveBets)
		registry.MustRegister(OddsAPIRequestsRemaining)
		registry.MustRegister(LastCycleTimestamp)

		// Register histogram metrics
		registry.MustRegister(RefreshCycleDuration)
		registry.MustRegister(EventOddsFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCycleStart records the beginning of a refresh cycle.
func RecordCycleStart() {
	RefreshCyclesTotal.Inc()
}

// RecordCycleComplete records a finished refresh cycle.
func RecordCycleComplete(durationSeconds float64, timestampSeconds float64) {
	RefreshCycleDuration.Observe(durationSeconds)
	LastCycleTimestamp.Set(timestampSeconds)
}

// RecordCycleError records a failed refresh cycle.
func RecordCycleError() {
	RefreshCycleErrorsTotal.Inc()
}

// RecordPropsSkipped records skipped prop groups by reason.
func RecordPropsSkipped(reason string, count int) {
	PropsSkippedTotal.WithLabelValues(reason).Add(float64(count))
}

// UpdateQuota records the provider quota remaining.
func UpdateQuota(remaining float64) {
	OddsAPIRequestsRemaining.Set(remaining)
}
