// Package metrics provides Prometheus metrics for the season simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	SideHome = "home"
	SideAway = "away"

	CardYellow       = "yellow"
	CardSecondYellow = "second_yellow"
	CardStraightRed  = "straight_red"

	OutcomeImproved  = "improved"
	OutcomeDeclined  = "declined"
	OutcomeUnchanged = "unchanged"
	OutcomeRetired   = "retired"
)

// Manager owns every Prometheus collector of the simulator.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Match metrics
	matchesSimulated  prometheus.Counter
	goals             *prometheus.CounterVec
	cards             *prometheus.CounterVec
	injuries          prometheus.Counter
	varDisallowed     prometheus.Counter
	simulationLatency prometheus.Histogram

	// Matchday orchestration
	matchdayDuration  prometheus.Histogram
	fixturesDuplicate prometheus.Counter
	fixturesRejected  prometheus.Counter
	standingsTeams    prometheus.Gauge

	// Development
	playersDeveloped *prometheus.CounterVec
	youthGenerated   prometheus.Counter

	// Queue and workers
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec
	workerCount        prometheus.Gauge
	workerErrors       prometheus.Counter

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// MatchOutcome summarises one simulated fixture for recording.
type MatchOutcome struct {
	HomeGoals     int
	AwayGoals     int
	Yellow        int
	SecondYellow  int
	StraightRed   int
	Injuries      int
	VARDisallowed int
	LatencyMs     float64
}

// DevelopmentOutcome summarises one season-end pass.
type DevelopmentOutcome struct {
	Improved  int
	Declined  int
	Unchanged int
	Retired   int
	Youth     int
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pcf",
		subsystem:        "sim",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.matchesSimulated = m.counter("matches_simulated_total", "Total number of fixtures simulated")
	m.goals = m.counterVec("goals_total", "Goals that stood after VAR, by side", "side")
	m.cards = m.counterVec("cards_total", "Cards shown, by kind", "kind")
	m.injuries = m.counter("injuries_total", "In-match injuries")
	m.varDisallowed = m.counter("var_disallowed_total", "Goals disallowed after VAR review")
	m.simulationLatency = m.histogram("simulation_latency_milliseconds", "Time spent simulating one fixture")

	m.matchdayDuration = m.histogram("matchday_duration_milliseconds", "Wall time to play a full matchday")
	m.fixturesDuplicate = m.counter("fixtures_duplicate_total", "Fixtures rejected because they were already played")
	m.fixturesRejected = m.counter("fixtures_rejected_total", "Fixtures rejected by validation")
	m.standingsTeams = m.gauge("standings_teams", "Teams present in the league table")

	m.playersDeveloped = m.counterVec("players_developed_total", "Players processed at season end, by outcome", "outcome")
	m.youthGenerated = m.counter("youth_generated_total", "Academy players generated")

	m.queueSize = m.gauge("queue_size", "Fixtures waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum fixtures the queue holds")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Fixtures enqueued")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Failed enqueues, by reason", "reason")
	m.workerCount = m.gauge("worker_count", "Simulation workers running")
	m.workerErrors = m.counter("worker_errors_total", "Fixtures a worker failed to record")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Live goroutines")
}

// ObserveMatch records one simulated fixture.
func (m *Manager) ObserveMatch(o MatchOutcome) { //nolint:gocritic // hugeParam: small summary struct
	m.matchesSimulated.Inc()
	m.goals.WithLabelValues(SideHome).Add(float64(o.HomeGoals))
	m.goals.WithLabelValues(SideAway).Add(float64(o.AwayGoals))
	m.cards.WithLabelValues(CardYellow).Add(float64(o.Yellow))
	m.cards.WithLabelValues(CardSecondYellow).Add(float64(o.SecondYellow))
	m.cards.WithLabelValues(CardStraightRed).Add(float64(o.StraightRed))
	m.injuries.Add(float64(o.Injuries))
	m.varDisallowed.Add(float64(o.VARDisallowed))
	m.simulationLatency.Observe(o.LatencyMs)
}

// ObserveDevelopment records one season-end pass.
func (m *Manager) ObserveDevelopment(o DevelopmentOutcome) {
	m.playersDeveloped.WithLabelValues(OutcomeImproved).Add(float64(o.Improved))
	m.playersDeveloped.WithLabelValues(OutcomeDeclined).Add(float64(o.Declined))
	m.playersDeveloped.WithLabelValues(OutcomeUnchanged).Add(float64(o.Unchanged))
	m.playersDeveloped.WithLabelValues(OutcomeRetired).Add(float64(o.Retired))
	m.youthGenerated.Add(float64(o.Youth))
}

// RecordMatch records a simulated fixture on the global manager.
func RecordMatch(o MatchOutcome) { globalManager.ObserveMatch(o) } //nolint:gocritic // hugeParam: small summary struct

// RecordDevelopment records a season-end pass on the global manager.
func RecordDevelopment(o DevelopmentOutcome) { globalManager.ObserveDevelopment(o) }

// RecordMatchdayDuration records the wall time of a matchday in milliseconds.
func RecordMatchdayDuration(ms float64) { globalManager.matchdayDuration.Observe(ms) }

// RecordFixtureDuplicate increments the duplicate fixtures counter.
func RecordFixtureDuplicate() { globalManager.fixturesDuplicate.Inc() }

// RecordFixtureRejected increments the rejected fixtures counter.
func RecordFixtureRejected() { globalManager.fixturesRejected.Inc() }

// UpdateStandingsTeams sets the number of teams in the table.
func UpdateStandingsTeams(n int) { globalManager.standingsTeams.Set(float64(n)) }

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// RecordQueueEnqueue increments the enqueued counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueEnqueueError increments failed enqueues for reason.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the number of running workers.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordErrorByComponent increments errors for a component and error type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
