package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fitforge/fitforge/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solveDuration    *prometheus.HistogramVec
	solveOutcomes    *prometheus.CounterVec
	solveScore       *prometheus.GaugeVec
	mutations        *prometheus.CounterVec
	historySize      prometheus.Gauge
	stageTransitions *prometheus.CounterVec
	eventsDropped    *prometheus.CounterVec
	subscribers      prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "fitforge" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "fitforge"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Duration of solver runs in seconds by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10), // 0.5ms .. ~130s
		}, []string{"algorithm"})

		p.solveOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "runs_total",
			Help:      "Solver runs by algorithm and outcome (success,infeasible,canceled,error).",
		}, []string{"algorithm", "outcome"})

		p.solveScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "last_score",
			Help:      "Score of the latest accepted run by algorithm.",
		}, []string{"algorithm"})

		p.mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "state",
			Name:      "mutations_total",
			Help:      "Allocation, rejection and capacity mutations by op and result (applied,refused).",
		}, []string{"op", "result"})

		p.historySize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "state",
			Name:      "history_size",
			Help:      "Number of allocation sets in history.",
		})

		p.stageTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "state",
			Name:      "stage_transitions_total",
			Help:      "Lifecycle stage transitions.",
		}, []string{"from", "to"})

		p.eventsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "notifier",
			Name:      "events_dropped_total",
			Help:      "Events a slow channel subscriber missed, by kind.",
		}, []string{"kind"})

		p.subscribers = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "notifier",
			Name:      "subscribers",
			Help:      "Current number of subscriptions.",
		})

		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.solveOutcomes)
		p.reg.MustRegister(p.solveScore)
		p.reg.MustRegister(p.mutations)
		p.reg.MustRegister(p.historySize)
		p.reg.MustRegister(p.stageTransitions)
		p.reg.MustRegister(p.eventsDropped)
		p.reg.MustRegister(p.subscribers)
	})
}

// SolverMetrics implementation

// RecordSolveDuration observes a solver run duration.
func (p *PrometheusCollector) RecordSolveDuration(algorithm types.Algorithm, seconds float64) {
	p.ensureRegistered()
	p.solveDuration.WithLabelValues(algorithm.String()).Observe(seconds)
}

// RecordSolveOutcome counts a finished solver run.
func (p *PrometheusCollector) RecordSolveOutcome(algorithm types.Algorithm, outcome string) {
	p.ensureRegistered()
	p.solveOutcomes.WithLabelValues(algorithm.String(), outcome).Inc()
}

// RecordSolveScore sets the latest accepted score.
func (p *PrometheusCollector) RecordSolveScore(algorithm types.Algorithm, score float64) {
	p.ensureRegistered()
	p.solveScore.WithLabelValues(algorithm.String()).Set(score)
}

// StateMetrics implementation

// RecordMutation counts a mutation.
func (p *PrometheusCollector) RecordMutation(op string, success bool) {
	p.ensureRegistered()
	result := "refused"
	if success {
		result = "applied"
	}
	p.mutations.WithLabelValues(op, result).Inc()
}

// RecordHistorySize sets the history length.
func (p *PrometheusCollector) RecordHistorySize(size int) {
	p.ensureRegistered()
	p.historySize.Set(float64(size))
}

// RecordStageTransition counts a lifecycle transition.
func (p *PrometheusCollector) RecordStageTransition(from, to types.Stage) {
	p.ensureRegistered()
	p.stageTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// NotifierMetrics implementation

// RecordEventDropped counts a dropped event.
func (p *PrometheusCollector) RecordEventDropped(kind types.EventKind) {
	p.ensureRegistered()
	p.eventsDropped.WithLabelValues(kind.String()).Inc()
}

// RecordSubscriberCount sets the subscriber gauge.
func (p *PrometheusCollector) RecordSubscriberCount(count int) {
	p.ensureRegistered()
	p.subscribers.Set(float64(count))
}
