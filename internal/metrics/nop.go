// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/fitforge/fitforge/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used as the engine default.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SolverMetrics implementation

// RecordSolveDuration discards the solve duration metric.
func (n *NopMetrics) RecordSolveDuration(_ /* algorithm */ types.Algorithm, _ /* seconds */ float64) {
	// No-op
}

// RecordSolveOutcome discards the solve outcome metric.
func (n *NopMetrics) RecordSolveOutcome(_ /* algorithm */ types.Algorithm, _ /* outcome */ string) {
	// No-op
}

// RecordSolveScore discards the solve score metric.
func (n *NopMetrics) RecordSolveScore(_ /* algorithm */ types.Algorithm, _ /* score */ float64) {
	// No-op
}

// StateMetrics implementation

// RecordMutation discards the mutation metric.
func (n *NopMetrics) RecordMutation(_ /* op */ string, _ /* success */ bool) {
	// No-op
}

// RecordHistorySize discards the history size metric.
func (n *NopMetrics) RecordHistorySize(_ /* size */ int) {
	// No-op
}

// RecordStageTransition discards the stage transition metric.
func (n *NopMetrics) RecordStageTransition(_ /* from */, _ /* to */ types.Stage) {
	// No-op
}

// NotifierMetrics implementation

// RecordEventDropped discards the dropped event metric.
func (n *NopMetrics) RecordEventDropped(_ /* kind */ types.EventKind) {
	// No-op
}

// RecordSubscriberCount discards the subscriber count metric.
func (n *NopMetrics) RecordSubscriberCount(_ /* count */ int) {
	// No-op
}
