package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/fitforge/fitforge/types"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordSolveOutcome(types.AlgorithmILP, "success")
	p.RecordSolveOutcome(types.AlgorithmILP, "success")
	p.RecordSolveOutcome(types.AlgorithmGS, "infeasible")
	p.RecordSolveScore(types.AlgorithmILP, 10)
	p.RecordSolveDuration(types.AlgorithmILP, 0.01)
	p.RecordMutation("set_allocation", true)
	p.RecordMutation("set_allocation", false)
	p.RecordHistorySize(4)
	p.RecordStageTransition(types.StageAwaitingInput, types.StageOperational)
	p.RecordEventDropped(types.EventAllocationChanged)
	p.RecordSubscriberCount(2)

	require.InDelta(t, 2.0, testutil.ToFloat64(p.solveOutcomes.WithLabelValues("ILP", "success")), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(p.solveOutcomes.WithLabelValues("GS", "infeasible")), 1e-9)
	require.InDelta(t, 10.0, testutil.ToFloat64(p.solveScore.WithLabelValues("ILP")), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(p.mutations.WithLabelValues("set_allocation", "refused")), 1e-9)
	require.InDelta(t, 4.0, testutil.ToFloat64(p.historySize), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(p.stageTransitions.WithLabelValues("Stage1", "Stage2")), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(p.eventsDropped.WithLabelValues("allocation_changed")), 1e-9)
	require.InDelta(t, 2.0, testutil.ToFloat64(p.subscribers), 1e-9)
	require.Equal(t, 1, testutil.CollectAndCount(p.solveDuration))
}

func TestPrometheusCollector_Defaults(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")
	require.Equal(t, "fitforge", p.namespace)

	p.RecordHistorySize(1)
	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
	for _, f := range families {
		require.Contains(t, f.GetName(), "fitforge_")
	}
}
