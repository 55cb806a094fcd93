package instrument

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

func TestCollector_Planner(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	p, err := dstarlite.New(5, 4, dstarlite.WithObserver(c))
	require.NoError(t, err)
	require.NoError(t, p.SetStart(0, 0))
	require.NoError(t, p.SetGoal(4, 3))
	_, err = p.Plan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(p.StepCount()), testutil.ToFloat64(c.pops))
	assert.Positive(t, testutil.ToFloat64(c.gUpdates))
	assert.Positive(t, testutil.ToFloat64(c.rhsUpdates))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.computations.WithLabelValues("plan", "reachable")))

	for y := 0; y < 4; y++ {
		require.NoError(t, p.AddObstacle(2, y))
	}
	_, err = p.Replan(context.Background(),
		gridgraph.Point{X: 2, Y: 0}, gridgraph.Point{X: 2, Y: 1}, gridgraph.Point{X: 2, Y: 2}, gridgraph.Point{X: 2, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.computations.WithLabelValues("replan", "unreachable")))

	want := `
# HELP dstarlite_computations_total Finished shortest-path computations by kind and result
# TYPE dstarlite_computations_total counter
dstarlite_computations_total{kind="plan",result="reachable"} 1
dstarlite_computations_total{kind="replan",result="unreachable"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "dstarlite_computations_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(c.steps))
}

func TestCollector_Executor(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	p, err := dstarlite.New(5, 3, dstarlite.WithObserver(c))
	require.NoError(t, err)
	require.NoError(t, p.SetStart(0, 1))
	require.NoError(t, p.SetGoal(4, 1))
	world := gridgraph.NewObstacleIndex([]gridgraph.Point{{X: 2, Y: 1}})
	e, err := executor.New(p, world, executor.WithEvents(c.ObserveEvent))
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, executor.ReachedGoal, res.Outcome)

	assert.Equal(t, float64(res.Moves), testutil.ToFloat64(c.actions.WithLabelValues("drove")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.discovered))
	assert.Equal(t, float64(res.Replans), testutil.ToFloat64(c.actions.WithLabelValues("replanned")))
}
