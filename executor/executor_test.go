package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

func planner(t *testing.T, w, h int, conn gridgraph.Connectivity, start, goal gridgraph.Point) *dstarlite.Planner {
	t.Helper()
	p, err := dstarlite.New(w, h, dstarlite.WithConnectivity(conn))
	require.NoError(t, err)
	require.NoError(t, p.SetStart(start.X, start.Y))
	require.NoError(t, p.SetGoal(goal.X, goal.Y))

	return p
}

// assertWalk checks that trace is a chain of adjacent free cells.
func assertWalk(t *testing.T, p *dstarlite.Planner, world *gridgraph.ObstacleIndex, trace []gridgraph.Point) {
	t.Helper()
	for i, c := range trace {
		assert.False(t, world.Contains(c), "robot entered obstacle %v", c)
		if i > 0 {
			assert.True(t, p.Grid().Adjacent(trace[i-1], c), "jump %v -> %v", trace[i-1], c)
		}
	}
}

func TestRun_OpenGrid(t *testing.T) {
	p := planner(t, 5, 4, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 4, Y: 3})
	world := gridgraph.NewObstacleIndex(nil)
	e, err := executor.New(p, world)
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, executor.ReachedGoal, res.Outcome)
	assert.Equal(t, 7, res.Moves)
	assert.Zero(t, res.Replans)
	require.Len(t, res.Trace, 8)
	assert.Equal(t, gridgraph.Point{X: 4, Y: 3}, res.Trace[7])
	assert.Equal(t, executor.Stop, res.Commands[len(res.Commands)-1])
	assert.Equal(t, dstarlite.Done, p.State())
	assertWalk(t, p, world, res.Trace)
}

func TestRun_Commands(t *testing.T) {
	p := planner(t, 3, 1, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 2, Y: 0})
	e, err := executor.New(p, gridgraph.NewObstacleIndex(nil),
		executor.WithHeading(executor.North), executor.WithFourNeighborOnly())
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []executor.Command{executor.TurnR90, executor.Drive, executor.Drive, executor.Stop}, res.Commands)
	assert.Equal(t, executor.East, res.Heading)
}

func TestRun_HiddenWallWithGap(t *testing.T) {
	p := planner(t, 7, 5, gridgraph.Conn8, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 6, Y: 0})
	hidden := []gridgraph.Point{{X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}}
	world := gridgraph.NewObstacleIndex(hidden)

	var events []executor.Event
	e, err := executor.New(p, world, executor.WithEvents(func(ev executor.Event) { events = append(events, ev) }))
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, executor.ReachedGoal, res.Outcome)
	assert.Positive(t, res.Replans)
	assert.ElementsMatch(t, hidden, res.Discovered)
	assert.ElementsMatch(t, hidden, p.Obstacles())
	assert.Contains(t, res.Trace, gridgraph.Point{X: 3, Y: 4})
	assertWalk(t, p, world, res.Trace)

	kinds := map[executor.EventKind]int{}
	for _, ev := range events {
		kinds[ev.Kind]++
	}
	assert.Equal(t, res.Moves, kinds[executor.Drove])
	assert.Equal(t, res.Replans, kinds[executor.Replanned])
}

func TestRun_HiddenFullWall(t *testing.T) {
	p := planner(t, 5, 3, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 1}, gridgraph.Point{X: 4, Y: 1})
	world := gridgraph.NewObstacleIndex([]gridgraph.Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}})
	e, err := executor.New(p, world, executor.WithSensorRange(1))
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, executor.NoPath, res.Outcome)
	assert.False(t, p.IsPlanReady())
	assert.Equal(t, executor.Stop, res.Commands[len(res.Commands)-1])
	assertWalk(t, p, world, res.Trace)
}

func TestNew_Errors(t *testing.T) {
	p := planner(t, 3, 3, gridgraph.Conn8, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 2, Y: 2})
	world := gridgraph.NewObstacleIndex(nil)

	_, err := executor.New(p, world, executor.WithFourNeighborOnly())
	assert.ErrorIs(t, err, executor.ErrIncompatible)
	_, err = executor.New(p, world, executor.WithSensorRange(0))
	assert.ErrorIs(t, err, executor.ErrBadOption)
	_, err = executor.New(p, world, executor.WithStepDelay(-1))
	assert.ErrorIs(t, err, executor.ErrBadOption)
}

func TestRun_DriverError(t *testing.T) {
	p := planner(t, 3, 3, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 2, Y: 2})
	lost := errors.New("link lost")
	drives := 0
	driver := executor.DriverFunc(func(_ context.Context, cmd executor.Command) error {
		if cmd == executor.Drive {
			drives++
			if drives == 2 {
				return lost
			}
		}
		return nil
	})
	e, err := executor.New(p, gridgraph.NewObstacleIndex(nil), executor.WithDriver(driver))
	require.NoError(t, err)

	res, err := e.Run(context.Background())
	require.ErrorIs(t, err, lost)
	assert.Equal(t, 1, res.Moves)
}

func TestRun_Cancelled(t *testing.T) {
	p := planner(t, 4, 4, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 3, Y: 3})
	ctx, cancel := context.WithCancel(context.Background())
	e, err := executor.New(p, gridgraph.NewObstacleIndex(nil), executor.WithEvents(func(ev executor.Event) {
		if ev.Kind == executor.Drove {
			cancel()
		}
	}))
	require.NoError(t, err)

	_, err = e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// countingPlanner counts Plan calls on the wrapped planner.
type countingPlanner struct {
	*dstarlite.Planner
	plans int
}

func (c *countingPlanner) Plan(ctx context.Context) (bool, error) {
	c.plans++
	return c.Planner.Plan(ctx)
}

func TestRun_PlansOnlyWithoutSearch(t *testing.T) {
	ctx := context.Background()

	p := planner(t, 3, 3, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 1}, gridgraph.Point{X: 2, Y: 1})
	for y := 0; y < 3; y++ {
		require.NoError(t, p.AddObstacle(1, y))
	}
	ok, err := p.Plan(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	cp := &countingPlanner{Planner: p}
	e, err := executor.New(cp, gridgraph.NewObstacleIndex(nil))
	require.NoError(t, err)
	res, err := e.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, executor.NoPath, res.Outcome)
	assert.Zero(t, cp.plans, "converged unreachable search was recomputed")

	fresh := &countingPlanner{Planner: planner(t, 3, 1, gridgraph.Conn4, gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 2, Y: 0})}
	e, err = executor.New(fresh, gridgraph.NewObstacleIndex(nil))
	require.NoError(t, err)
	res, err = e.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, executor.ReachedGoal, res.Outcome)
	assert.Equal(t, 1, fresh.plans)
}
