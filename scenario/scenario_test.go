package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/scenario"
)

const corridor = `
grid {
  width        = var.width
  height       = 4
  connectivity = 8
}

start = [0, 0]
goal  = [var.width - 1, 3]

obstacle "wall" {
  from = [2, 0]
  to   = [2, 2]
}

obstacle "crates" {
  cells  = [[4, 1], [4, 2], [2, 1]]
  hidden = true
}

robot {
  sensor_range = 2
  heading      = "e"
  step_delay   = "5ms"
}
`

func TestParse(t *testing.T) {
	s, err := scenario.Parse(context.Background(), []byte(corridor), "corridor.hcl", map[string]string{"width": "6"})
	require.NoError(t, err)

	assert.Equal(t, "corridor", s.Name)
	assert.Equal(t, 6, s.Width)
	assert.Equal(t, 4, s.Height)
	assert.Equal(t, gridgraph.Conn8, s.Connectivity)
	assert.True(t, s.Heuristic)
	assert.Equal(t, gridgraph.Point{X: 0, Y: 0}, s.Start)
	assert.Equal(t, gridgraph.Point{X: 5, Y: 3}, s.Goal)
	assert.Equal(t, []gridgraph.Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}, s.Known)
	assert.Equal(t, []gridgraph.Point{{X: 4, Y: 1}, {X: 4, Y: 2}}, s.Hidden, "hidden cells already known are dropped")
	assert.Equal(t, scenario.Robot{SensorRange: 2, Heading: executor.East, StepDelay: 5 * time.Millisecond}, s.Robot)
	assert.Equal(t, 5, s.World().Len())
}

func TestParse_Defaults(t *testing.T) {
	src := `
grid {
  width  = 3
  height = 3
}
start = [0, 0]
goal  = [2, 2]
`
	s, err := scenario.Parse(context.Background(), []byte(src), "min.hcl", nil)
	require.NoError(t, err)
	assert.Equal(t, gridgraph.Conn4, s.Connectivity)
	assert.Equal(t, scenario.Robot{SensorRange: 1, Heading: executor.North}, s.Robot)
	assert.Empty(t, s.Known)
	assert.Empty(t, s.Hidden)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]string
		err  error
	}{
		{"Syntax", `grid {`, nil, scenario.ErrParse},
		{"MissingVar", `
grid {
  width  = var.width
  height = 3
}
start = [0, 0]
goal  = [1, 1]
`, nil, scenario.ErrParse},
		{"NoGrid", `
start = [0, 0]
goal  = [1, 1]
`, nil, scenario.ErrInvalid},
		{"GoalOutside", `
grid {
  width  = 3
  height = 3
}
start = [0, 0]
goal  = [3, 0]
`, nil, scenario.ErrInvalid},
		{"BadConnectivity", `
grid {
  width        = 3
  height       = 3
  connectivity = 6
}
start = [0, 0]
goal  = [1, 1]
`, nil, scenario.ErrInvalid},
		{"ObstacleOnGoal", `
grid {
  width  = 3
  height = 3
}
start = [0, 0]
goal  = [1, 1]
obstacle "x" {
  cells = [[1, 1]]
}
`, nil, scenario.ErrInvalid},
		{"BadHeading", `
grid {
  width  = 3
  height = 3
}
start = [0, 0]
goal  = [1, 1]
robot {
  heading = "up"
}
`, nil, scenario.ErrInvalid},
		{"BadDelay", `
grid {
  width  = 3
  height = 3
}
start = [0, 0]
goal  = [1, 1]
robot {
  step_delay = "soon"
}
`, nil, scenario.ErrInvalid},
		{"ShortPoint", `
grid {
  width  = 3
  height = 3
}
start = [0]
goal  = [1, 1]
`, nil, scenario.ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse(context.Background(), []byte(tc.src), tc.name+".hcl", tc.vars)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoad_PlannerAndExecutor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.hcl")
	require.NoError(t, os.WriteFile(path, []byte(corridor), 0o600))

	s, err := scenario.Load(context.Background(), path, map[string]string{"width": "6"})
	require.NoError(t, err)

	p, err := s.Planner()
	require.NoError(t, err)
	assert.Equal(t, s.Known, p.Obstacles())
	start, _ := p.Start()
	assert.Equal(t, s.Start, start)

	e, err := executor.New(p, s.World(), append(s.ExecutorOptions(), executor.WithStepDelay(0))...)
	require.NoError(t, err)
	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, executor.ReachedGoal, res.Outcome)
	assert.Equal(t, s.Goal, res.Trace[len(res.Trace)-1])

	_, err = scenario.Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
