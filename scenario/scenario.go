package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/internal/ctxlog"
)

var (
	// ErrParse indicates HCL syntax or decoding diagnostics.
	ErrParse = errors.New("scenario: parse error")

	// ErrInvalid indicates a well-formed file describing an impossible
	// scenario, e.g. a goal outside the grid.
	ErrInvalid = errors.New("scenario: invalid scenario")
)

// fileRoot mirrors the top level of a scenario file.
type fileRoot struct {
	Grid      *gridBlock       `hcl:"grid,block"`
	Start     []int            `hcl:"start"`
	Goal      []int            `hcl:"goal"`
	Obstacles []*obstacleBlock `hcl:"obstacle,block"`
	Robot     *robotBlock      `hcl:"robot,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type gridBlock struct {
	Width        int   `hcl:"width"`
	Height       int   `hcl:"height"`
	Connectivity *int  `hcl:"connectivity,optional"`
	Heuristic    *bool `hcl:"heuristic,optional"`
}

type obstacleBlock struct {
	Name   string  `hcl:"name,label"`
	Cells  [][]int `hcl:"cells,optional"`
	From   []int   `hcl:"from,optional"`
	To     []int   `hcl:"to,optional"`
	Hidden bool    `hcl:"hidden,optional"`
}

type robotBlock struct {
	SensorRange *int    `hcl:"sensor_range,optional"`
	Heading     *string `hcl:"heading,optional"`
	StepDelay   *string `hcl:"step_delay,optional"`
}

// Robot holds executor settings.
type Robot struct {
	SensorRange int
	Heading     executor.Heading
	StepDelay   time.Duration
}

// Scenario is a validated planning scenario.
type Scenario struct {
	Name          string
	Width, Height int
	Connectivity  gridgraph.Connectivity
	Heuristic     bool
	Start, Goal   gridgraph.Point
	Known         []gridgraph.Point // row-major, deduplicated
	Hidden        []gridgraph.Point // row-major, deduplicated, disjoint from Known
	Robot         Robot
}

// Load reads and validates the scenario file at path.
func Load(ctx context.Context, path string, vars map[string]string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	return Parse(ctx, src, path, vars)
}

// Parse decodes scenario source. filename is used in diagnostics and as the
// scenario name.
func Parse(ctx context.Context, src []byte, filename string, vars map[string]string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx).With("scenario", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}
	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(vars), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}
	if attrs, _ := root.Remain.JustAttributes(); len(attrs) > 0 {
		names := make([]string, 0, len(attrs))
		for n := range attrs {
			names = append(names, n)
		}
		sort.Strings(names)
		logger.Warn("ignoring unknown attributes", "names", names)
	}

	s, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	logger.Debug("scenario loaded",
		"width", s.Width, "height", s.Height, "known", len(s.Known), "hidden", len(s.Hidden))

	return s, nil
}

// evalContext exposes vars as the `var` object.
func evalContext(vars map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		vals[k] = varValue(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(vals)},
	}
}

func varValue(s string) cty.Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		return cty.NumberFloatVal(f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return cty.BoolVal(b)
	}

	return cty.StringVal(s)
}

// translate validates root and converts it to a Scenario.
func translate(root *fileRoot) (*Scenario, error) {
	if root.Grid == nil {
		return nil, fmt.Errorf("%w: missing grid block", ErrInvalid)
	}
	s := &Scenario{
		Width:        root.Grid.Width,
		Height:       root.Grid.Height,
		Connectivity: gridgraph.Conn4,
		Heuristic:    true,
		Robot:        Robot{SensorRange: 1, Heading: executor.North},
	}
	if s.Width < 1 || s.Height < 1 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if root.Grid.Connectivity != nil {
		c, err := gridgraph.ParseConnectivity(*root.Grid.Connectivity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		s.Connectivity = c
	}
	if root.Grid.Heuristic != nil {
		s.Heuristic = *root.Grid.Heuristic
	}

	var err error
	if s.Start, err = s.point("start", root.Start); err != nil {
		return nil, err
	}
	if s.Goal, err = s.point("goal", root.Goal); err != nil {
		return nil, err
	}

	known := map[gridgraph.Point]bool{}
	hidden := map[gridgraph.Point]bool{}
	for _, ob := range root.Obstacles {
		cells, err := s.obstacleCells(ob)
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			if c == s.Start || c == s.Goal {
				return nil, fmt.Errorf("%w: obstacle %q covers start or goal %v", ErrInvalid, ob.Name, c)
			}
			if ob.Hidden {
				hidden[c] = true
			} else {
				known[c] = true
			}
		}
	}
	for c := range known {
		delete(hidden, c)
	}
	s.Known, s.Hidden = sorted(known), sorted(hidden)

	if r := root.Robot; r != nil {
		if r.SensorRange != nil {
			if *r.SensorRange < 1 {
				return nil, fmt.Errorf("%w: sensor_range %d", ErrInvalid, *r.SensorRange)
			}
			s.Robot.SensorRange = *r.SensorRange
		}
		if r.Heading != nil {
			h, err := executor.ParseHeading(*r.Heading)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
			}
			s.Robot.Heading = h
		}
		if r.StepDelay != nil {
			d, err := time.ParseDuration(*r.StepDelay)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("%w: step_delay %q", ErrInvalid, *r.StepDelay)
			}
			s.Robot.StepDelay = d
		}
	}

	return s, nil
}

// point validates a two-element coordinate.
func (s *Scenario) point(name string, xy []int) (gridgraph.Point, error) {
	if len(xy) != 2 {
		return gridgraph.Point{}, fmt.Errorf("%w: %s must be [x, y], got %v", ErrInvalid, name, xy)
	}
	p := gridgraph.Point{X: xy[0], Y: xy[1]}
	if p.X < 0 || p.Y < 0 || p.X >= s.Width || p.Y >= s.Height {
		return gridgraph.Point{}, fmt.Errorf("%w: %s %v outside %dx%d grid", ErrInvalid, name, p, s.Width, s.Height)
	}

	return p, nil
}

// obstacleCells expands cells and the optional from/to rectangle.
func (s *Scenario) obstacleCells(ob *obstacleBlock) ([]gridgraph.Point, error) {
	label := fmt.Sprintf("obstacle %q", ob.Name)
	var out []gridgraph.Point
	for _, xy := range ob.Cells {
		p, err := s.point(label, xy)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if ob.From == nil && ob.To == nil {
		return out, nil
	}
	from, err := s.point(label+" from", ob.From)
	if err != nil {
		return nil, err
	}
	to, err := s.point(label+" to", ob.To)
	if err != nil {
		return nil, err
	}
	for y := min(from.Y, to.Y); y <= max(from.Y, to.Y); y++ {
		for x := min(from.X, to.X); x <= max(from.X, to.X); x++ {
			out = append(out, gridgraph.Point{X: x, Y: y})
		}
	}

	return out, nil
}

func sorted(set map[gridgraph.Point]bool) []gridgraph.Point {
	out := make([]gridgraph.Point, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})

	return out
}

// Planner builds a planner with the scenario's grid, start, goal and known
// obstacles. opts are applied after the scenario's own connectivity and
// heuristic settings.
func (s *Scenario) Planner(opts ...dstarlite.Option) (*dstarlite.Planner, error) {
	all := append([]dstarlite.Option{
		dstarlite.WithConnectivity(s.Connectivity),
		dstarlite.WithHeuristic(s.Heuristic),
	}, opts...)
	p, err := dstarlite.New(s.Width, s.Height, all...)
	if err != nil {
		return nil, err
	}
	for _, c := range s.Known {
		if err = p.AddObstacle(c.X, c.Y); err != nil {
			return nil, err
		}
	}
	if err = p.SetStart(s.Start.X, s.Start.Y); err != nil {
		return nil, err
	}
	if err = p.SetGoal(s.Goal.X, s.Goal.Y); err != nil {
		return nil, err
	}

	return p, nil
}

// World indexes every obstacle, known and hidden, as the robot's ground
// truth.
func (s *Scenario) World() *gridgraph.ObstacleIndex {
	all := make([]gridgraph.Point, 0, len(s.Known)+len(s.Hidden))
	all = append(all, s.Known...)
	all = append(all, s.Hidden...)

	return gridgraph.NewObstacleIndex(all)
}

// ExecutorOptions returns the robot settings as executor options.
func (s *Scenario) ExecutorOptions() []executor.Option {
	return []executor.Option{
		executor.WithSensorRange(s.Robot.SensorRange),
		executor.WithHeading(s.Robot.Heading),
		executor.WithStepDelay(s.Robot.StepDelay),
	}
}
