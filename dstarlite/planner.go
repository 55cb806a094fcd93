package dstarlite

import (
	"fmt"

	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
)

// Planner is a D* Lite session over one grid. It is not safe for
// concurrent use.
type Planner struct {
	opts  Options
	grid  *gridgraph.Grid
	queue *pqueue.Queue[*gridgraph.Vertex]

	start, goal optional[gridgraph.Point]

	// search vertices; nil until Initialize
	startV, goalV, lastV *gridgraph.Vertex

	k     float64
	state State
	ready bool
	path  []gridgraph.Point
	steps int

	// obstacles is derived from the grid flags; nil means stale.
	obstacles *gridgraph.ObstacleIndex

	computing bool
	notifying bool
}

// New constructs a planner over an obstacle-free width×height grid.
//
// Returns ErrConfiguration for dimensions below one or an invalid Option.
func New(width, height int, opts ...Option) (*Planner, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	grid, err := gridgraph.New(width, height, gridgraph.Options{Conn: cfg.Connectivity})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &Planner{
		opts:  cfg,
		grid:  grid,
		queue: pqueue.New[*gridgraph.Vertex](),
	}, nil
}

// Resize rebuilds the grid with new dimensions. All vertices are replaced,
// obstacles are dropped, start and goal become unset and the planner returns
// to Uninitialized.
func (p *Planner) Resize(width, height int) error {
	if err := p.guard(); err != nil {
		return err
	}
	grid, err := gridgraph.New(width, height, gridgraph.Options{Conn: p.opts.Connectivity})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	p.grid = grid
	p.start, p.goal = optional[gridgraph.Point]{}, optional[gridgraph.Point]{}
	p.obstacles = nil
	p.clearSearch()
	p.opts.Logger.Debug("grid resized", "width", width, "height", height)

	return nil
}

// SetStart places the start (robot) position. If a search exists it is
// discarded; obstacles are kept.
//
// Returns ErrConfiguration when (x,y) is out of bounds or blocked.
func (p *Planner) SetStart(x, y int) error {
	if err := p.guard(); err != nil {
		return err
	}
	v, err := p.vertex(x, y)
	if err != nil {
		return err
	}
	if v.IsObstacle() {
		return fmt.Errorf("%w: start %v is an obstacle", ErrConfiguration, v.Point())
	}
	p.discardSearch()
	p.start = some(v.Point())

	return nil
}

// SetGoal places the goal. The previous goal's rhs returns to +Inf and the
// new goal's rhs becomes 0. If a search exists it is discarded.
//
// Returns ErrConfiguration when (x,y) is out of bounds or blocked.
func (p *Planner) SetGoal(x, y int) error {
	if err := p.guard(); err != nil {
		return err
	}
	v, err := p.vertex(x, y)
	if err != nil {
		return err
	}
	if v.IsObstacle() {
		return fmt.Errorf("%w: goal %v is an obstacle", ErrConfiguration, v.Point())
	}
	p.discardSearch()
	if old, ok := p.goal.get(); ok {
		ov := p.grid.At(old)
		p.mark(ov, func() { ov.SetGoal(false) })
	}
	p.mark(v, func() { v.SetGoal(true) })
	p.goal = some(v.Point())

	return nil
}

// AddObstacle blocks (x,y). It only toggles the cell; neighbors are updated
// by NotifyObstacleChanged or Replan.
//
// Returns ErrConfiguration when (x,y) is out of bounds, the goal, or the
// current start.
func (p *Planner) AddObstacle(x, y int) error {
	if err := p.guard(); err != nil {
		return err
	}
	v, err := p.vertex(x, y)
	if err != nil {
		return err
	}
	if g, ok := p.goal.get(); ok && g == v.Point() {
		return fmt.Errorf("%w: obstacle on goal %v", ErrConfiguration, g)
	}
	if s, ok := p.start.get(); ok && s == v.Point() {
		return fmt.Errorf("%w: obstacle on start %v", ErrConfiguration, s)
	}
	if v.IsObstacle() {
		return nil
	}
	p.mark(v, func() { v.SetObstacle(true) })
	p.obstacles = nil

	return nil
}

// RemoveObstacle unblocks (x,y). Like AddObstacle it only toggles the cell.
func (p *Planner) RemoveObstacle(x, y int) error {
	if err := p.guard(); err != nil {
		return err
	}
	v, err := p.vertex(x, y)
	if err != nil {
		return err
	}
	if !v.IsObstacle() {
		return nil
	}
	v.SetObstacle(false)
	p.obstacles = nil

	return nil
}

// NotifyObstacleChanged updates (x,y) and its neighbors after an obstacle
// toggle. It is a no-op before Initialize. A pending MoveTo is folded into
// k first, so the repaired path is available after the next
// ComputeShortestPath or Replan.
func (p *Planner) NotifyObstacleChanged(x, y int) error {
	if err := p.guard(); err != nil {
		return err
	}
	v, err := p.vertex(x, y)
	if err != nil {
		return err
	}
	if p.startV == nil {
		return nil
	}
	p.rebase()

	return p.updateAround(v)
}

// MoveTo advances the start to the adjacent free cell (x,y), as a robot does
// after executing one path step. Reaching the goal moves the planner to Done.
//
// Returns ErrNotReady unless Converged, ErrConfiguration for an out-of-bounds
// or blocked cell and ErrNotAdjacent for a cell that is not a neighbor.
func (p *Planner) MoveTo(x, y int) error {
	if err := p.guard(); err != nil {
		return err
	}
	if p.state != Converged {
		return fmt.Errorf("%w: move in state %v", ErrNotReady, p.state)
	}
	v, err := p.vertex(x, y)
	if err != nil {
		return err
	}
	if v.IsObstacle() {
		return fmt.Errorf("%w: move into obstacle %v", ErrConfiguration, v.Point())
	}
	if !p.grid.Adjacent(p.startV.Point(), v.Point()) {
		return fmt.Errorf("%w: move %v -> %v", gridgraph.ErrNotAdjacent, p.startV.Point(), v.Point())
	}
	p.startV = v
	p.start = some(v.Point())
	if v == p.goalV {
		p.state = Done
	}

	return nil
}

// State returns the lifecycle stage.
func (p *Planner) State() State { return p.state }

// IsPlanReady reports whether the last computation found a path.
func (p *Planner) IsPlanReady() bool { return p.ready }

// Path returns a copy of the last extracted path, from the last-known
// position to the goal inclusive. It is empty when start equals goal and nil
// when no path exists.
func (p *Planner) Path() []gridgraph.Point {
	if p.path == nil {
		return nil
	}
	out := make([]gridgraph.Point, len(p.path))
	copy(out, p.path)

	return out
}

// StepCount returns the iterations of the last ComputeShortestPath call.
func (p *Planner) StepCount() int { return p.steps }

// K returns the key modifier.
func (p *Planner) K() float64 { return p.k }

// Start returns the start position, if set.
func (p *Planner) Start() (gridgraph.Point, bool) { return p.start.get() }

// Goal returns the goal position, if set.
func (p *Planner) Goal() (gridgraph.Point, bool) { return p.goal.get() }

// Width returns the grid width.
func (p *Planner) Width() int { return p.grid.Width }

// Height returns the grid height.
func (p *Planner) Height() int { return p.grid.Height }

// Connectivity returns the movement model.
func (p *Planner) Connectivity() gridgraph.Connectivity { return p.grid.Conn }

// QueueLen returns the number of inconsistent vertices waiting in the queue.
func (p *Planner) QueueLen() int { return p.queue.Len() }

// G returns g(x,y).
func (p *Planner) G(x, y int) (float64, error) {
	v, err := p.vertex(x, y)
	if err != nil {
		return 0, err
	}

	return v.G, nil
}

// Rhs returns rhs(x,y).
func (p *Planner) Rhs(x, y int) (float64, error) {
	v, err := p.vertex(x, y)
	if err != nil {
		return 0, err
	}

	return v.Rhs, nil
}

// IsObstacle reports whether (x,y) is blocked.
func (p *Planner) IsObstacle(x, y int) (bool, error) {
	v, err := p.vertex(x, y)
	if err != nil {
		return false, err
	}

	return v.IsObstacle(), nil
}

// Obstacles lists the blocked cells in row-major order.
func (p *Planner) Obstacles() []gridgraph.Point { return p.grid.Obstacles() }

// ObstaclesNear lists the blocked cells within Chebyshev distance radius of
// center, in row-major order. The spatial index behind it is rebuilt lazily
// after obstacle changes.
func (p *Planner) ObstaclesNear(center gridgraph.Point, radius int) []gridgraph.Point {
	if p.obstacles == nil {
		p.obstacles = p.grid.ObstacleIndex()
	}

	return p.obstacles.Within(center, radius)
}

// Grid exposes the underlying grid for read-only analysis such as
// reachability or minimum clearance. Mutating it bypasses the planner.
func (p *Planner) Grid() *gridgraph.Grid { return p.grid }

// vertex resolves (x,y), wrapping bounds errors as ErrConfiguration.
func (p *Planner) vertex(x, y int) (*gridgraph.Vertex, error) {
	v, err := p.grid.Vertex(x, y)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return v, nil
}

// guard rejects mutations from callbacks and during computation.
func (p *Planner) guard() error {
	if p.notifying {
		return ErrReentrant
	}
	if p.computing {
		return ErrBusy
	}

	return nil
}

// discardSearch drops an existing search but keeps start, goal and
// obstacles.
func (p *Planner) discardSearch() {
	if p.state == Uninitialized {
		return
	}
	p.grid.ResetCosts()
	p.clearSearch()
	if g, ok := p.goal.get(); ok {
		p.grid.At(g).SetGoal(true)
	}
}

func (p *Planner) clearSearch() {
	p.queue.Clear()
	p.startV, p.goalV, p.lastV = nil, nil, nil
	p.k = 0
	p.ready = false
	p.path = nil
	p.steps = 0
	p.state = Uninitialized
	if ro, ok := p.opts.Observer.(ResetObserver); ok {
		p.notify(func() { ro.OnSearchReset() })
	}
}
