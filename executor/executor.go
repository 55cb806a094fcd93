package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Executor walks a planner's path through a world with hidden obstacles.
type Executor struct {
	planner Planner
	world   World
	opts    Options

	heading Heading
	res     Result
}

// New validates options and connectivity.
func New(p Planner, world World, opts ...Option) (*Executor, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.FourNeighborOnly && p.Connectivity() == gridgraph.Conn8 {
		return nil, fmt.Errorf("%w: four-neighbor executor with %v-connected planner", ErrIncompatible, p.Connectivity())
	}

	cfg.Logger = cfg.Logger.With("component", "executor")

	return &Executor{planner: p, world: world, opts: cfg, heading: cfg.Heading}, nil
}

// Run drives the robot until it stands on the goal or the goal becomes
// unreachable. A planner without a computed search is planned first; one
// that already converged, reachable or not, is used as is.
func (e *Executor) Run(ctx context.Context) (Result, error) {
	e.res = Result{}
	if _, ok := e.planner.Start(); !ok {
		return e.res, fmt.Errorf("%w: planner has no start", ErrBadOption)
	}
	if s := e.planner.State(); s == dstarlite.Uninitialized || s == dstarlite.Initialized {
		if _, err := e.planner.Plan(ctx); err != nil {
			return e.res, err
		}
	}
	pos, _ := e.planner.Start()
	e.res.Trace = append(e.res.Trace, pos)
	e.opts.Logger.Info("execution started", "start", pos.String(), "heading", e.heading.String())

	for e.planner.State() != dstarlite.Done {
		if !e.planner.IsPlanReady() {
			return e.finish(ctx, NoPath)
		}
		path := e.planner.Path()
		replanned := false
		for step := 1; step < len(path) && !replanned; step++ {
			next := path[step]
			if err := e.orient(ctx, next); err != nil {
				return e.res, err
			}
			if found := e.sense(); len(found) > 0 {
				ok, err := e.replan(ctx, found)
				if err != nil {
					return e.res, err
				}
				if !ok {
					return e.finish(ctx, NoPath)
				}
				replanned = true
				continue
			}
			if err := e.drive(ctx, next); err != nil {
				return e.res, err
			}
		}
	}

	return e.finish(ctx, ReachedGoal)
}

// orient turns toward next if the heading differs.
func (e *Executor) orient(ctx context.Context, next gridgraph.Point) error {
	pos, _ := e.planner.Start()
	want, err := HeadingTo(pos, next)
	if err != nil {
		return err
	}
	cmd, turn := Turn(e.heading, want)
	if !turn {
		return nil
	}
	if err = e.command(ctx, cmd); err != nil {
		return err
	}
	e.heading = want
	e.opts.OnEvent(Event{Kind: Turned, Position: pos, Heading: want, Command: cmd})

	return e.pause(ctx)
}

// sense returns world obstacles within range the planner does not know.
func (e *Executor) sense() []gridgraph.Point {
	pos, _ := e.planner.Start()
	var found []gridgraph.Point
	for _, c := range e.world.Within(pos, e.opts.SensorRange) {
		known, err := e.planner.IsObstacle(c.X, c.Y)
		if err != nil {
			continue // outside the planner's grid
		}
		if !known {
			found = append(found, c)
		}
	}

	return found
}

// replan marks found obstacles and repairs the plan.
func (e *Executor) replan(ctx context.Context, found []gridgraph.Point) (bool, error) {
	pos, _ := e.planner.Start()
	for _, c := range found {
		if err := e.planner.AddObstacle(c.X, c.Y); err != nil {
			return false, err
		}
	}
	if len(found) > 0 {
		e.res.Discovered = append(e.res.Discovered, found...)
		e.opts.OnEvent(Event{Kind: Discovered, Position: pos, Heading: e.heading, Obstacles: found})
		e.opts.Logger.Info("new obstacles", "at", pos.String(), "count", len(found))
	}
	ok, err := e.planner.Replan(ctx, found...)
	if err != nil {
		return false, err
	}
	e.res.Replans++
	e.opts.OnEvent(Event{Kind: Replanned, Position: pos, Heading: e.heading, Reachable: ok})

	return ok, nil
}

// drive commands one forward move and advances the planner's start.
func (e *Executor) drive(ctx context.Context, next gridgraph.Point) error {
	if err := e.command(ctx, Drive); err != nil {
		return err
	}
	if err := e.planner.MoveTo(next.X, next.Y); err != nil {
		return err
	}
	e.res.Moves++
	e.res.Trace = append(e.res.Trace, next)
	e.opts.OnEvent(Event{Kind: Drove, Position: next, Heading: e.heading, Command: Drive})

	return e.pause(ctx)
}

func (e *Executor) command(ctx context.Context, cmd Command) error {
	if err := e.opts.Driver.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("executor: %s: %w", cmd, err)
	}
	e.res.Commands = append(e.res.Commands, cmd)

	return nil
}

// finish stops the robot and fills in the outcome.
func (e *Executor) finish(ctx context.Context, o Outcome) (Result, error) {
	if err := e.command(ctx, Stop); err != nil {
		return e.res, err
	}
	e.res.Outcome = o
	e.res.Heading = e.heading
	e.opts.Logger.Info("execution finished",
		"outcome", o.String(), "moves", e.res.Moves, "replans", e.res.Replans)

	return e.res, nil
}

func (e *Executor) pause(ctx context.Context) error {
	if e.opts.StepDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(e.opts.StepDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
