package dstarlite

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
)

// Initialize seeds a fresh search: k = 0, last = start, goal queued with
// key (h(goal,start), 0).
//
// Returns ErrConfiguration when start or goal is unset and ErrNotReady
// when a search already exists.
func (p *Planner) Initialize() error {
	if err := p.guard(); err != nil {
		return err
	}
	start, ok := p.start.get()
	if !ok {
		return fmt.Errorf("%w: start not set", ErrConfiguration)
	}
	goal, ok := p.goal.get()
	if !ok {
		return fmt.Errorf("%w: goal not set", ErrConfiguration)
	}
	if p.state != Uninitialized {
		return fmt.Errorf("%w: initialize in state %v", ErrNotReady, p.state)
	}
	p.startV = p.grid.At(start)
	p.goalV = p.grid.At(goal)
	p.lastV = p.startV
	p.k = 0
	if err := p.queue.Insert(p.goalV, p.key(p.goalV)); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	p.state = Initialized

	return nil
}

// ComputeShortestPath expands vertices until the start is consistent and no
// queued key is below the start's key, then extracts the path from the
// last-known position. It records the number of iterations in StepCount.
// A move made with MoveTo since the last computation is folded into k first,
// exactly as Replan does.
//
// Between iterations it checks ctx, runs the step hook and sleeps for the
// step delay. If any of these fails the error is returned, the state is
// restored to what it was before the call and a later call resumes the
// expansion. Calling it on a converged planner is a no-op.
//
// Complexity: O(n log n) per call in the worst case, usually far less on
// replans.
func (p *Planner) ComputeShortestPath(ctx context.Context) (err error) {
	if err = p.guard(); err != nil {
		return err
	}
	if p.startV == nil {
		return fmt.Errorf("%w: compute before initialize", ErrNotReady)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := p.opts.Tracer.Start(ctx, "dstarlite.ComputeShortestPath")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	moved := p.rebase()
	prev := p.state
	p.state = Computing
	p.computing = true
	defer func() { p.computing = false }()

	began := time.Now()
	steps := 0
	for p.queue.TopKey().Less(p.key(p.startV)) || p.startV.G != p.startV.Rhs {
		if err = ctx.Err(); err != nil {
			p.state = prev
			return err
		}
		var (
			u    *gridgraph.Vertex
			kOld pqueue.Key
		)
		if u, kOld, err = p.expand(); err != nil {
			p.state = prev
			return err
		}
		steps++
		p.steps = steps
		if err = p.boundary(ctx, Step{Index: steps, Vertex: u.Point(), Key: kOld, QueueLen: p.queue.Len()}); err != nil {
			p.state = prev
			return err
		}
	}
	p.steps = steps
	p.state = Converged
	if p.startV == p.goalV {
		p.state = Done
	}
	if err = p.refreshPath(); err != nil {
		return err
	}

	stats := ComputeStats{
		Steps:     steps,
		K:         p.k,
		StartG:    p.startV.G,
		Reachable: p.ready,
		Replan:    prev == Replanning || moved,
		Duration:  time.Since(began),
	}
	span.SetAttributes(
		attribute.Int("dstarlite.steps", stats.Steps),
		attribute.Bool("dstarlite.reachable", stats.Reachable),
		attribute.Bool("dstarlite.replan", stats.Replan),
		attribute.Float64("dstarlite.k", stats.K),
	)
	p.opts.Logger.Debug("shortest path computed",
		"steps", stats.Steps,
		costAttr("start_g", stats.StartG),
		"replan", stats.Replan,
		"duration", stats.Duration,
	)
	if co, ok := p.opts.Observer.(ComputeObserver); ok {
		p.notify(func() { co.OnComputeFinished(stats) })
	}

	return nil
}

// expand pops the minimum vertex and processes it as one iteration:
//
//	key outdated       → reinsert with the fresh key
//	overconsistent     → g = rhs, update neighbors
//	otherwise          → g = +Inf, update u and neighbors
func (p *Planner) expand() (*gridgraph.Vertex, pqueue.Key, error) {
	u, kOld, err := p.queue.Pop()
	if err != nil {
		return nil, kOld, fmt.Errorf("%w: start inconsistent with empty queue", ErrInconsistentState)
	}
	p.emit(func(o Observer) { o.OnVertexPopped(u.Point(), kOld) })

	kNew := p.key(u)
	switch {
	case kOld.Less(kNew):
		if err = p.queue.Insert(u, kNew); err != nil {
			return nil, kOld, fmt.Errorf("%w: %w", ErrInconsistentState, err)
		}
	case u.G > u.Rhs:
		p.setG(u, u.Rhs)
		for _, n := range p.grid.Neighbors(u) {
			if err = p.updateVertex(n); err != nil {
				return nil, kOld, err
			}
		}
	default:
		p.setG(u, math.Inf(1))
		if err = p.updateAround(u); err != nil {
			return nil, kOld, err
		}
	}

	return u, kOld, nil
}

// boundary runs the inter-iteration yield point.
func (p *Planner) boundary(ctx context.Context, step Step) error {
	if p.opts.StepHook != nil {
		if err := p.opts.StepHook(ctx, step); err != nil {
			return err
		}
	}
	if p.opts.StepDelay <= 0 {
		return nil
	}
	t := time.NewTimer(p.opts.StepDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// updateVertex recomputes rhs(v) as the best neighbor cost unless v is the
// goal, then requeues v iff it is inconsistent.
func (p *Planner) updateVertex(v *gridgraph.Vertex) error {
	if !v.IsGoal() {
		rhs := math.Inf(1)
		for _, n := range p.grid.Neighbors(v) {
			c, err := p.grid.Cost(v, n)
			if err != nil {
				return err
			}
			if c+n.G < rhs {
				rhs = c + n.G
			}
		}
		p.setRhs(v, rhs)
	}
	p.queue.Remove(v)
	if v.G != v.Rhs {
		if err := p.queue.Insert(v, p.key(v)); err != nil {
			return fmt.Errorf("%w: %w", ErrInconsistentState, err)
		}
	}

	return nil
}

// updateAround updates v and then each of its neighbors.
func (p *Planner) updateAround(v *gridgraph.Vertex) error {
	if err := p.updateVertex(v); err != nil {
		return err
	}
	for _, n := range p.grid.Neighbors(v) {
		if err := p.updateVertex(n); err != nil {
			return err
		}
	}

	return nil
}

// cheapestNeighbor returns the neighbor minimizing g+rhs; the first in
// enumeration order wins ties.
func (p *Planner) cheapestNeighbor(v *gridgraph.Vertex) *gridgraph.Vertex {
	var best *gridgraph.Vertex
	bestCost := math.Inf(1)
	for _, n := range p.grid.Neighbors(v) {
		if c := n.G + n.Rhs; best == nil || c < bestCost {
			best, bestCost = n, c
		}
	}

	return best
}

// extractPath follows cheapestNeighbor from `from` to the goal. It reports
// false when it meets a vertex with g = +Inf and fails with
// ErrInconsistentState once the walk would exceed width×height vertices.
func (p *Planner) extractPath(from *gridgraph.Vertex) ([]gridgraph.Point, bool, error) {
	if from == p.goalV {
		return []gridgraph.Point{}, true, nil
	}
	if math.IsInf(from.G, 1) {
		return nil, false, nil
	}
	limit := p.grid.Width * p.grid.Height
	path := []gridgraph.Point{from.Point()}
	for node := from; node != p.goalV; {
		if len(path) >= limit {
			return nil, false, fmt.Errorf("%w: path from %v exceeds %d steps", ErrInconsistentState, from.Point(), limit)
		}
		next := p.cheapestNeighbor(node)
		if next == nil || next.IsObstacle() || math.IsInf(next.G, 1) {
			return nil, false, nil
		}
		path = append(path, next.Point())
		node = next
	}

	return path, true, nil
}

// refreshPath extracts the path from the last-known position and records
// readiness.
func (p *Planner) refreshPath() error {
	path, ok, err := p.extractPath(p.lastV)
	if err != nil {
		p.ready, p.path = false, nil
		return err
	}
	p.ready, p.path = ok, path

	return nil
}

// Plan discards any previous search, initializes from the current start and
// goal, computes the shortest path and extracts it. It reports whether the
// goal is reachable.
func (p *Planner) Plan(ctx context.Context) (bool, error) {
	if err := p.guard(); err != nil {
		return false, err
	}
	p.discardSearch()
	if err := p.Initialize(); err != nil {
		return false, err
	}
	p.opts.Logger.Debug("planning", "start", p.startV.Point(), "goal", p.goalV.Point())
	if err := p.ComputeShortestPath(ctx); err != nil {
		return false, err
	}

	return p.ready, nil
}

// Replan repairs the plan after the robot moved and/or cells changed:
//
//	k    += h(last, start)
//	last  = start
//	updateVertex on every changed cell and its neighbors
//	ComputeShortestPath, extract path
//
// It reports whether the goal is still reachable. Changed cells are
// validated before anything is mutated.
//
// Returns ErrNotReady before the first successful computation and ErrBusy
// when called from a step hook.
func (p *Planner) Replan(ctx context.Context, changed ...gridgraph.Point) (ok bool, err error) {
	if err = p.guard(); err != nil {
		return false, err
	}
	switch p.state {
	case Converged, Replanning, Done:
	default:
		return false, fmt.Errorf("%w: replan in state %v", ErrNotReady, p.state)
	}
	vs := make([]*gridgraph.Vertex, 0, len(changed))
	for _, c := range changed {
		v, verr := p.vertex(c.X, c.Y)
		if verr != nil {
			return false, verr
		}
		vs = append(vs, v)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := p.opts.Tracer.Start(ctx, "dstarlite.Replan",
		trace.WithAttributes(attribute.Int("dstarlite.changed", len(vs))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Bool("dstarlite.reachable", ok))
		span.End()
	}()

	p.state = Replanning
	p.rebase()
	for _, v := range vs {
		if err = p.updateAround(v); err != nil {
			return false, err
		}
	}
	p.opts.Logger.Debug("replanning", "start", p.startV.Point(), "changed", len(vs), "k", p.k)
	if err = p.ComputeShortestPath(ctx); err != nil {
		return false, err
	}

	return p.ready, nil
}

// rebase applies k += h(last, start) and last = start when the robot moved
// since the last computation. It reports whether it changed anything.
func (p *Planner) rebase() bool {
	if p.lastV == nil || p.lastV == p.startV {
		return false
	}
	p.k += p.lastV.H(p.startV.Point(), p.opts.Heuristic, p.grid.Conn)
	p.lastV = p.startV

	return true
}

// key computes and caches v's key against the current start and k.
func (p *Planner) key(v *gridgraph.Vertex) pqueue.Key {
	return v.CalculateKey(p.startV.Point(), p.k, p.opts.Heuristic, p.grid.Conn)
}

func (p *Planner) setG(v *gridgraph.Vertex, g float64) {
	if v.G == g {
		return
	}
	v.G = g
	p.emit(func(o Observer) { o.OnGChanged(v.Point(), g) })
}

func (p *Planner) setRhs(v *gridgraph.Vertex, rhs float64) {
	if v.Rhs == rhs {
		return
	}
	v.Rhs = rhs
	p.emit(func(o Observer) { o.OnRhsChanged(v.Point(), rhs) })
}

// mark applies a flag mutation to v and reports the resulting rhs change.
func (p *Planner) mark(v *gridgraph.Vertex, apply func()) {
	before := v.Rhs
	apply()
	if v.Rhs != before {
		rhs := v.Rhs
		p.emit(func(o Observer) { o.OnRhsChanged(v.Point(), rhs) })
	}
}

func (p *Planner) emit(fn func(Observer)) {
	if p.opts.Observer == nil {
		return
	}
	p.notify(func() { fn(p.opts.Observer) })
}

// notify runs fn with mutations locked out.
func (p *Planner) notify(fn func()) {
	p.notifying = true
	defer func() { p.notifying = false }()
	fn()
}

// costAttr logs +Inf as a string; JSON handlers cannot encode it.
func costAttr(name string, v float64) slog.Attr {
	if math.IsInf(v, 0) {
		return slog.String(name, "inf")
	}

	return slog.Float64(name, v)
}
