// Package dstarlite implements the D* Lite incremental heuristic search
// (Koenig & Likhachev, 2002) on a gridgraph.Grid.
//
// What
//
//   - A Planner owns one grid and one keyed queue. It computes the cheapest
//     path from a start cell to a goal cell and repairs it incrementally when
//     obstacles are discovered, reusing the previous search instead of
//     starting over.
//   - Every cell carries g (cost-to-goal estimate) and rhs (one-step
//     lookahead). A cell is locally consistent when g == rhs; inconsistent
//     cells sit in the queue ordered by their key.
//   - Keys are (min(g,rhs)+h(start)+k, min(g,rhs)). The offset k accumulates
//     the heuristic distance the robot has moved between replans so old keys
//     stay comparable with new ones.
//
// Lifecycle
//
//	Uninitialized → Initialized → Computing → Converged
//	              → [Replanning → Computing → Converged]* → Done
//
//	p, _ := dstarlite.New(5, 4, dstarlite.WithConnectivity(gridgraph.Conn4))
//	_ = p.SetStart(0, 0)
//	_ = p.SetGoal(4, 3)
//	ok, _ := p.Plan(ctx)          // initialize + compute + extract path
//	_ = p.AddObstacle(2, 3)       // robot discovers a blocked cell
//	ok, _ = p.Replan(ctx, gridgraph.Point{X: 2, Y: 3})
//
// An unreachable goal is a normal outcome: Plan and Replan return false and
// g(start) stays +Inf.
//
// Concurrency
//
//	A Planner is single-threaded and step-synchronous. The expansion loop
//	yields only between iterations, where the optional step hook and step
//	delay run and the context is checked. Observers are called synchronously
//	and must not mutate the planner; doing so returns ErrReentrant. Callers
//	must serialize access from multiple goroutines.
//
// Errors
//
//   - ErrConfiguration: bad dimensions, coordinates out of bounds, goal on an
//     obstacle, start or goal unset.
//   - gridgraph.ErrNotAdjacent: a move or cost between non-adjacent cells.
//   - ErrNotReady: operation not valid in the current state.
//   - ErrBusy, ErrReentrant: calls made while computing or from a callback.
//   - ErrInconsistentState: path extraction exceeded width×height steps.
//
// Movement costs are assumed symmetric; neighbors double as predecessors.
package dstarlite
