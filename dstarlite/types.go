package dstarlite

import (
	"errors"
	"time"

	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
)

// Sentinel errors returned by the planner.
var (
	// ErrConfiguration indicates invalid dimensions, out-of-bounds or unset
	// start/goal, or a goal placed on an obstacle. State is left unchanged.
	ErrConfiguration = errors.New("dstarlite: invalid configuration")

	// ErrNotReady indicates an operation that is not valid in the current
	// planner state, e.g. Replan before Plan.
	ErrNotReady = errors.New("dstarlite: operation not valid in current state")

	// ErrBusy indicates a call made while ComputeShortestPath is running,
	// typically from a step hook.
	ErrBusy = errors.New("dstarlite: shortest-path computation in progress")

	// ErrReentrant indicates a mutating call made from an observer callback.
	ErrReentrant = errors.New("dstarlite: planner mutated from an observer callback")

	// ErrInconsistentState indicates that path extraction did not reach the
	// goal within width×height steps.
	ErrInconsistentState = errors.New("dstarlite: internal consistency violated")

	// ErrNotAdjacent is gridgraph.ErrNotAdjacent, re-exported for callers of
	// MoveTo.
	ErrNotAdjacent = gridgraph.ErrNotAdjacent
)

// State is the planner lifecycle stage.
type State int

const (
	// Uninitialized: no search exists yet; start and goal may be configured.
	Uninitialized State = iota
	// Initialized: the goal is queued, nothing has been expanded.
	Initialized
	// Computing: ComputeShortestPath is running.
	Computing
	// Converged: the last computation finished; Path is current.
	Converged
	// Replanning: a replan updated vertices and is recomputing, or was
	// interrupted while doing so.
	Replanning
	// Done: the start reached the goal.
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Computing:
		return "computing"
	case Converged:
		return "converged"
	case Replanning:
		return "replanning"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Step describes one finished iteration of the expansion loop. It is passed
// to the step hook at the iteration boundary.
type Step struct {
	Index    int             // 1-based iteration number within this computation
	Vertex   gridgraph.Point // vertex popped in this iteration
	Key      pqueue.Key      // key it was popped with
	QueueLen int             // queue size after the iteration
}

// ComputeStats summarizes one finished ComputeShortestPath call.
type ComputeStats struct {
	Steps     int
	K         float64
	StartG    float64
	Reachable bool
	Replan    bool
	Duration  time.Duration
}

// optional is an explicitly tagged "maybe" value, used for start and goal so
// unset coordinates can never leak into arithmetic.
type optional[T any] struct {
	v  T
	ok bool
}

func some[T any](v T) optional[T] { return optional[T]{v: v, ok: true} }

func (o optional[T]) get() (T, bool) { return o.v, o.ok }
