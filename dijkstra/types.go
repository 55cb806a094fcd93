package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *gridgraph.Grid was passed.
	ErrNilGraph = errors.New("dijkstra: grid is nil")

	// ErrSourceNotSet indicates that no Source option was supplied.
	ErrSourceNotSet = errors.New("dijkstra: source cell not set")

	// ErrSourceOutOfGrid indicates that the source lies outside the grid.
	ErrSourceOutOfGrid = errors.New("dijkstra: source cell outside grid")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrUnreachable indicates that PathTo was asked for a cell with no path.
	ErrUnreachable = errors.New("dijkstra: cell unreachable from source")
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source      – starting cell. Required.
// MaxDistance – cells whose distance would exceed this stay +Inf.
//
//	Must be ≥ 0. Default is +Inf (no cap).
type Options struct {
	Source      gridgraph.Point
	MaxDistance float64

	sourceSet bool
	err       error
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting cell.
func Source(p gridgraph.Point) Option {
	return func(o *Options) {
		o.Source = p
		o.sourceSet = true
	}
}

// WithMaxDistance sets a maximum distance threshold. A negative value is
// recorded and reported as ErrBadMaxDistance by Distances.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 {
			o.err = fmt.Errorf("%w: %v", ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options with no source and no distance cap.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}

// Result holds the distances of one run, indexed row-major.
type Result struct {
	Source gridgraph.Point
	Dist   []float64 // +Inf if unreachable
	Prev   []int     // predecessor index on a shortest path, -1 for none

	width int
}

// Distance returns the shortest distance from the source to p, or +Inf when
// p is unreachable or out of range.
func (r *Result) Distance(p gridgraph.Point) float64 {
	i, ok := r.index(p)
	if !ok {
		return math.Inf(1)
	}

	return r.Dist[i]
}

// PathTo reconstructs a shortest path from the source to dest, both
// included. It returns ErrUnreachable if dest has no path.
func (r *Result) PathTo(dest gridgraph.Point) ([]gridgraph.Point, error) {
	i, ok := r.index(dest)
	if !ok || math.IsInf(r.Dist[i], 1) {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, dest)
	}
	var path []gridgraph.Point
	for at := i; at >= 0; at = r.Prev[at] {
		path = append(path, gridgraph.Point{X: at % r.width, Y: at / r.width})
	}
	// reverse to get source → dest
	for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
		path[a], path[b] = path[b], path[a]
	}

	return path, nil
}

func (r *Result) index(p gridgraph.Point) (int, bool) {
	if r.width == 0 || p.X < 0 || p.X >= r.width || p.Y < 0 {
		return 0, false
	}
	i := p.Y*r.width + p.X
	if i >= len(r.Dist) {
		return 0, false
	}

	return i, true
}
