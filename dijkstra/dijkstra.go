package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Distances computes shortest distances from the source cell to every cell
// of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. options must be valid (ErrBadMaxDistance).
//  3. Source must be set (ErrSourceNotSet) and inside g (ErrSourceOutOfGrid).
//
// The source itself has distance 0 even when it is an obstacle; every edge
// touching an obstacle costs +Inf and is never relaxed.
func Distances(g *gridgraph.Grid, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if !cfg.sourceSet {
		return nil, ErrSourceNotSet
	}
	if !g.InBounds(cfg.Source.X, cfg.Source.Y) {
		return nil, fmt.Errorf("%w: %v", ErrSourceOutOfGrid, cfg.Source)
	}

	n := g.Width * g.Height
	r := &runner{
		g:       g,
		options: cfg,
		res: &Result{
			Source: cfg.Source,
			Dist:   make([]float64, n),
			Prev:   make([]int, n),
			width:  g.Width,
		},
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *gridgraph.Grid
	options Options
	res     *Result
	visited []bool
	pq      nodePQ
}

// init sets every distance to +Inf, the source to 0, and seeds the heap.
func (r *runner) init() {
	for i := range r.res.Dist {
		r.res.Dist[i] = math.Inf(1)
		r.res.Prev[i] = -1
	}
	src := r.options.Source.Y*r.g.Width + r.options.Source.X
	r.res.Dist[src] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{idx: src, dist: 0})
}

// process pops the closest unfinished cell until the heap is empty or the
// minimum exceeds MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.idx] {
			continue // stale heap entry
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.idx] = true
		if err := r.relax(item.idx); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the distances of u's neighbors through u.
func (r *runner) relax(u int) error {
	x, y := r.g.Coordinate(u)
	from, err := r.g.Vertex(x, y)
	if err != nil {
		return err
	}
	for _, to := range r.g.Neighbors(from) {
		w, err := r.g.Cost(from, to)
		if err != nil {
			return fmt.Errorf("dijkstra: relax %v: %w", from.Point(), err)
		}
		if math.IsInf(w, 1) {
			continue // impassable
		}
		v := to.Y*r.g.Width + to.X
		newDist := r.res.Dist[u] + w
		if newDist > r.options.MaxDistance || newDist >= r.res.Dist[v] {
			continue
		}
		r.res.Dist[v] = newDist
		r.res.Prev[v] = u
		heap.Push(&r.pq, &nodeItem{idx: v, dist: newDist})
	}

	return nil
}

// nodeItem represents a cell and its current distance from the source.
type nodeItem struct {
	idx  int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, used with lazy
// decrease-key: outdated entries are skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int           { return len(pq) }
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) {
	*pq = append(*pq, x.(*nodeItem))
}

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
