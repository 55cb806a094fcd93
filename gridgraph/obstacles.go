package gridgraph

import (
	"slices"

	"github.com/dhconnelly/rtreego"
)

// cellHalf is the half-extent of a cell's bounding box in the R-tree. Boxes
// of neighboring cells never touch, so intersection tests are exact on
// integer coordinates.
const cellHalf = 0.25

// obstacleEntry wraps a cell for R-tree storage.
type obstacleEntry struct {
	p    Point
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ObstacleIndex answers range queries over a set of obstacle cells. It is a
// derived view: the grid's per-vertex flags stay the source of truth and the
// index is rebuilt from them.
type ObstacleIndex struct {
	tree  *rtreego.Rtree
	cells map[Point]*obstacleEntry
}

// NewObstacleIndex indexes the given cells. Duplicates are ignored.
func NewObstacleIndex(cells []Point) *ObstacleIndex {
	idx := &ObstacleIndex{
		tree:  rtreego.NewTree(2, 25, 50),
		cells: make(map[Point]*obstacleEntry, len(cells)),
	}
	for _, p := range cells {
		idx.Insert(p)
	}

	return idx
}

// Len returns the number of indexed cells.
func (idx *ObstacleIndex) Len() int { return len(idx.cells) }

// Contains reports whether p is indexed.
func (idx *ObstacleIndex) Contains(p Point) bool {
	_, ok := idx.cells[p]
	return ok
}

// Insert adds p and reports whether it was new.
func (idx *ObstacleIndex) Insert(p Point) bool {
	if _, ok := idx.cells[p]; ok {
		return false
	}
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(p.X) - cellHalf, float64(p.Y) - cellHalf},
		[]float64{2 * cellHalf, 2 * cellHalf},
	)
	if err != nil {
		// Lengths are positive constants; NewRect cannot fail here.
		return false
	}
	e := &obstacleEntry{p: p, bbox: bbox}
	idx.tree.Insert(e)
	idx.cells[p] = e

	return true
}

// Delete removes p and reports whether it was present.
func (idx *ObstacleIndex) Delete(p Point) bool {
	e, ok := idx.cells[p]
	if !ok {
		return false
	}
	idx.tree.Delete(e)
	delete(idx.cells, p)

	return true
}

// Within returns the indexed cells whose Chebyshev distance to center is at
// most radius, sorted row-major. A negative radius yields nil.
func (idx *ObstacleIndex) Within(center Point, radius int) []Point {
	if radius < 0 || len(idx.cells) == 0 {
		return nil
	}
	side := float64(2*radius + 1)
	query, err := rtreego.NewRect(
		rtreego.Point{float64(center.X-radius) - 0.5, float64(center.Y-radius) - 0.5},
		[]float64{side, side},
	)
	if err != nil {
		return nil
	}
	hits := idx.tree.SearchIntersect(query)
	out := make([]Point, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*obstacleEntry).p)
	}
	sortRowMajor(out)

	return out
}

// Points returns every indexed cell, sorted row-major.
func (idx *ObstacleIndex) Points() []Point {
	out := make([]Point, 0, len(idx.cells))
	for p := range idx.cells {
		out = append(out, p)
	}
	sortRowMajor(out)

	return out
}

func sortRowMajor(ps []Point) {
	slices.SortFunc(ps, func(a, b Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
}
