package gridgraph

import (
	"fmt"
	"iter"
	"math"
)

// Grid is a width×height collection of vertices. It owns them exclusively
// and is not safe for concurrent use.
type Grid struct {
	Width, Height int
	Conn          Connectivity

	vertices        []*Vertex // row-major: y*Width + x
	neighborOffsets [][2]int
}

// New constructs an obstacle-free grid. Returns ErrEmptyGrid if width or
// height is below one.
// Complexity: O(W×H) time and memory.
func New(width, height int, opts Options) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	offsets := offsets4
	if opts.Conn == Conn8 {
		offsets = offsets8
	}
	g := &Grid{
		Width:           width,
		Height:          height,
		Conn:            opts.Conn,
		vertices:        make([]*Vertex, width*height),
		neighborOffsets: offsets,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.vertices[g.index(x, y)] = newVertex(x, y)
		}
	}

	return g, nil
}

// From2D builds a grid from rows of cells, where cells[y][x] != 0 marks an
// obstacle. Returns ErrEmptyGrid for no rows or no columns and
// ErrNonRectangular if any row length differs.
func From2D(cells [][]int, conn Connectivity) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(cells[0])
	for _, row := range cells {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(w, len(cells), Options{Conn: conn})
	if err != nil {
		return nil, err
	}
	for y, row := range cells {
		for x, c := range row {
			if c != 0 {
				g.vertices[g.index(x, y)].SetObstacle(true)
			}
		}
	}

	return g, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Vertex returns the vertex at (x,y), or ErrOutOfBounds.
func (g *Grid) Vertex(x, y int) (*Vertex, error) {
	if !g.InBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.Width, g.Height)
	}

	return g.vertices[g.index(x, y)], nil
}

// At returns the vertex at p, or nil when p is out of bounds.
func (g *Grid) At(p Point) *Vertex {
	if !g.InBounds(p.X, p.Y) {
		return nil
	}

	return g.vertices[g.index(p.X, p.Y)]
}

// Vertices yields every vertex in row-major order.
func (g *Grid) Vertices() iter.Seq[*Vertex] {
	return func(yield func(*Vertex) bool) {
		for _, v := range g.vertices {
			if !yield(v) {
				return
			}
		}
	}
}

// Neighbors returns the in-bounds neighbors of v in enumeration order,
// obstacles included.
func (g *Grid) Neighbors(v *Vertex) []*Vertex {
	out := make([]*Vertex, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		nx, ny := v.X+d[0], v.Y+d[1]
		if g.InBounds(nx, ny) {
			out = append(out, g.vertices[g.index(nx, ny)])
		}
	}

	return out
}

// Adjacent reports whether a and b are neighbors under g.Conn. A vertex is
// not adjacent to itself.
func (g *Grid) Adjacent(a, b Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	switch {
	case dx+dy == 1:
		return true
	case dx == 1 && dy == 1:
		return g.Conn == Conn8
	default:
		return false
	}
}

// Cost returns the movement cost between adjacent vertices: 1 orthogonal,
// √2 diagonal, +Inf when either endpoint is an obstacle. It returns
// ErrNotAdjacent for any other pair.
func (g *Grid) Cost(a, b *Vertex) (float64, error) {
	if !g.Adjacent(a.Point(), b.Point()) {
		return 0, fmt.Errorf("%w: %v and %v under Conn%v", ErrNotAdjacent, a.Point(), b.Point(), g.Conn)
	}
	if a.obstacle || b.obstacle {
		return math.Inf(1), nil
	}
	if a.X != b.X && a.Y != b.Y {
		return math.Sqrt2, nil
	}

	return 1, nil
}

// SetObstacle sets the obstacle flag at (x,y).
func (g *Grid) SetObstacle(x, y int, obstacle bool) error {
	v, err := g.Vertex(x, y)
	if err != nil {
		return err
	}
	v.SetObstacle(obstacle)

	return nil
}

// Obstacles lists the obstacle cells in row-major order.
func (g *Grid) Obstacles() []Point {
	var out []Point
	for _, v := range g.vertices {
		if v.obstacle {
			out = append(out, v.Point())
		}
	}

	return out
}

// ObstacleIndex builds a spatial index from the current obstacle flags.
func (g *Grid) ObstacleIndex() *ObstacleIndex {
	return NewObstacleIndex(g.Obstacles())
}

// ResetCosts sets g and rhs of every vertex to +Inf and clears goal flags.
// Obstacle flags are kept.
func (g *Grid) ResetCosts() {
	for _, v := range g.vertices {
		v.goal = false
		v.G = math.Inf(1)
		v.Rhs = math.Inf(1)
	}
}

// index maps (x,y) to a row‑major index: y*Width + x.
func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.Width, idx / g.Width
}
