package gridgraph

// ConnectedComponents finds all contiguous regions of free cells (cells that
// are not obstacles) according to g.Conn connectivity.
// Returns a slice of components; each component is a slice of cell-indices
// (row-major) in BFS order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]int {
	seen := make([]bool, g.Width*g.Height)
	var comps [][]int

	for i, v := range g.vertices {
		if v.obstacle || seen[i] {
			continue
		}
		comps = append(comps, g.flood(i, seen))
	}

	return comps
}

// Reachable reports whether a path of free cells joins a and b. Either
// endpoint being an obstacle or out of bounds yields false.
func (g *Grid) Reachable(a, b Point) bool {
	va, vb := g.At(a), g.At(b)
	if va == nil || vb == nil || va.obstacle || vb.obstacle {
		return false
	}
	seen := make([]bool, g.Width*g.Height)
	target := g.index(b.X, b.Y)
	for _, i := range g.flood(g.index(a.X, a.Y), seen) {
		if i == target {
			return true
		}
	}

	return false
}

// flood collects the free component containing start, marking seen.
func (g *Grid) flood(start int, seen []bool) []int {
	queue := []int{start}
	seen[start] = true
	for qi := 0; qi < len(queue); qi++ {
		ux, uy := g.Coordinate(queue[qi])
		for _, d := range g.neighborOffsets {
			vx, vy := ux+d[0], uy+d[1]
			if !g.InBounds(vx, vy) {
				continue
			}
			vi := g.index(vx, vy)
			if seen[vi] || g.vertices[vi].obstacle {
				continue
			}
			seen[vi] = true
			queue = append(queue, vi)
		}
	}

	return queue
}
