package gridgraph

import (
	"container/list"
	"fmt"
)

// MinClearance finds the fewest obstacle cells that would have to be cleared
// for a path from `from` to `to` to exist, together with the cells of one
// such cheapest route (endpoints included, in walk order).
//
// Behavior:
//  1. Validate both points.
//  2. 0‐1 BFS from `from`:
//     • Moving into a free cell      → cost 0
//     • Moving into an obstacle cell → cost 1
//  3. Stop when `to` is dequeued.
//  4. Reconstruct the route via predecessors; collect its obstacle cells.
//
// A cost of zero means the cells are already connected. An obstacle at
// `from` counts toward the cost.
//
// Complexity: O(W·H·d) time, O(W·H) memory.
func (g *Grid) MinClearance(from, to Point) (blocking []Point, route []Point, err error) {
	if g.At(from) == nil || g.At(to) == nil {
		return nil, nil, fmt.Errorf("%w: clearance %v→%v", ErrOutOfBounds, from, to)
	}

	n := g.Width * g.Height
	const inf = int(^uint(0) >> 1)
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}
	stepCost := func(i int) int {
		if g.vertices[i].obstacle {
			return 1
		}
		return 0
	}

	// 0–1 BFS: deque processes cost0 at front, cost1 at back
	src, dst := g.index(from.X, from.Y), g.index(to.X, to.Y)
	dist[src] = stepCost(src)
	done := make([]bool, n)
	dq := list.New()
	dq.PushFront(src)

	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if done[u] {
			continue
		}
		done[u] = true
		if u == dst {
			break
		}
		ux, uy := g.Coordinate(u)
		for _, d := range g.neighborOffsets {
			vx, vy := ux+d[0], uy+d[1]
			if !g.InBounds(vx, vy) {
				continue
			}
			v := g.index(vx, vy)
			step := stepCost(v)
			if nd := dist[u] + step; nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	for at := dst; at >= 0; at = prev[at] {
		x, y := g.Coordinate(at)
		route = append(route, Point{X: x, Y: y})
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	for _, p := range route {
		if g.At(p).obstacle {
			blocking = append(blocking, p)
		}
	}

	return blocking, route, nil
}
