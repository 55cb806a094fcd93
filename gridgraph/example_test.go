// File: gridgraph/example_test.go
package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// ExampleGrid_Cost shows the movement cost model under Conn8.
func ExampleGrid_Cost() {
	g, _ := gridgraph.From2D([][]int{
		{0, 0},
		{0, 1},
	}, gridgraph.Conn8)
	a, _ := g.Vertex(0, 0)
	b, _ := g.Vertex(1, 0)
	c, _ := g.Vertex(1, 1)
	d, _ := g.Vertex(0, 1)

	ab, _ := g.Cost(a, b)
	bd, _ := g.Cost(b, d)
	ac, _ := g.Cost(a, c)
	fmt.Printf("orthogonal=%.0f diagonal=%.4f into obstacle=%v\n", ab, bd, ac)
	// Output: orthogonal=1 diagonal=1.4142 into obstacle=+Inf
}

// ExampleGrid_MinClearance reports which wall cells block a route.
//
// Grid:
//
//	0 1 0
//	0 1 0
func ExampleGrid_MinClearance() {
	g, _ := gridgraph.From2D([][]int{
		{0, 1, 0},
		{0, 1, 0},
	}, gridgraph.Conn4)
	blocking, _, _ := g.MinClearance(gridgraph.Point{X: 0, Y: 0}, gridgraph.Point{X: 2, Y: 0})
	fmt.Println("clear:", blocking)
	// Output: clear: [(1,0)]
}
