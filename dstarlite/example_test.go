package dstarlite_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// ExamplePlanner plans across an open grid, discovers a wall and replans.
func ExamplePlanner() {
	ctx := context.Background()
	p, _ := dstarlite.New(5, 4, dstarlite.WithConnectivity(gridgraph.Conn4))
	_ = p.SetStart(0, 0)
	_ = p.SetGoal(4, 3)

	ok, _ := p.Plan(ctx)
	g, _ := p.G(0, 0)
	fmt.Printf("reachable=%v cost=%v vertices=%d\n", ok, g, len(p.Path()))

	var changed []gridgraph.Point
	for y := 0; y < 4; y++ {
		_ = p.AddObstacle(2, y)
		changed = append(changed, gridgraph.Point{X: 2, Y: y})
	}
	ok, _ = p.Replan(ctx, changed...)
	g, _ = p.G(0, 0)
	fmt.Printf("reachable=%v cost=%v\n", ok, g)
	// Output:
	// reachable=true cost=7 vertices=8
	// reachable=false cost=+Inf
}

// ExamplePlanner_MoveTo walks the robot one cell and replans from there.
func ExamplePlanner_MoveTo() {
	ctx := context.Background()
	p, _ := dstarlite.New(3, 1)
	_ = p.SetStart(0, 0)
	_ = p.SetGoal(2, 0)
	_, _ = p.Plan(ctx)

	_ = p.MoveTo(1, 0)
	_, _ = p.Replan(ctx)
	fmt.Println(p.Path(), p.K())
	_ = p.MoveTo(2, 0)
	fmt.Println(p.State())
	// Output:
	// [(1,0) (2,0)] 1
	// done
}
