// Package dstarlite plans and incrementally replans shortest paths on 2D
// grids with D* Lite, for robots that discover obstacles while driving.
//
// What is here?
//
//	pqueue/     lexicographic (k1,k2) keys and an indexed min-queue
//	gridgraph/  Grid, Vertex, costs, heuristics, obstacle R-tree, analysis
//	dstarlite/  the Planner: initialize, compute, update, replan, path
//	dijkstra/   static reference distances used to verify plans
//	executor/   a simulated robot that senses, turns, drives and replans
//	scenario/   HCL scenario files with `var` substitution
//	instrument/ Prometheus metrics fed by planner and executor events
//	viewer/     socket.io stream of search events for a remote viewer
//	cmd/dstarlite/ the command-line runner
//
// Quick example:
//
//	p, _ := dstarlite.New(5, 4, dstarlite.WithConnectivity(gridgraph.Conn8))
//	_ = p.SetStart(0, 0)
//	_ = p.SetGoal(4, 3)
//	ok, _ := p.Plan(ctx)
//	_ = p.AddObstacle(2, 2)
//	ok, _ = p.Replan(ctx, gridgraph.Point{X: 2, Y: 2})
//	fmt.Println(ok, p.Path())
//
// Complexity: one ComputeShortestPath is O(V log V) in the worst case;
// replans touch only the vertices whose costs changed.
package dstarlite
