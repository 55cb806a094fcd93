// Package dijkstra computes static shortest-path distances over a
// gridgraph.Grid.
//
// It is the from-scratch counterpart of the incremental dstarlite planner:
// one full Dijkstra run from a source cell to every other cell, using the
// grid's movement costs (1 orthogonal, √2 diagonal, obstacles impassable).
// Because grid costs are symmetric, running it from the goal yields every
// cell's cost-to-goal, which is exactly what D* Lite's g-values converge to.
//
// Complexity:
//
//	– Time:  O((V + E) log V)   where V = W×H, E ≤ 8V
//	   • Each vertex is finalized at most once.
//	   • Each edge relaxation may push into the heap (lazy decrease-key).
//	– Space: O(V + E)
//
// Options:
//
//	– Source:      starting cell (must lie inside the grid).
//	– MaxDistance: optional cap; cells farther than this stay +Inf.
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the grid pointer is nil.
//	– ErrSourceNotSet    if no Source option was given.
//	– ErrSourceOutOfGrid if the source lies outside the grid.
//	– ErrBadMaxDistance  if MaxDistance < 0 (recorded by WithMaxDistance).
//
// Example usage:
//
//	res, err := dijkstra.Distances(g, dijkstra.Source(goal))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Distance(start))
package dijkstra
