// Package gridgraph models a fixed-size 2D grid of vertices for incremental
// path planning.
//
// What:
//
//   - Grid owns width×height Vertex values exclusively; vertices keep their
//     identity for the lifetime of the grid.
//   - Conn4 (orthogonal) or Conn8 (adds the diagonals) adjacency, fixed at
//     construction. Neighbor enumeration order is deterministic per mode.
//   - Movement cost: 1 orthogonal, √2 diagonal, +Inf when either endpoint is
//     an obstacle. Costs are symmetric: Cost(a,b) == Cost(b,a).
//   - Admissible heuristics: Manhattan under Conn4, Euclid under Conn8.
//   - ObstacleIndex, an R-tree over obstacle cells, derived from the
//     per-vertex flags and rebuilt on demand.
//   - Free-cell components and a 0-1 BFS minimum clearance for grid analysis.
//
// Why:
//
//   - D* Lite needs stable vertex identities and cheap neighbor access.
//   - Robots sense obstacles in a radius; range queries need a spatial index.
//
// Complexity:
//
//   - Neighbors, Cost, CalculateKey: O(1).
//   - Obstacles, ObstacleIndex:      O(W×H) (+ O(n log n) R-tree build).
//   - ConnectedComponents:           O(W×H×d), Memory: O(W×H).
//   - MinClearance:                  O(W×H×d), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: width or height below 1.
//   - ErrNonRectangular: From2D rows of differing lengths.
//   - ErrOutOfBounds: coordinates outside the grid.
//   - ErrNotAdjacent: cost requested between non-adjacent vertices.
//
// Asymmetric terrain is out of scope: D* Lite here treats neighbors as
// predecessors, which holds only while Cost is symmetric.
package gridgraph
