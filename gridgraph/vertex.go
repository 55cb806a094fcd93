package gridgraph

import (
	"math"

	"github.com/katalvlaran/dstarlite/pqueue"
)

// Consistency classifies a vertex by comparing g and rhs.
type Consistency int

const (
	// Consistent means g == rhs.
	Consistent Consistency = iota
	// Overconsistent means g > rhs: a cheaper route was found.
	Overconsistent
	// Underconsistent means g < rhs: the known route got more expensive.
	Underconsistent
)

// String returns the lower-case classification name.
func (c Consistency) String() string {
	switch c {
	case Overconsistent:
		return "overconsistent"
	case Underconsistent:
		return "underconsistent"
	default:
		return "consistent"
	}
}

// Vertex is one grid cell with its D* Lite cost estimates.
//
// G is the current cost-to-goal estimate, Rhs the one-step lookahead; both
// start at +Inf. Key caches the last value returned by CalculateKey.
type Vertex struct {
	X, Y int
	G    float64
	Rhs  float64
	Key  pqueue.Key

	goal     bool
	obstacle bool
}

func newVertex(x, y int) *Vertex {
	return &Vertex{X: x, Y: y, G: math.Inf(1), Rhs: math.Inf(1)}
}

// Point returns the vertex coordinate.
func (v *Vertex) Point() Point { return Point{X: v.X, Y: v.Y} }

// IsGoal reports whether v is the goal.
func (v *Vertex) IsGoal() bool { return v.goal }

// IsObstacle reports whether v is blocked.
func (v *Vertex) IsObstacle() bool { return v.obstacle }

// SetGoal marks or unmarks v as the goal. A goal has rhs 0; clearing the
// flag restores rhs to +Inf.
func (v *Vertex) SetGoal(goal bool) {
	v.goal = goal
	if goal {
		v.Rhs = 0
	} else {
		v.Rhs = math.Inf(1)
	}
}

// SetObstacle marks or unmarks v as blocked. Blocking forces rhs to +Inf;
// unblocking leaves rhs untouched until the vertex is updated again.
func (v *Vertex) SetObstacle(obstacle bool) {
	v.obstacle = obstacle
	if obstacle {
		v.Rhs = math.Inf(1)
	}
}

// Consistency classifies v.
func (v *Vertex) Consistency() Consistency {
	switch {
	case v.G > v.Rhs:
		return Overconsistent
	case v.G < v.Rhs:
		return Underconsistent
	default:
		return Consistent
	}
}

// H estimates the distance from v to start. It is 0 when heuristic is
// false.
func (v *Vertex) H(start Point, heuristic bool, conn Connectivity) float64 {
	if !heuristic {
		return 0
	}

	return Heuristic(v.Point(), start, conn)
}

// CalculateKey returns (min(g,rhs) + h(start) + k, min(g,rhs)) and stores it
// in v.Key.
func (v *Vertex) CalculateKey(start Point, k float64, heuristic bool, conn Connectivity) pqueue.Key {
	m := math.Min(v.G, v.Rhs)
	v.Key = pqueue.Key{Primary: m + v.H(start, heuristic, conn) + k, Secondary: m}

	return v.Key
}

// Heuristic returns the Manhattan distance under Conn4 and the Euclidean
// distance under Conn8. Both are consistent with the grid's movement costs.
func Heuristic(a, b Point, conn Connectivity) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if conn == Conn8 {
		return math.Hypot(dx, dy)
	}

	return dx + dy
}
