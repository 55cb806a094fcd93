package pqueue

import (
	"fmt"
	"math"
)

// Key orders queue entries. In D* Lite, Primary is min(g,rhs)+h+k and
// Secondary is min(g,rhs).
type Key struct {
	Primary   float64
	Secondary float64
}

// InfiniteKey is the sentinel returned by TopKey on an empty queue.
var InfiniteKey = Key{Primary: math.Inf(1), Secondary: math.Inf(1)}

// Less reports whether k sorts strictly before other.
func (k Key) Less(other Key) bool {
	if k.Primary != other.Primary {
		return k.Primary < other.Primary
	}

	return k.Secondary < other.Secondary
}

// String renders the key as "(p, s)".
func (k Key) String() string {
	return fmt.Sprintf("(%g, %g)", k.Primary, k.Secondary)
}
