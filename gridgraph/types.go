package gridgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates a width or height below one.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrOutOfBounds indicates coordinates outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: coordinates out of bounds")
	// ErrNotAdjacent indicates a movement cost requested between vertices
	// that are not neighbors under the grid's connectivity.
	ErrNotAdjacent = errors.New("gridgraph: vertices are not adjacent")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses the four orthogonal neighbors.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonals.
	Conn8
)

// String returns "4" or "8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "8"
	}

	return "4"
}

// ParseConnectivity maps 4 and 8 to Conn4 and Conn8.
func ParseConnectivity(n int) (Connectivity, error) {
	switch n {
	case 4:
		return Conn4, nil
	case 8:
		return Conn8, nil
	default:
		return Conn4, fmt.Errorf("gridgraph: connectivity must be 4 or 8, got %d", n)
	}
}

// Point is a cell coordinate. X grows east, Y grows north.
type Point struct {
	X, Y int
}

// String renders the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Options contains tunable parameters for grid construction.
type Options struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultOptions returns Options with Conn=Conn4.
func DefaultOptions() Options {
	return Options{Conn: Conn4}
}

// Enumeration order starts at y-1 and turns toward x+1.
var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)
