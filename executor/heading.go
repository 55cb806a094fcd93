package executor

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// Heading is one of the 8 compass directions, clockwise from North.
type Heading int

const (
	North Heading = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var headingNames = [...]string{
	"North", "NorthEast", "East", "SouthEast", "South", "SouthWest", "West", "NorthWest",
}

// String returns the heading name, e.g. "NorthEast".
func (h Heading) String() string {
	if h < North || h > NorthWest {
		return fmt.Sprintf("Heading(%d)", int(h))
	}

	return headingNames[h]
}

// ParseHeading accepts heading names case-insensitively, plus the short
// forms N, NE, E, SE, S, SW, W and NW.
func ParseHeading(s string) (Heading, error) {
	short := map[string]Heading{
		"n": North, "ne": NorthEast, "e": East, "se": SouthEast,
		"s": South, "sw": SouthWest, "w": West, "nw": NorthWest,
	}
	key := strings.ToLower(strings.TrimSpace(s))
	if h, ok := short[key]; ok {
		return h, nil
	}
	for i, name := range headingNames {
		if strings.ToLower(name) == key {
			return Heading(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown heading %q", ErrBadOption, s)
}

// HeadingTo returns the heading that points from one cell to an adjacent
// cell (diagonals included).
func HeadingTo(from, to gridgraph.Point) (Heading, error) {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && dy == 1:
		return North, nil
	case dx == 1 && dy == 1:
		return NorthEast, nil
	case dx == 1 && dy == 0:
		return East, nil
	case dx == 1 && dy == -1:
		return SouthEast, nil
	case dx == 0 && dy == -1:
		return South, nil
	case dx == -1 && dy == -1:
		return SouthWest, nil
	case dx == -1 && dy == 0:
		return West, nil
	case dx == -1 && dy == 1:
		return NorthWest, nil
	default:
		return 0, fmt.Errorf("%w: %v -> %v", gridgraph.ErrNotAdjacent, from, to)
	}
}

// Command is a robot instruction.
type Command string

const (
	TurnR45  Command = "TurnR45"
	TurnR90  Command = "TurnR90"
	TurnR135 Command = "TurnR135"
	Turn180  Command = "Turn180"
	TurnL135 Command = "TurnL135"
	TurnL90  Command = "TurnL90"
	TurnL45  Command = "TurnL45"
	Drive    Command = "Drive"
	Stop     Command = "Stop"
)

// turnTable is indexed by the clockwise difference between headings.
var turnTable = [8]Command{"", TurnR45, TurnR90, TurnR135, Turn180, TurnL135, TurnL90, TurnL45}

// Turn returns the command rotating the robot from one heading to another.
// It reports false when no turn is needed.
func Turn(from, to Heading) (Command, bool) {
	d := ((int(to)-int(from))%8 + 8) % 8
	if d == 0 {
		return "", false
	}

	return turnTable[d], true
}
