// Package executor drives a simulated robot along a dstarlite plan.
//
// What
//
//   - Executor walks the current path one cell at a time. Before every
//     drive it turns the robot toward the next cell and senses the world
//     within SensorRange (Chebyshev distance) of the robot.
//   - Obstacles present in the world but unknown to the planner are marked
//     with AddObstacle and passed to Replan in one batch; execution then
//     continues on the repaired path.
//   - The robot keeps one of 8 headings. Turns and drives are emitted as
//     EV3-style commands (TurnR90, TurnL45, Drive, ...) to a Driver, which is
//     a no-op for pure simulation.
//
// Orientation
//
//	y+1 is North, x+1 is East. Headings are numbered clockwise from North in
//	45° steps, so the turn between two headings is their difference mod 8.
//
// Errors
//
//   - ErrIncompatible: a four-neighbor-only executor was given an
//     8-connected planner.
//   - ErrBadOption: invalid sensor range or step delay.
//
// Unreachable goals end a run with Outcome NoPath and a nil error.
package executor
