package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

var (
	// ErrIncompatible indicates a four-neighbor-only executor paired with an
	// 8-connected planner.
	ErrIncompatible = errors.New("executor: plan incompatible with executor")

	// ErrBadOption indicates an invalid option value.
	ErrBadOption = errors.New("executor: invalid option")
)

// Planner is the subset of *dstarlite.Planner the executor drives.
type Planner interface {
	Plan(ctx context.Context) (bool, error)
	Replan(ctx context.Context, changed ...gridgraph.Point) (bool, error)
	MoveTo(x, y int) error
	AddObstacle(x, y int) error
	IsObstacle(x, y int) (bool, error)
	IsPlanReady() bool
	Path() []gridgraph.Point
	Start() (gridgraph.Point, bool)
	State() dstarlite.State
	Connectivity() gridgraph.Connectivity
}

var _ Planner = (*dstarlite.Planner)(nil)

// World answers which obstacles exist around a cell. *gridgraph.ObstacleIndex
// implements it.
type World interface {
	Within(center gridgraph.Point, radius int) []gridgraph.Point
}

// Driver executes commands on a robot. A real robot link implements it; the
// default accepts every command.
type Driver interface {
	Execute(ctx context.Context, cmd Command) error
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(ctx context.Context, cmd Command) error

// Execute implements Driver.
func (f DriverFunc) Execute(ctx context.Context, cmd Command) error { return f(ctx, cmd) }

// Outcome is how a run ended.
type Outcome int

const (
	// ReachedGoal: the robot stands on the goal.
	ReachedGoal Outcome = iota
	// NoPath: the goal became unreachable.
	NoPath
)

// String returns the outcome text.
func (o Outcome) String() string {
	if o == ReachedGoal {
		return "goal reached"
	}

	return "no path to goal"
}

// EventKind classifies an Event.
type EventKind int

const (
	Turned EventKind = iota
	Drove
	Discovered
	Replanned
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case Turned:
		return "turned"
	case Drove:
		return "drove"
	case Discovered:
		return "discovered"
	case Replanned:
		return "replanned"
	default:
		return "unknown"
	}
}

// Event reports one robot action.
type Event struct {
	Kind      EventKind
	Position  gridgraph.Point
	Heading   Heading
	Command   Command
	Obstacles []gridgraph.Point // Discovered only
	Reachable bool              // Replanned only
}

// Result summarizes a run.
type Result struct {
	Outcome    Outcome
	Moves      int
	Replans    int
	Discovered []gridgraph.Point
	Commands   []Command
	Trace      []gridgraph.Point // visited cells, start first
	Heading    Heading           // final heading
}

// Option configures an Executor.
type Option func(*Options)

// Options holds executor parameters.
type Options struct {
	SensorRange      int
	Heading          Heading
	StepDelay        time.Duration
	FourNeighborOnly bool
	Driver           Driver
	OnEvent          func(Event)
	Logger           *slog.Logger

	err error
}

// DefaultOptions: sensor range 1, facing North, no delay, any connectivity,
// a driver that accepts every command.
func DefaultOptions() Options {
	return Options{
		SensorRange: 1,
		Heading:     North,
		Driver:      DriverFunc(func(context.Context, Command) error { return nil }),
		OnEvent:     func(Event) {},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSensorRange sets how far (Chebyshev distance) the robot sees. It must
// be at least 1 so the next cell is always sensed before driving.
func WithSensorRange(r int) Option {
	return func(o *Options) {
		if r < 1 {
			o.err = fmt.Errorf("%w: sensor range %d", ErrBadOption, r)
			return
		}
		o.SensorRange = r
	}
}

// WithHeading sets the initial heading.
func WithHeading(h Heading) Option {
	return func(o *Options) { o.Heading = h }
}

// WithStepDelay pauses between robot actions.
func WithStepDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: step delay %v", ErrBadOption, d)
			return
		}
		o.StepDelay = d
	}
}

// WithFourNeighborOnly restricts the executor to N, E, S, W moves, like a
// robot that can only turn in 90° steps.
func WithFourNeighborOnly() Option {
	return func(o *Options) { o.FourNeighborOnly = true }
}

// WithDriver sets the command sink.
func WithDriver(d Driver) Option {
	return func(o *Options) {
		if d != nil {
			o.Driver = d
		}
	}
}

// WithEvents registers an event callback.
func WithEvents(fn func(Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEvent = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
