package dstarlite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dstarlite/gridgraph"
)

// tracerName identifies spans created by this package.
const tracerName = "github.com/katalvlaran/dstarlite/dstarlite"

// StepHook runs at every iteration boundary of ComputeShortestPath. A non-nil
// error aborts the computation and is returned to the caller; the planner can
// resume by calling ComputeShortestPath again.
type StepHook func(ctx context.Context, step Step) error

// Option configures a Planner via functional arguments. An invalid Option is
// recorded and surfaced as ErrConfiguration by New.
type Option func(*Options)

// Options holds planner parameters and collaborators.
type Options struct {
	// Connectivity selects 4- or 8-neighbor movement.
	Connectivity gridgraph.Connectivity

	// Heuristic enables the distance heuristic. When false h is 0 and the
	// search degrades to a uniform-cost expansion with more steps.
	Heuristic bool

	// Observer receives per-mutation notifications. Nil means none.
	Observer Observer

	// StepHook runs between iterations. Nil means none.
	StepHook StepHook

	// StepDelay pauses between iterations, honoring cancellation.
	StepDelay time.Duration

	// Logger receives Debug records around plan and replan boundaries.
	Logger *slog.Logger

	// Tracer creates spans for ComputeShortestPath and Replan.
	Tracer trace.Tracer

	err error
}

// DefaultOptions returns Options with sane defaults:
//   - Conn4 movement, heuristic enabled
//   - no observer, no step hook, no delay
//   - a logger that discards output
//   - the global OpenTelemetry tracer (a no-op unless configured)
func DefaultOptions() Options {
	return Options{
		Connectivity: gridgraph.Conn4,
		Heuristic:    true,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:       otel.Tracer(tracerName),
	}
}

// WithConnectivity selects 4- or 8-neighbor movement.
func WithConnectivity(c gridgraph.Connectivity) Option {
	return func(o *Options) {
		if c != gridgraph.Conn4 && c != gridgraph.Conn8 {
			o.err = fmt.Errorf("%w: unknown connectivity %d", ErrConfiguration, c)
			return
		}
		o.Connectivity = c
	}
}

// WithHeuristic enables or disables the distance heuristic.
func WithHeuristic(enabled bool) Option {
	return func(o *Options) { o.Heuristic = enabled }
}

// WithObserver registers an observer. Calling it more than once combines the
// observers in registration order.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		switch {
		case obs == nil:
		case o.Observer == nil:
			o.Observer = obs
		default:
			o.Observer = MultiObserver(o.Observer, obs)
		}
	}
}

// WithStepHook registers a hook run at every iteration boundary.
func WithStepHook(fn StepHook) Option {
	return func(o *Options) {
		if fn != nil {
			o.StepHook = fn
		}
	}
}

// WithStepDelay pauses for d after every iteration ("slow step" mode).
//
//	d > 0: pause
//	d == 0: run to result
//	d < 0: invalid option → ErrConfiguration
func WithStepDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: step delay cannot be negative (%v)", ErrConfiguration, d)
			return
		}
		o.StepDelay = d
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

// WithTracer sets the tracer used for spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}
