package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/dstarlite/dijkstra"
	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/instrument"
	"github.com/katalvlaran/dstarlite/internal/ctxlog"
	"github.com/katalvlaran/dstarlite/scenario"
	"github.com/katalvlaran/dstarlite/viewer"
)

var (
	// ErrNoPath indicates that the goal is, or became, unreachable.
	ErrNoPath = errors.New("goal unreachable")

	// ErrVerify indicates that the planner disagreed with the Dijkstra
	// reference.
	ErrVerify = errors.New("verification against dijkstra failed")
)

// App runs one scenario.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	registry *prometheus.Registry
	metrics  *instrument.Collector

	// set once the metrics server is listening
	metricsAddr string
}

// NewApp builds an App writing the report to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	reg := prometheus.NewRegistry()

	return &App{
		outW:     outW,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		cfg:      cfg,
		registry: reg,
		metrics:  instrument.NewCollector(reg),
	}
}

// Run loads the scenario, plans, optionally verifies, and executes.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.logger.Debug("App.Run started", "scenario", a.cfg.ScenarioPath)

	s, err := scenario.Load(ctx, a.cfg.ScenarioPath, a.cfg.Vars)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	fmt.Fprintf(a.outW, "scenario %s: %dx%d conn=%v start=%v goal=%v known=%d hidden=%d\n",
		s.Name, s.Width, s.Height, s.Connectivity, s.Start, s.Goal, len(s.Known), len(s.Hidden))

	if a.cfg.MetricsAddr != "" {
		if a.metricsAddr, err = a.startMetricsServer(ctx, a.cfg.MetricsAddr, a.registry); err != nil {
			return err
		}
	}

	opts := []dstarlite.Option{dstarlite.WithLogger(a.logger), dstarlite.WithObserver(a.metrics)}
	var pub *viewer.Publisher
	if a.cfg.ViewerURL != "" {
		client, err := viewer.Dial(ctx, a.cfg.ViewerURL, a.cfg.ViewerNamespace, a.logger)
		if err != nil {
			return err
		}
		defer client.Close()
		pub = client.Publisher
		opts = append(opts, dstarlite.WithObserver(pub))
	}

	p, err := s.Planner(opts...)
	if err != nil {
		return fmt.Errorf("failed to build planner: %w", err)
	}
	if pub != nil {
		pub.PublishGrid(p.Width(), p.Height(), p.Obstacles())
	}

	ok, err := p.Plan(ctx)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}
	a.reportPlan(p)
	if a.cfg.Verify {
		if err = a.verify(p); err != nil {
			return err
		}
	}
	if !ok {
		return a.explainUnreachable(p)
	}
	if pub != nil {
		pub.PublishPath(p.Path())
	}
	if a.cfg.PlanOnly {
		return nil
	}

	execOpts := append(s.ExecutorOptions(),
		executor.WithLogger(a.logger),
		executor.WithEvents(func(ev executor.Event) {
			a.metrics.ObserveEvent(ev)
			if pub != nil {
				pub.ObserveEvent(ev)
				if ev.Kind == executor.Replanned {
					pub.PublishPath(p.Path())
				}
			}
		}),
	)
	if a.cfg.StepDelay >= 0 {
		execOpts = append(execOpts, executor.WithStepDelay(a.cfg.StepDelay))
	}
	e, err := executor.New(p, s.World(), execOpts...)
	if err != nil {
		return err
	}
	res, err := e.Run(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	fmt.Fprintf(a.outW, "execution: %v moves=%d replans=%d discovered=%d commands=%d heading=%v\n",
		res.Outcome, res.Moves, res.Replans, len(res.Discovered), len(res.Commands), res.Heading)
	if res.Outcome == executor.NoPath {
		return a.explainUnreachable(p)
	}
	if a.cfg.Verify {
		if err = a.verify(p); err != nil {
			return err
		}
	}
	a.logger.Debug("App.Run finished")

	return nil
}

func (a *App) reportPlan(p *dstarlite.Planner) {
	start, _ := p.Start()
	g, _ := p.G(start.X, start.Y)
	if !p.IsPlanReady() {
		fmt.Fprintf(a.outW, "plan: unreachable steps=%d\n", p.StepCount())
		return
	}
	fmt.Fprintf(a.outW, "plan: reachable cost=%.4g steps=%d cells=%d path=%v\n",
		g, p.StepCount(), len(p.Path()), p.Path())
}

// verify compares g(start) with a static Dijkstra from the goal.
func (a *App) verify(p *dstarlite.Planner) error {
	start, _ := p.Start()
	goal, _ := p.Goal()
	res, err := dijkstra.Distances(p.Grid(), dijkstra.Source(goal))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	want := res.Distance(start)
	got, _ := p.G(start.X, start.Y)
	same := (math.IsInf(want, 1) && math.IsInf(got, 1)) || math.Abs(want-got) < 1e-9
	if !same {
		return fmt.Errorf("%w: g(start)=%v dijkstra=%v", ErrVerify, got, want)
	}
	fmt.Fprintf(a.outW, "verify: ok cost=%.4g\n", want)

	return nil
}

// explainUnreachable reports the fewest obstacles blocking the goal.
func (a *App) explainUnreachable(p *dstarlite.Planner) error {
	start, _ := p.Start()
	goal, _ := p.Goal()
	blocking, _, err := p.Grid().MinClearance(start, goal)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "no path from %v to %v; clearing %d obstacle(s) would open one: %v\n",
		start, goal, len(blocking), blocking)
	a.logger.Warn("goal unreachable",
		"start", start.String(), "goal", goal.String(), "components", len(p.Grid().ConnectedComponents()))

	return fmt.Errorf("%w: %v -> %v", ErrNoPath, start, goal)
}
