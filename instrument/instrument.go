// Package instrument exports planner and executor activity as Prometheus
// metrics.
//
// A Collector implements dstarlite.Observer and dstarlite.ComputeObserver, so
// it is registered with dstarlite.WithObserver; its ObserveEvent method is
// passed to executor.WithEvents.
//
//	reg := prometheus.NewRegistry()
//	c := instrument.NewCollector(reg)
//	p, _ := dstarlite.New(w, h, dstarlite.WithObserver(c))
//	e, _ := executor.New(p, world, executor.WithEvents(c.ObserveEvent))
//
// Counters are updated from the planner goroutine; Prometheus metrics are
// safe to scrape concurrently.
package instrument

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
)

const namespace = "dstarlite"

// Collector holds the metric vectors.
type Collector struct {
	pops       prometheus.Counter
	gUpdates   prometheus.Counter
	rhsUpdates prometheus.Counter

	computations *prometheus.CounterVec
	steps        *prometheus.HistogramVec
	duration     *prometheus.HistogramVec

	actions    *prometheus.CounterVec
	discovered prometheus.Counter
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		pops: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vertex_pops_total",
			Help:      "Vertices extracted from the priority queue",
		}),
		gUpdates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "g_updates_total",
			Help:      "Changes of a vertex g value",
		}),
		rhsUpdates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rhs_updates_total",
			Help:      "Changes of a vertex rhs value",
		}),
		computations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Finished shortest-path computations by kind and result",
		}, []string{"kind", "result"}), // kind: plan|replan, result: reachable|unreachable
		steps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_steps",
			Help:      "Queue iterations per computation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16), // 1 to 32768
		}, []string{"kind"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Computation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~0.3s
		}, []string{"kind"}),
		actions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "robot_actions_total",
			Help:      "Executor actions by kind",
		}, []string{"kind"}),
		discovered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obstacles_discovered_total",
			Help:      "Obstacles sensed by the executor",
		}),
	}
}

// OnVertexPopped implements dstarlite.Observer.
func (c *Collector) OnVertexPopped(gridgraph.Point, pqueue.Key) { c.pops.Inc() }

// OnGChanged implements dstarlite.Observer.
func (c *Collector) OnGChanged(gridgraph.Point, float64) { c.gUpdates.Inc() }

// OnRhsChanged implements dstarlite.Observer.
func (c *Collector) OnRhsChanged(gridgraph.Point, float64) { c.rhsUpdates.Inc() }

// OnComputeFinished implements dstarlite.ComputeObserver.
func (c *Collector) OnComputeFinished(s dstarlite.ComputeStats) {
	kind := "plan"
	if s.Replan {
		kind = "replan"
	}
	result := "reachable"
	if !s.Reachable {
		result = "unreachable"
	}
	c.computations.WithLabelValues(kind, result).Inc()
	c.steps.WithLabelValues(kind).Observe(float64(s.Steps))
	c.duration.WithLabelValues(kind).Observe(s.Duration.Seconds())
}

// ObserveEvent counts an executor event.
func (c *Collector) ObserveEvent(ev executor.Event) {
	c.actions.WithLabelValues(ev.Kind.String()).Inc()
	if ev.Kind == executor.Discovered {
		c.discovered.Add(float64(len(ev.Obstacles)))
	}
}
