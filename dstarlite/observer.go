package dstarlite

import (
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
)

// Observer receives synchronous notifications of planner state changes, in
// the order they happen. Implementations must not call mutating Planner
// methods; such calls fail with ErrReentrant.
type Observer interface {
	// OnVertexPopped is called when a vertex is extracted from the queue.
	OnVertexPopped(v gridgraph.Point, key pqueue.Key)

	// OnGChanged is called after g(v) changed.
	OnGChanged(v gridgraph.Point, g float64)

	// OnRhsChanged is called after rhs(v) changed.
	OnRhsChanged(v gridgraph.Point, rhs float64)
}

// ComputeObserver is implemented by observers that also want a summary of
// each finished ComputeShortestPath call.
type ComputeObserver interface {
	OnComputeFinished(stats ComputeStats)
}

// ResetObserver is implemented by observers that track the whole grid and
// need to know when every g and rhs was reset to +Inf at once.
type ResetObserver interface {
	OnSearchReset()
}

// ObserverFuncs adapts optional functions to Observer, ComputeObserver and
// ResetObserver. Nil fields are skipped.
type ObserverFuncs struct {
	VertexPopped    func(v gridgraph.Point, key pqueue.Key)
	GChanged        func(v gridgraph.Point, g float64)
	RhsChanged      func(v gridgraph.Point, rhs float64)
	ComputeFinished func(stats ComputeStats)
	SearchReset     func()
}

// OnVertexPopped implements Observer.
func (f ObserverFuncs) OnVertexPopped(v gridgraph.Point, key pqueue.Key) {
	if f.VertexPopped != nil {
		f.VertexPopped(v, key)
	}
}

// OnGChanged implements Observer.
func (f ObserverFuncs) OnGChanged(v gridgraph.Point, g float64) {
	if f.GChanged != nil {
		f.GChanged(v, g)
	}
}

// OnRhsChanged implements Observer.
func (f ObserverFuncs) OnRhsChanged(v gridgraph.Point, rhs float64) {
	if f.RhsChanged != nil {
		f.RhsChanged(v, rhs)
	}
}

// OnComputeFinished implements ComputeObserver.
func (f ObserverFuncs) OnComputeFinished(stats ComputeStats) {
	if f.ComputeFinished != nil {
		f.ComputeFinished(stats)
	}
}

// OnSearchReset implements ResetObserver.
func (f ObserverFuncs) OnSearchReset() {
	if f.SearchReset != nil {
		f.SearchReset()
	}
}

// multiObserver fans notifications out in registration order.
type multiObserver []Observer

// MultiObserver combines observers. Optional interfaces are forwarded to
// the members that implement them.
func MultiObserver(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}

	return out
}

func (m multiObserver) OnVertexPopped(v gridgraph.Point, key pqueue.Key) {
	for _, o := range m {
		o.OnVertexPopped(v, key)
	}
}

func (m multiObserver) OnGChanged(v gridgraph.Point, g float64) {
	for _, o := range m {
		o.OnGChanged(v, g)
	}
}

func (m multiObserver) OnRhsChanged(v gridgraph.Point, rhs float64) {
	for _, o := range m {
		o.OnRhsChanged(v, rhs)
	}
}

func (m multiObserver) OnComputeFinished(stats ComputeStats) {
	for _, o := range m {
		if co, ok := o.(ComputeObserver); ok {
			co.OnComputeFinished(stats)
		}
	}
}

func (m multiObserver) OnSearchReset() {
	for _, o := range m {
		if ro, ok := o.(ResetObserver); ok {
			ro.OnSearchReset()
		}
	}
}
