package viewer

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
)

// Event names.
const (
	EventGrid            = "grid"
	EventVertexPopped    = "vertex_popped"
	EventGChanged        = "g_changed"
	EventRhsChanged      = "rhs_changed"
	EventComputeFinished = "compute_finished"
	EventSearchReset     = "search_reset"
	EventPath            = "path"
	EventRobot           = "robot"
)

// EmitFunc sends one event with its payload.
type EmitFunc func(event string, args ...any)

// Cell is a grid coordinate on the wire.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// KeyPayload is a queue key; nil fields mean +Inf.
type KeyPayload struct {
	Primary   *float64 `json:"primary"`
	Secondary *float64 `json:"secondary"`
}

// VertexPayload reports a popped vertex or a changed g/rhs value.
type VertexPayload struct {
	Session string      `json:"session"`
	Seq     uint64      `json:"seq"`
	X       int         `json:"x"`
	Y       int         `json:"y"`
	Value   *float64    `json:"value,omitempty"`
	Key     *KeyPayload `json:"key,omitempty"`
}

// GridPayload describes the grid layout.
type GridPayload struct {
	Session   string `json:"session"`
	Seq       uint64 `json:"seq"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Obstacles []Cell `json:"obstacles"`
}

// ComputePayload summarizes a finished computation.
type ComputePayload struct {
	Session   string   `json:"session"`
	Seq       uint64   `json:"seq"`
	Steps     int      `json:"steps"`
	Replan    bool     `json:"replan"`
	Reachable bool     `json:"reachable"`
	StartG    *float64 `json:"start_g"`
}

// PathPayload carries an extracted path.
type PathPayload struct {
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`
	Cells   []Cell `json:"cells"`
}

// RobotPayload mirrors an executor event.
type RobotPayload struct {
	Session   string `json:"session"`
	Seq       uint64 `json:"seq"`
	Kind      string `json:"kind"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Heading   string `json:"heading"`
	Command   string `json:"command,omitempty"`
	Obstacles []Cell `json:"obstacles,omitempty"`
}

// ResetPayload marks a search reset.
type ResetPayload struct {
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`
}

// Publisher implements dstarlite.Observer, dstarlite.ComputeObserver and
// dstarlite.ResetObserver on top of an EmitFunc.
type Publisher struct {
	emit    EmitFunc
	session string

	mu  sync.Mutex
	seq uint64
}

// NewPublisher creates a publisher with a fresh session id.
func NewPublisher(emit EmitFunc) *Publisher {
	return &Publisher{emit: emit, session: uuid.NewString()}
}

// Session returns the session id stamped on every payload.
func (p *Publisher) Session() string { return p.session }

// next returns the next sequence number.
func (p *Publisher) next() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++

	return p.seq
}

// OnVertexPopped implements dstarlite.Observer.
func (p *Publisher) OnVertexPopped(v gridgraph.Point, key pqueue.Key) {
	p.emit(EventVertexPopped, VertexPayload{
		Session: p.session, Seq: p.next(), X: v.X, Y: v.Y,
		Key: &KeyPayload{Primary: finite(key.Primary), Secondary: finite(key.Secondary)},
	})
}

// OnGChanged implements dstarlite.Observer.
func (p *Publisher) OnGChanged(v gridgraph.Point, g float64) {
	p.emit(EventGChanged, VertexPayload{Session: p.session, Seq: p.next(), X: v.X, Y: v.Y, Value: finite(g)})
}

// OnRhsChanged implements dstarlite.Observer.
func (p *Publisher) OnRhsChanged(v gridgraph.Point, rhs float64) {
	p.emit(EventRhsChanged, VertexPayload{Session: p.session, Seq: p.next(), X: v.X, Y: v.Y, Value: finite(rhs)})
}

// OnComputeFinished implements dstarlite.ComputeObserver.
func (p *Publisher) OnComputeFinished(s dstarlite.ComputeStats) {
	p.emit(EventComputeFinished, ComputePayload{
		Session: p.session, Seq: p.next(),
		Steps: s.Steps, Replan: s.Replan, Reachable: s.Reachable, StartG: finite(s.StartG),
	})
}

// OnSearchReset implements dstarlite.ResetObserver.
func (p *Publisher) OnSearchReset() {
	p.emit(EventSearchReset, ResetPayload{Session: p.session, Seq: p.next()})
}

// PublishGrid sends the grid dimensions and known obstacles.
func (p *Publisher) PublishGrid(width, height int, obstacles []gridgraph.Point) {
	p.emit(EventGrid, GridPayload{
		Session: p.session, Seq: p.next(), Width: width, Height: height, Obstacles: cells(obstacles),
	})
}

// PublishPath sends an extracted path.
func (p *Publisher) PublishPath(path []gridgraph.Point) {
	p.emit(EventPath, PathPayload{Session: p.session, Seq: p.next(), Cells: cells(path)})
}

// ObserveEvent forwards an executor event; pass it to executor.WithEvents.
func (p *Publisher) ObserveEvent(ev executor.Event) {
	p.emit(EventRobot, RobotPayload{
		Session:   p.session,
		Seq:       p.next(),
		Kind:      ev.Kind.String(),
		X:         ev.Position.X,
		Y:         ev.Position.Y,
		Heading:   ev.Heading.String(),
		Command:   string(ev.Command),
		Obstacles: cells(ev.Obstacles),
	})
}

func cells(ps []gridgraph.Point) []Cell {
	out := make([]Cell, len(ps))
	for i, c := range ps {
		out[i] = Cell{X: c.X, Y: c.Y}
	}

	return out
}

// finite returns nil for infinities.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}

	return &v
}
