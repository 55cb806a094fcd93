package viewer_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/executor"
	"github.com/katalvlaran/dstarlite/gridgraph"
	"github.com/katalvlaran/dstarlite/pqueue"
	"github.com/katalvlaran/dstarlite/viewer"
)

type emitted struct {
	event   string
	payload any
}

type recorder struct{ events []emitted }

func (r *recorder) emit(event string, args ...any) {
	var payload any
	if len(args) > 0 {
		payload = args[0]
	}
	r.events = append(r.events, emitted{event, payload})
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e.event == event {
			n++
		}
	}

	return n
}

func TestPublisher_Payloads(t *testing.T) {
	rec := &recorder{}
	pub := viewer.NewPublisher(rec.emit)
	_, err := uuid.Parse(pub.Session())
	require.NoError(t, err)

	pub.OnGChanged(gridgraph.Point{X: 1, Y: 2}, math.Inf(1))
	pub.OnRhsChanged(gridgraph.Point{X: 1, Y: 2}, 3.5)
	pub.OnVertexPopped(gridgraph.Point{X: 0, Y: 0}, pqueue.InfiniteKey)
	pub.PublishPath([]gridgraph.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})

	require.Len(t, rec.events, 4)
	g := rec.events[0].payload.(viewer.VertexPayload)
	assert.Nil(t, g.Value)
	assert.Equal(t, uint64(1), g.Seq)
	rhs := rec.events[1].payload.(viewer.VertexPayload)
	require.NotNil(t, rhs.Value)
	assert.Equal(t, 3.5, *rhs.Value)
	assert.Equal(t, pub.Session(), rhs.Session)

	for _, e := range rec.events {
		_, err := json.Marshal(e.payload)
		assert.NoError(t, err, e.event)
	}
	raw, err := json.Marshal(rec.events[0].payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"x":1`)
	assert.NotContains(t, string(raw), "value")
	raw, err = json.Marshal(rec.events[3].payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cells":[{"x":0,"y":0},{"x":1,"y":0}]`)
}

func TestPublisher_AsObserver(t *testing.T) {
	rec := &recorder{}
	pub := viewer.NewPublisher(rec.emit)
	p, err := dstarlite.New(4, 3, dstarlite.WithObserver(pub))
	require.NoError(t, err)
	require.NoError(t, p.SetStart(0, 0))
	require.NoError(t, p.SetGoal(3, 2))
	pub.PublishGrid(p.Width(), p.Height(), p.Obstacles())

	_, err = p.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p.StepCount(), rec.count(viewer.EventVertexPopped))
	assert.Equal(t, 1, rec.count(viewer.EventComputeFinished))
	assert.Equal(t, 1, rec.count(viewer.EventGrid))
	assert.Positive(t, rec.count(viewer.EventGChanged))

	e, err := executor.New(p, gridgraph.NewObstacleIndex(nil), executor.WithEvents(pub.ObserveEvent))
	require.NoError(t, err)
	res, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.count(viewer.EventRobot), res.Moves)

	var last uint64
	for _, ev := range rec.events {
		seq := seqOf(t, ev.payload)
		assert.Greater(t, seq, last, ev.event)
		last = seq
	}
}

func seqOf(t *testing.T, payload any) uint64 {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var s struct {
		Seq uint64 `json:"seq"`
	}
	require.NoError(t, json.Unmarshal(raw, &s))

	return s.Seq
}

func TestDial_BadURL(t *testing.T) {
	for _, u := range []string{"::not a url", "localhost:3000", ""} {
		_, err := viewer.Dial(context.Background(), u, "/", nil)
		assert.ErrorIs(t, err, viewer.ErrConnect, u)
	}
}
