package dstarlite_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/dstarlite/dstarlite"
	"github.com/katalvlaran/dstarlite/gridgraph"
)

// BenchmarkPlan measures a full plan on an open 100×100 grid.
func BenchmarkPlan(b *testing.B) {
	for _, conn := range []gridgraph.Connectivity{gridgraph.Conn4, gridgraph.Conn8} {
		b.Run(conn.String(), func(b *testing.B) {
			p, _ := dstarlite.New(100, 100, dstarlite.WithConnectivity(conn))
			_ = p.SetStart(0, 0)
			_ = p.SetGoal(99, 99)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := p.Plan(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkReplan measures the incremental repair after one blocked cell
// against planning from scratch.
func BenchmarkReplan(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		p, _ := dstarlite.New(100, 100, dstarlite.WithConnectivity(gridgraph.Conn8))
		_ = p.SetStart(0, 0)
		_ = p.SetGoal(99, 99)
		_, _ = p.Plan(ctx)
		c := p.Path()[len(p.Path())/2]
		_ = p.AddObstacle(c.X, c.Y)
		b.StartTimer()
		if _, err := p.Replan(ctx, c); err != nil {
			b.Fatal(err)
		}
	}
}
