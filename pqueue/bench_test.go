package pqueue_test

import (
	"testing"

	"github.com/katalvlaran/dstarlite/pqueue"
)

// BenchmarkQueue_InsertRemovePop mirrors the planner's update pattern:
// remove a stale entry, insert it again, occasionally pop the minimum.
func BenchmarkQueue_InsertRemovePop(b *testing.B) {
	const n = 4096
	q := pqueue.New[int]()
	for i := 0; i < n; i++ {
		_ = q.Insert(i, pqueue.Key{float64(i % 64), float64(i)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		item := i % n
		if q.Remove(item) {
			_ = q.Insert(item, pqueue.Key{float64((i * 7) % 64), float64(i)})
		}
		if i%8 == 0 {
			if v, _, err := q.Pop(); err == nil {
				_ = q.Insert(v, pqueue.Key{float64(i % 64), 0})
			}
		}
	}
}
