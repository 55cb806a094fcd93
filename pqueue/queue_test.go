package pqueue_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dstarlite/pqueue"
)

func TestKey_Less(t *testing.T) {
	cases := []struct {
		name string
		a, b pqueue.Key
		want bool
	}{
		{"PrimaryDecides", pqueue.Key{1, 9}, pqueue.Key{2, 0}, true},
		{"PrimaryDecidesReverse", pqueue.Key{2, 0}, pqueue.Key{1, 9}, false},
		{"SecondaryBreaksTie", pqueue.Key{1, 2}, pqueue.Key{1, 3}, true},
		{"Equal", pqueue.Key{1, 2}, pqueue.Key{1, 2}, false},
		{"FiniteBeforeInfinite", pqueue.Key{1e9, 1e9}, pqueue.InfiniteKey, true},
		{"InfiniteNotBeforeInfinite", pqueue.InfiniteKey, pqueue.InfiniteKey, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Less(tc.b); got != tc.want {
				t.Errorf("%v.Less(%v) = %v; want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

// TestQueue_LexicographicOrder inserts (2,_), (1,_) tagged "b" and (1,_)
// tagged "a"; the top key must expose the smallest primary before any pop,
// and pops must follow the full lexicographic order.
func TestQueue_LexicographicOrder(t *testing.T) {
	q := pqueue.New[string]()
	require.NoError(t, q.Insert("c", pqueue.Key{2, 0}))
	require.NoError(t, q.Insert("b", pqueue.Key{1, 5}))
	require.NoError(t, q.Insert("a", pqueue.Key{1, 3}))

	require.Equal(t, 1.0, q.TopKey().Primary)
	require.Equal(t, pqueue.Key{1, 3}, q.TopKey())

	var order []string
	var keys []pqueue.Key
	for q.Len() > 0 {
		item, key, err := q.Pop()
		require.NoError(t, err)
		order = append(order, item)
		keys = append(keys, key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
	for i := 1; i < len(keys); i++ {
		assert.False(t, keys[i].Less(keys[i-1]), "key %v popped after %v", keys[i], keys[i-1])
	}
}

func TestQueue_ExactTiesPopInInsertionOrder(t *testing.T) {
	q := pqueue.New[int]()
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Insert(i, pqueue.Key{1, 1}))
	}
	for want := 0; want < 5; want++ {
		got, _, err := q.Pop()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestQueue_EmptySentinel(t *testing.T) {
	q := pqueue.New[int]()
	top := q.TopKey()
	assert.True(t, math.IsInf(top.Primary, 1))
	assert.True(t, math.IsInf(top.Secondary, 1))

	_, key, err := q.Pop()
	assert.ErrorIs(t, err, pqueue.ErrEmpty)
	assert.Equal(t, pqueue.InfiniteKey, key)
}

func TestQueue_RejectsDuplicate(t *testing.T) {
	q := pqueue.New[string]()
	require.NoError(t, q.Insert("v", pqueue.Key{3, 3}))
	err := q.Insert("v", pqueue.Key{1, 1})
	require.ErrorIs(t, err, pqueue.ErrDuplicate)

	key, ok := q.KeyOf("v")
	require.True(t, ok)
	assert.Equal(t, pqueue.Key{3, 3}, key, "rejected insert must not touch the live entry")
	assert.Equal(t, 1, q.Len())
}

func TestQueue_RemoveAndContains(t *testing.T) {
	q := pqueue.New[string]()
	require.NoError(t, q.Insert("a", pqueue.Key{1, 0}))
	require.NoError(t, q.Insert("b", pqueue.Key{2, 0}))
	require.NoError(t, q.Insert("c", pqueue.Key{3, 0}))

	assert.True(t, q.Contains("a"))
	assert.True(t, q.Remove("a"))
	assert.False(t, q.Contains("a"))
	assert.False(t, q.Remove("a"), "second remove reports absence")
	assert.Equal(t, pqueue.Key{2, 0}, q.TopKey())

	// Remove from the middle keeps the heap valid.
	assert.True(t, q.Remove("c"))
	item, _, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, "b", item)
	assert.Equal(t, 0, q.Len())

	// A removed item can be queued again.
	require.NoError(t, q.Insert("a", pqueue.Key{0, 0}))
	assert.True(t, q.Contains("a"))
}

func TestQueue_AllAndClear(t *testing.T) {
	q := pqueue.New[int]()
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Insert(i, pqueue.Key{float64(4 - i), 0}))
	}
	seen := map[int]pqueue.Key{}
	for item, key := range q.All() {
		seen[item] = key
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, pqueue.Key{1, 0}, seen[3])

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Contains(3))
	assert.Equal(t, pqueue.InfiniteKey, q.TopKey())
}

func TestQueue_RandomizedHeapOrder(t *testing.T) {
	q := pqueue.New[int]()
	// Deterministic pseudo-random keys with removals interleaved.
	x := uint32(7)
	next := func() float64 {
		x = x*1664525 + 1013904223
		return float64(x % 97)
	}
	for i := 0; i < 200; i++ {
		require.NoError(t, q.Insert(i, pqueue.Key{next(), next()}))
	}
	for i := 0; i < 200; i += 3 {
		require.True(t, q.Remove(i))
	}
	prev := pqueue.Key{math.Inf(-1), math.Inf(-1)}
	for q.Len() > 0 {
		_, key, err := q.Pop()
		require.NoError(t, err)
		require.False(t, key.Less(prev), "heap order violated: %v after %v", key, prev)
		prev = key
	}
}
