package pqueue

import (
	"container/heap"
	"errors"
	"iter"
)

var (
	// ErrDuplicate indicates an Insert of an item that is already queued.
	ErrDuplicate = errors.New("pqueue: item already queued")

	// ErrEmpty indicates a Pop on an empty queue.
	ErrEmpty = errors.New("pqueue: queue is empty")
)

// entry is one heap slot. seq records insertion order for exact-tie breaking.
type entry[T comparable] struct {
	item  T
	key   Key
	seq   uint64
	index int
}

// entryHeap implements heap.Interface over *entry and keeps index current.
type entryHeap[T comparable] []*entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].key.Less(h[j].key) {
		return true
	}
	if h[j].key.Less(h[i].key) {
		return false
	}

	return h[i].seq < h[j].seq
}

func (h entryHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]

	return e
}

// Queue is a keyed min-queue over comparable items. The zero value is not
// usable; call New.
type Queue[T comparable] struct {
	heap  entryHeap[T]
	live  map[T]*entry[T]
	nextS uint64
}

// New returns an empty queue.
func New[T comparable]() *Queue[T] {
	return &Queue[T]{
		heap: make(entryHeap[T], 0),
		live: make(map[T]*entry[T]),
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.heap) }

// Insert queues item with key. It returns ErrDuplicate if item is already
// present; the queue is left unchanged in that case.
func (q *Queue[T]) Insert(item T, key Key) error {
	if _, ok := q.live[item]; ok {
		return ErrDuplicate
	}
	e := &entry[T]{item: item, key: key, seq: q.nextS}
	q.nextS++
	heap.Push(&q.heap, e)
	q.live[item] = e

	return nil
}

// Pop removes and returns the item with the smallest key together with the
// key it was queued with.
func (q *Queue[T]) Pop() (T, Key, error) {
	if len(q.heap) == 0 {
		var zero T
		return zero, InfiniteKey, ErrEmpty
	}
	e := heap.Pop(&q.heap).(*entry[T])
	delete(q.live, e.item)

	return e.item, e.key, nil
}

// TopKey returns the smallest key, or InfiniteKey when the queue is empty.
func (q *Queue[T]) TopKey() Key {
	if len(q.heap) == 0 {
		return InfiniteKey
	}

	return q.heap[0].key
}

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.live[item]
	return ok
}

// KeyOf returns the key item is queued with.
func (q *Queue[T]) KeyOf(item T) (Key, bool) {
	e, ok := q.live[item]
	if !ok {
		return Key{}, false
	}

	return e.key, true
}

// Remove deletes item from the queue and reports whether it was present.
func (q *Queue[T]) Remove(item T) bool {
	e, ok := q.live[item]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, e.index)
	delete(q.live, item)

	return true
}

// Clear drops every entry.
func (q *Queue[T]) Clear() {
	clear(q.heap)
	q.heap = q.heap[:0]
	clear(q.live)
}

// All yields every queued item with its key in heap order. The queue must not
// be modified during iteration.
func (q *Queue[T]) All() iter.Seq2[T, Key] {
	return func(yield func(T, Key) bool) {
		for _, e := range q.heap {
			if !yield(e.item, e.key) {
				return
			}
		}
	}
}
