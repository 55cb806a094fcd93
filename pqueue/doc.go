// Package pqueue provides the keyed min-queue that drives D* Lite expansion
// order.
//
// What:
//
//   - Key is an ordered pair compared lexicographically: Primary first,
//     Secondary breaks ties.
//   - Queue[T] stores (Key, item) pairs and yields the item with the smallest
//     Key. Exact key ties are resolved in insertion order.
//   - Every item appears at most once. Callers remove a stale entry before
//     inserting the item again with a new key.
//
// Complexity:
//
//   - Insert, Pop, Remove: O(log n) (binary heap with a position index).
//   - TopKey, Contains, Len: O(1).
//   - All: O(n), in heap order (not sorted).
//
// Errors:
//
//   - ErrDuplicate: Insert of an item that is already queued.
//   - ErrEmpty: Pop on an empty queue.
package pqueue
