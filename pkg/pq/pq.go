// Package pq implements an indexed min-priority queue with decrease-key.
//
// Keys are unique: pushing a key that is already queued updates its priority
// instead of adding a second entry. Entries with equal priority pop in
// ascending key order, so search results do not depend on insertion order.
package pq

import (
	"cmp"
	"container/heap"
)

type entry[K cmp.Ordered] struct {
	key      K
	priority int64
	index    int
}

type entries[K cmp.Ordered] []*entry[K]

func (h entries[K]) Len() int { return len(h) }

func (h entries[K]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].key < h[j].key
}

func (h entries[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entries[K]) Push(x any) {
	e := x.(*entry[K])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entries[K]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a min-priority queue keyed by K.
// The zero value is not usable - use New.
type Queue[K cmp.Ordered] struct {
	heap  entries[K]
	index map[K]*entry[K]
}

// New creates an empty queue with room for capacity keys.
func New[K cmp.Ordered](capacity int) *Queue[K] {
	return &Queue[K]{
		heap:  make(entries[K], 0, capacity),
		index: make(map[K]*entry[K], capacity),
	}
}

// Len returns the number of queued keys.
func (q *Queue[K]) Len() int { return len(q.heap) }

// Empty reports whether the queue holds no keys.
func (q *Queue[K]) Empty() bool { return len(q.heap) == 0 }

// Contains reports whether key is currently queued.
func (q *Queue[K]) Contains(key K) bool {
	_, ok := q.index[key]
	return ok
}

// Push inserts key with the given priority. If key is already queued its
// priority is replaced.
func (q *Queue[K]) Push(key K, priority int64) {
	if e, ok := q.index[key]; ok {
		e.priority = priority
		heap.Fix(&q.heap, e.index)
		return
	}
	e := &entry[K]{key: key, priority: priority}
	heap.Push(&q.heap, e)
	q.index[key] = e
}

// DecreaseKey lowers the priority of a queued key. It returns false, leaving
// the queue untouched, when key is not queued or priority is not lower than
// the current one.
func (q *Queue[K]) DecreaseKey(key K, priority int64) bool {
	e, ok := q.index[key]
	if !ok || priority >= e.priority {
		return false
	}
	e.priority = priority
	heap.Fix(&q.heap, e.index)
	return true
}

// Pop removes and returns the key with the lowest priority. Ties are broken by
// the lowest key. Pop panics on an empty queue.
func (q *Queue[K]) Pop() (K, int64) {
	e := heap.Pop(&q.heap).(*entry[K])
	delete(q.index, e.key)
	return e.key, e.priority
}
