package queue

import (
	"container/heap"
	"strings"
)

// Priorizable is an item of a MinHeap. Lower priorities are popped first.
type Priorizable interface {
	Priority() float64
	String() string
}

// MinHeap is a binary min-heap with a deterministic order for equal priorities.
type MinHeap[T Priorizable] struct {
	queue priorityQueue[T]
}

// NewMinHeap creates a heap holding items. tieBreak reports whether a should be
// popped before b when both have the same priority; nil leaves ties unordered.
func NewMinHeap[T Priorizable](tieBreak func(a, b T) bool, items ...T) *MinHeap[T] {
	h := &MinHeap[T]{queue: priorityQueue[T]{items: make([]T, len(items)), tieBreak: tieBreak}}
	copy(h.queue.items, items)
	heap.Init(&h.queue)
	return h
}

// Implements heap.Interface
type priorityQueue[T Priorizable] struct {
	items    []T
	tieBreak func(a, b T) bool
}

func (q priorityQueue[T]) Len() int { return len(q.items) }
func (q priorityQueue[T]) Less(i, j int) bool {
	pi, pj := q.items[i].Priority(), q.items[j].Priority()
	if pi != pj || q.tieBreak == nil {
		return pi < pj
	}
	return q.tieBreak(q.items[i], q.items[j])
}
func (q priorityQueue[T]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *priorityQueue[T]) Push(item any) {
	q.items = append(q.items, item.(T))
}
func (q *priorityQueue[T]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero // for safety
	q.items = old[:n-1]
	return item
}

func (h *MinHeap[T]) Len() int    { return h.queue.Len() }
func (h *MinHeap[T]) Push(item T) { heap.Push(&h.queue, item) }
func (h *MinHeap[T]) Pop() T      { return heap.Pop(&h.queue).(T) }
func (h *MinHeap[T]) Peek() T     { return h.queue.items[0] }
func (h *MinHeap[T]) String() string {
	var sb strings.Builder
	for _, item := range h.queue.items {
		sb.WriteString(item.String())
	}
	return sb.String()
}
