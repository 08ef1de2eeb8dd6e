package sim

import "container/heap"

// eventHeap is the container/heap.Interface implementation backing
// EventQueue, grounded on the priorityPointHeap idiom: a plain slice with
// Len/Less/Swap/Push/Pop, ordered by (Time, Seq) for a deterministic
// tie-break on equal times.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Seq < h[j].Seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// EventQueue is the min-heap event priority queue keyed by event time.
// Invalid entries remain in the heap until popped, then are discarded —
// size() below still counts them.
type EventQueue struct {
	h       eventHeap
	nextSeq uint64
}

func newEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.h)
	return q
}

// push enqueues e, stamping it with the next monotone sequence number.
func (q *EventQueue) push(e *Event) {
	e.Seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, e)
}

// popNextValid repeatedly discards invalid entries from the top and
// returns the first valid one, or nil if the queue is exhausted.
func (q *EventQueue) popNextValid(balls []*Ball) *Event {
	for q.h.Len() > 0 {
		e := heap.Pop(&q.h).(*Event)
		if e.isValid(balls) {
			return e
		}
	}
	return nil
}

// size returns the number of entries in the queue, including invalidated
// ones not yet reaped.
func (q *EventQueue) size() int {
	return q.h.Len()
}
