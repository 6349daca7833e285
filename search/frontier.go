package search

import (
	"container/heap"

	"github.com/katalvlaran/spellduel/duel"
)

// node is one open state. parent and cast are set only when tracing.
type node struct {
	state  duel.State
	parent *node
	cast   duel.EffectID
	seq    int // insertion order, breaks BestFirst ties
}

// casts walks parent links back to the root and returns the Attacker's casts
// in play order.
func (n *node) casts() []duel.EffectID {
	var out []duel.EffectID
	for cur := n; cur != nil; cur = cur.parent {
		if cur.cast != duel.NoCast {
			out = append(out, cur.cast)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// frontier is the open set of a sequential walker.
type frontier interface {
	push(n *node)
	pop() *node
	len() int
}

// fifoQueue pops in push order. The head index avoids re-slicing a large
// backing array on every pop; it is compacted once half of it is dead.
type fifoQueue struct {
	items []*node
	head  int
}

func (q *fifoQueue) push(n *node) { q.items = append(q.items, n) }

func (q *fifoQueue) pop() *node {
	n := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}

	return n
}

func (q *fifoQueue) len() int { return len(q.items) - q.head }

// costHeap is a min-heap ordered by Spent, then insertion order.
type costHeap []*node

func (h costHeap) Len() int { return len(h) }

func (h costHeap) Less(i, j int) bool {
	if h[i].state.Spent != h[j].state.Spent {
		return h[i].state.Spent < h[j].state.Spent
	}

	return h[i].seq < h[j].seq
}

func (h costHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push is called by heap.Push; x must be *node.
func (h *costHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }

// Pop is called by heap.Pop.
func (h *costHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return item
}

// heapFrontier adapts costHeap to frontier.
type heapFrontier struct {
	h costHeap
}

func (f *heapFrontier) push(n *node) { heap.Push(&f.h, n) }
func (f *heapFrontier) pop() *node   { return heap.Pop(&f.h).(*node) }
func (f *heapFrontier) len() int     { return f.h.Len() }
