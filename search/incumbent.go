package search

import (
	"math"
	"sync"
	"sync/atomic"
)

// unbounded is the incumbent cost before any win is known.
const unbounded = math.MaxInt64

// incumbent is the best winning cost found so far. The cost is read without
// locking; winners only ever lower it.
type incumbent struct {
	cost atomic.Int64

	mu  sync.Mutex
	win *node
}

func newIncumbent() *incumbent {
	b := &incumbent{}
	b.cost.Store(unbounded)

	return b
}

// load returns the current best cost, or unbounded.
func (b *incumbent) load() int64 { return b.cost.Load() }

// beats reports whether spent is strictly cheaper than the incumbent.
func (b *incumbent) beats(spent int) bool { return int64(spent) < b.cost.Load() }

// offer takes the minimum of the incumbent and n's Spent. It reports whether
// n improved the incumbent.
func (b *incumbent) offer(n *node) bool {
	c := int64(n.state.Spent)
	for {
		cur := b.cost.Load()
		if c >= cur {
			return false
		}
		if b.cost.CompareAndSwap(cur, c) {
			break
		}
	}

	b.mu.Lock()
	if b.win == nil || n.state.Spent < b.win.state.Spent {
		b.win = n
	}
	b.mu.Unlock()

	return true
}

// winner returns the cheapest winning node, or nil.
func (b *incumbent) winner() *node {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.win
}
