package search

import (
	"context"
	"fmt"

	"github.com/katalvlaran/spellduel/duel"
)

// MinCost returns the minimum mana the Attacker must spend to win from
// initial under rules.
//
// A Result with Found == false means no winning line exists; it is returned
// with a nil error. On cancellation, ErrTimeLimit or ErrStateLimit the
// partial Result (best cost found so far) is returned along with the error.
func MinCost(rules duel.Rules, initial duel.State, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if o.Workers > 1 && o.Strategy != FIFO {
		return Result{}, fmt.Errorf("%w: %s is sequential only", ErrOptionViolation, o.Strategy)
	}
	if err := validateStart(initial); err != nil {
		return Result{}, err
	}

	x := &expander{rules: rules, best: newIncumbent(), opts: o}
	root := &node{state: initial, cast: duel.NoCast}

	if o.Workers > 1 {
		p := newPool(x, o)
		err := p.run(root)

		return result(x.best, p.stats, o.Trace), err
	}

	w := newWalker(x, o)
	err := w.run(root)

	return result(x.best, w.stats, o.Trace), err
}

func validateStart(s duel.State) error {
	switch {
	case s.Spent < 0:
		return fmt.Errorf("%w: spent %d", ErrInvalidStart, s.Spent)
	case s.Mana < 0:
		return fmt.Errorf("%w: mana %d", ErrInvalidStart, s.Mana)
	case s.HP < 0:
		return fmt.Errorf("%w: hit points %d", ErrInvalidStart, s.HP)
	case s.DefenderHP < 0:
		return fmt.Errorf("%w: defender hit points %d", ErrInvalidStart, s.DefenderHP)
	case s.DefenderDamage < 0:
		return fmt.Errorf("%w: defender damage %d", ErrInvalidStart, s.DefenderDamage)
	}
	for id, t := range s.Timers {
		if t < 0 {
			return fmt.Errorf("%w: %s timer %d", ErrInvalidStart, duel.EffectID(id), t)
		}
	}

	return nil
}

// walker encapsulates mutable state of a sequential search.
type walker struct {
	x        *expander
	ctx      context.Context
	strategy Strategy
	open     frontier
	seen     map[duel.State]int // Key() -> lowest Spent pushed
	budget   budget
	maxSt    int
	seq      int
	stats    Stats
	scratch  []*node
}

func newWalker(x *expander, o Options) *walker {
	w := &walker{
		x:        x,
		ctx:      o.Ctx,
		strategy: o.Strategy,
		budget:   newBudget(o.TimeLimit),
		maxSt:    o.MaxStates,
	}
	if o.Strategy == BestFirst {
		w.open = &heapFrontier{}
	} else {
		w.open = &fifoQueue{}
	}
	if o.Dedupe {
		w.seen = make(map[duel.State]int)
	}

	return w
}

// run seeds the frontier with root and loops until it drains.
func (w *walker) run(root *node) error {
	w.push(root)

	return w.loop()
}

// loop pops, prunes, and expands until the frontier is empty, an error
// occurs, or the context is cancelled.
func (w *walker) loop() error {
	for w.open.len() > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}
		if w.budget.expired() {
			return ErrTimeLimit
		}
		if w.maxSt > 0 && w.stats.Expanded >= w.maxSt {
			return fmt.Errorf("%w: %d states expanded", ErrStateLimit, w.stats.Expanded)
		}

		n := w.open.pop()
		if !w.x.best.beats(n.state.Spent) {
			w.stats.Pruned++
			if w.strategy == BestFirst {
				// Every remaining state costs at least as much.
				w.stats.Pruned += w.open.len()
				return nil
			}
			continue
		}

		var err error
		w.scratch, err = w.x.expand(n, &w.stats, w.scratch[:0])
		if err != nil {
			return err
		}
		for _, child := range w.scratch {
			w.push(child)
		}
	}

	return nil
}

// push admits n to the frontier unless the transposition table already holds
// an equal state at lower or equal cost.
func (w *walker) push(n *node) {
	if w.seen != nil {
		key := n.state.Key()
		if prev, ok := w.seen[key]; ok && prev <= n.state.Spent {
			w.stats.Deduplicated++
			return
		}
		w.seen[key] = n.state.Spent
	}
	n.seq = w.seq
	w.seq++
	w.open.push(n)
}
