package search

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spellduel/duel"
)

// chunksPerWorker oversplits each level so that uneven subtrees balance out.
const chunksPerWorker = 4

// pool runs a level-synchronous FIFO search: every state of one level is
// expanded by the worker group before the next level is assembled. Levels are
// merged by the coordinating goroutine alone, so the transposition table
// needs no lock.
type pool struct {
	x       *expander
	ctx     context.Context
	workers int
	opts    Options
	budget  budget
	seen    map[duel.State]int
	stats   Stats

	// expansions claimed across workers; bounds MaxStates exactly
	claimed atomic.Int64
}

func newPool(x *expander, o Options) *pool {
	p := &pool{x: x, ctx: o.Ctx, workers: o.Workers, opts: o, budget: newBudget(o.TimeLimit)}
	if o.Dedupe {
		p.seen = make(map[duel.State]int)
	}

	return p
}

func (p *pool) run(root *node) error {
	level := []*node{root}
	for len(level) > 0 {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		if p.budget.passed() {
			return ErrTimeLimit
		}
		if p.opts.MaxStates > 0 && p.stats.Expanded >= p.opts.MaxStates {
			return p.stateLimit()
		}

		next, err := p.expandLevel(level)
		if err != nil {
			return err
		}
		level = p.merge(next)
	}

	return nil
}

// claim reserves one expansion under MaxStates.
func (p *pool) claim() bool {
	if p.opts.MaxStates <= 0 {
		return true
	}

	return p.claimed.Add(1) <= int64(p.opts.MaxStates)
}

func (p *pool) stateLimit() error {
	return fmt.Errorf("%w: %d states expanded", ErrStateLimit, p.opts.MaxStates)
}

// expandLevel splits level into chunks and expands them concurrently.
// Each chunk owns its output slice and Stats, merged after Wait.
func (p *pool) expandLevel(level []*node) ([][]*node, error) {
	chunks := split(level, p.workers*chunksPerWorker)
	outs := make([][]*node, len(chunks))
	stats := make([]Stats, len(chunks))

	g, ctx := errgroup.WithContext(p.ctx)
	g.SetLimit(p.workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			b := p.budget // shared deadline, private step counter
			for _, n := range chunk {
				if err := ctx.Err(); err != nil {
					return err
				}
				if b.expired() {
					return ErrTimeLimit
				}
				if !p.x.best.beats(n.state.Spent) {
					stats[i].Pruned++
					continue
				}
				if !p.claim() {
					return p.stateLimit()
				}
				var err error
				if outs[i], err = p.x.expand(n, &stats[i], outs[i]); err != nil {
					return err
				}
			}

			return nil
		})
	}
	err := g.Wait()
	for _, st := range stats {
		p.stats.add(st)
	}
	if err != nil {
		return nil, err
	}

	return outs, nil
}

// merge flattens the chunk outputs in order, dropping states the incumbent
// or the transposition table already rules out.
func (p *pool) merge(outs [][]*node) []*node {
	var total int
	for _, o := range outs {
		total += len(o)
	}
	level := make([]*node, 0, total)
	for _, o := range outs {
		for _, n := range o {
			if !p.x.best.beats(n.state.Spent) {
				p.stats.Pruned++
				continue
			}
			if p.seen != nil {
				key := n.state.Key()
				if prev, ok := p.seen[key]; ok && prev <= n.state.Spent {
					p.stats.Deduplicated++
					continue
				}
				p.seen[key] = n.state.Spent
			}
			level = append(level, n)
		}
	}

	return level
}

// split cuts items into at most k contiguous chunks of near-equal size.
func split(items []*node, k int) [][]*node {
	if k < 1 {
		k = 1
	}
	if k > len(items) {
		k = len(items)
	}
	chunks := make([][]*node, 0, k)
	size := (len(items) + k - 1) / k
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}

	return chunks
}
