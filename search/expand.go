package search

import (
	"fmt"
	"time"

	"github.com/katalvlaran/spellduel/duel"
)

// expander turns one open node into its open children. It is shared by the
// sequential and parallel drivers and holds no per-call mutable state.
type expander struct {
	rules duel.Rules
	best  *incumbent
	opts  Options
}

// expand settles n, records wins and losses in st, and appends the ongoing
// children that can still beat the incumbent to out.
func (x *expander) expand(n *node, st *Stats, out []*node) ([]*node, error) {
	x.opts.OnExpand(n.state)
	st.Expanded++

	steps, err := x.rules.Successors(n.state)
	if err != nil {
		return out, fmt.Errorf("search: expanding %s: %w", n.state, err)
	}
	if len(steps) == 0 {
		st.DeadEnds++
		return out, nil
	}

	for _, step := range steps {
		st.Generated++
		child := &node{state: step.State, cast: step.Cast}
		if x.opts.Trace {
			child.parent = n
		}

		switch step.State.Outcome() {
		case duel.Won:
			st.Wins++
			if x.best.offer(child) {
				x.opts.OnWin(step.State)
			}
		case duel.Lost:
			st.Losses++
		default:
			if !x.best.beats(step.State.Spent) {
				st.Pruned++
				continue
			}
			out = append(out, child)
		}
	}

	return out, nil
}

// stepsPerCheck spaces out deadline checks; must be a power of two.
const stepsPerCheck = 4096

// budget is a sparse wall-clock deadline.
type budget struct {
	use      bool
	deadline time.Time
	steps    int
}

func newBudget(limit time.Duration) budget {
	if limit <= 0 {
		return budget{}
	}

	return budget{use: true, deadline: time.Now().Add(limit)}
}

// expired performs a rare deadline test (every stepsPerCheck calls).
func (b *budget) expired() bool {
	b.steps++
	if !b.use || (b.steps&(stepsPerCheck-1)) != 0 {
		return false
	}

	return b.passed()
}

// passed tests the deadline immediately.
func (b *budget) passed() bool {
	return b.use && time.Now().After(b.deadline)
}

// result assembles the caller-visible Result from the incumbent.
func result(best *incumbent, st Stats, trace bool) Result {
	res := Result{Stats: st}
	if c := best.load(); c != unbounded {
		res.Cost = int(c)
		res.Found = true
		if trace {
			if w := best.winner(); w != nil {
				res.Casts = w.casts()
			}
		}
	}

	return res
}
