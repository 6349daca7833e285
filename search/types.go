package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/katalvlaran/spellduel/duel"
)

// Sentinel errors for search execution.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrInvalidStart is returned when the initial state is malformed.
	ErrInvalidStart = errors.New("search: invalid initial state")

	// ErrTimeLimit is returned when the time budget runs out.
	ErrTimeLimit = errors.New("search: time limit exceeded")

	// ErrStateLimit is returned when the expansion cap is reached.
	ErrStateLimit = errors.New("search: state limit exceeded")
)

// Strategy selects the frontier discipline.
type Strategy uint8

const (
	// FIFO explores states in generation order.
	FIFO Strategy = iota
	// BestFirst explores the cheapest open state first.
	BestFirst
)

func (s Strategy) String() string {
	switch s {
	case FIFO:
		return "fifo"
	case BestFirst:
		return "best-first"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy maps "fifo" or "best-first" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "fifo":
		return FIFO, nil
	case "best-first", "bestfirst":
		return BestFirst, nil
	default:
		return FIFO, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
	}
}

// Option configures MinCost via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when
// MinCost is invoked.
type Option func(*Options)

// Options holds parameters and callbacks for a search.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	Strategy Strategy

	// Workers > 1 selects the parallel driver.
	Workers int

	// TimeLimit, if > 0, bounds wall-clock time.
	TimeLimit time.Duration

	// MaxStates, if > 0, bounds the number of expanded states.
	MaxStates int

	// Dedupe enables the transposition table.
	Dedupe bool

	// Trace records parent links so the winning casts can be reported.
	Trace bool

	// OnExpand is called with every state about to be expanded.
	// With Workers > 1 it is called concurrently.
	OnExpand func(s duel.State)

	// OnWin is called with every winning state that improves the incumbent.
	// With Workers > 1 it is called concurrently.
	OnWin func(s duel.State)

	err error
}

// DefaultOptions returns Options with a background context, FIFO strategy,
// one worker, no limits and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Strategy: FIFO,
		Workers:  1,
		OnExpand: func(duel.State) {},
		OnWin:    func(duel.State) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithStrategy selects the frontier discipline.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s > BestFirst {
			o.err = fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, s)
			return
		}
		o.Strategy = s
	}
}

// WithWorkers sets the number of goroutines expanding states.
//
//	n > 1: parallel driver
//	n == 0 or 1: sequential
//	n < 0: ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Workers = 1
		default:
			o.Workers = n
		}
	}
}

// WithTimeLimit bounds the search duration; d == 0 disables the limit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: TimeLimit cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.TimeLimit = d
	}
}

// WithMaxStates bounds the number of expansions, sequential or parallel;
// n == 0 disables the limit.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithDedupe enables the transposition table.
func WithDedupe() Option {
	return func(o *Options) { o.Dedupe = true }
}

// WithTrace records the winning cast sequence.
func WithTrace() Option {
	return func(o *Options) { o.Trace = true }
}

// WithOnExpand registers a callback run before each expansion.
func WithOnExpand(fn func(s duel.State)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnWin registers a callback run on each improving win.
func WithOnWin(fn func(s duel.State)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnWin = fn
		}
	}
}

// Stats counts the work done by a search.
type Stats struct {
	Expanded     int
	Generated    int
	Pruned       int
	Deduplicated int
	Wins         int
	Losses       int
	DeadEnds     int
}

func (s *Stats) add(o Stats) {
	s.Expanded += o.Expanded
	s.Generated += o.Generated
	s.Pruned += o.Pruned
	s.Deduplicated += o.Deduplicated
	s.Wins += o.Wins
	s.Losses += o.Losses
	s.DeadEnds += o.DeadEnds
}

// Result is the outcome of MinCost.
type Result struct {
	// Cost is the minimum mana spent over winning lines. Valid only when Found.
	Cost int

	// Found is false when no winning line exists.
	Found bool

	// Casts is the winning sequence when WithTrace is set.
	Casts []duel.EffectID

	Stats Stats
}

// Unreachable reports that no winning line exists.
func (r Result) Unreachable() bool { return !r.Found }

// Value returns Cost and whether it is meaningful.
func (r Result) Value() (int, bool) { return r.Cost, r.Found }

func (r Result) String() string {
	if !r.Found {
		return "unreachable"
	}

	return strconv.Itoa(r.Cost)
}
