// Package search finds the cheapest winning line of a duel.State by
// branch-and-bound over the duel transition graph.
//
// What
//
//   - MinCost explores duel.Rules.Successors from an initial state and returns
//     the minimum total mana spent over all paths that end in duel.Won.
//   - The incumbent (best cost found so far) prunes every open state whose
//     Spent already meets or exceeds it. Spent never decreases along a path,
//     so a pruned state cannot lead to a cheaper win.
//   - "No winning line" is a normal Result with Found == false, never an error.
//
// Strategies
//
//   - FIFO (default): breadth-first frontier. Ordering is irrelevant for
//     optimality; pruning alone guarantees it.
//   - BestFirst: min-heap on Spent. The first popped state that cannot beat
//     the incumbent ends the search, since every remaining state costs more.
//   - WithWorkers(n>1): level-synchronous FIFO where each level is split
//     across an errgroup. The incumbent is an atomic compare-and-take-minimum;
//     workers may read a stale value, which only costs redundant expansions.
//
// Determinism
//
//	Sequential strategies return identical Results for identical inputs.
//	The parallel driver always returns the same Cost; with WithTrace the cast
//	sequence may differ between runs when several lines tie on cost.
//
// Options
//
//   - WithContext(ctx):    cancellation; ctx.Err() is returned with the partial Result.
//   - WithStrategy(s):     FIFO or BestFirst (sequential only).
//   - WithWorkers(n):      n > 1 enables the parallel driver.
//   - WithTimeLimit(d):    soft budget, checked sparsely; ErrTimeLimit on expiry.
//   - WithMaxStates(n):    cap on expanded states; ErrStateLimit on overflow.
//   - WithDedupe():        skip states already reached at equal or lower Spent.
//   - WithTrace():         record the winning cast sequence in Result.Casts.
//   - WithOnExpand(fn):    hook before each expansion.
//   - WithOnWin(fn):       hook on each improving win.
//
// Errors
//
//   - ErrOptionViolation  invalid option value or combination.
//   - ErrInvalidStart     initial state with negative mana, hit points, spend,
//                         defender damage or timers.
//   - ErrTimeLimit        time budget exhausted.
//   - ErrStateLimit       expansion cap reached.
//   - *duel.InvariantError from the transition function; this is a defect and
//     aborts the search.
package search
