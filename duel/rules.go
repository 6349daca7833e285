package duel

import "fmt"

// Rules binds a catalog to the per-turn policies of a duel.
// The zero value uses DefaultCatalog and no attrition.
type Rules struct {
	// Catalog lists the castable spells; nil means DefaultCatalog().
	Catalog *Catalog

	// Attrition is the hit points the Attacker loses at the start of each of
	// its turns, before effects resolve.
	Attrition int
}

// NewRules returns Rules over c with the given attrition.
func NewRules(c *Catalog, attrition int) (Rules, error) {
	if attrition < 0 {
		return Rules{}, fmt.Errorf("%w: attrition %d", ErrInvalidSetup, attrition)
	}
	if c == nil {
		c = DefaultCatalog()
	}

	return Rules{Catalog: c, Attrition: attrition}, nil
}

func (r Rules) catalog() *Catalog {
	if r.Catalog == nil {
		return defaultCatalog
	}

	return r.Catalog
}

var defaultCatalog = DefaultCatalog()

// Resolution is the result of settling effects at the start of a turn.
type Resolution struct {
	// State has effect contributions applied and timers advanced.
	State State

	// Mitigation is the armor granted by effects for this turn only.
	Mitigation int

	// Outcome is Won when effects alone finished the Defender, Lost when
	// attrition finished the Attacker.
	Outcome Outcome
}

// Resolve applies every active effect's per-turn contribution exactly once,
// decrements each timer, and drops timers that reach zero. Attrition is
// applied first on Attacker turns.
func (r Rules) Resolve(s State) (Resolution, error) {
	if o := s.Outcome(); o != Ongoing {
		return Resolution{State: s, Outcome: o}, nil
	}
	if s.Turn == Attacker && r.Attrition > 0 {
		s.HP -= r.Attrition
		if s.HP <= 0 {
			return Resolution{State: s, Outcome: Lost}, nil
		}
	}

	var (
		cat   = r.catalog()
		armor int
	)
	for i := range s.Timers {
		if s.Timers[i] <= 0 {
			continue
		}
		sp, ok := cat.Lookup(EffectID(i))
		if !ok {
			return Resolution{}, &InvariantError{Op: "resolve", Spell: EffectID(i), State: s, Err: ErrUnknownSpell}
		}
		s.DefenderHP -= sp.TickDamage
		s.Mana += sp.TickMana
		armor += sp.Armor
		s.Timers[i]--
	}

	res := Resolution{State: s, Mitigation: armor}
	if s.DefenderHP <= 0 {
		res.Outcome = Won
	}

	return res, nil
}

// LegalMoves returns the spells the Attacker may cast from a resolved state:
// affordable and not already active, in catalog order. It returns nil on the
// Defender's turn. An empty result on the Attacker's turn is a dead end.
func (r Rules) LegalMoves(s State) []Spell {
	if s.Turn != Attacker {
		return nil
	}
	var moves []Spell
	for _, sp := range r.catalog().spells {
		if sp.Cost <= s.Mana && !s.Active(sp.ID) {
			moves = append(moves, sp)
		}
	}

	return moves
}

// Cast applies spell id on the Attacker's turn. If the instant damage drops
// the Defender to zero the returned state is terminal and the turn does not pass.
func (r Rules) Cast(s State, id EffectID) (State, error) {
	if s.Turn != Attacker {
		return State{}, &InvariantError{Op: "cast", Spell: id, State: s, Err: ErrWrongTurn}
	}
	sp, ok := r.catalog().Lookup(id)
	if !ok {
		return State{}, &InvariantError{Op: "cast", Spell: id, State: s, Err: ErrUnknownSpell}
	}
	if s.Active(id) {
		return State{}, &InvariantError{Op: "cast", Spell: id, State: s, Err: ErrEffectActive}
	}
	if sp.Cost > s.Mana {
		return State{}, &InvariantError{Op: "cast", Spell: id, State: s, Err: ErrInsufficientMana}
	}

	s.Mana -= sp.Cost
	s.Spent += sp.Cost
	s.DefenderHP -= sp.Damage
	s.HP += sp.Heal
	s.Mana += sp.ManaGain
	if sp.Lasting() {
		s.Timers[id] = sp.Duration
	}
	if s.DefenderHP > 0 {
		s.Turn = Defender
	}

	return s, nil
}

// Strike is the Defender's fixed move: it deals DefenderDamage reduced by
// mitigation, never less than one, and passes the turn back.
func (r Rules) Strike(s State, mitigation int) (State, error) {
	if s.Turn != Defender {
		return State{}, &InvariantError{Op: "strike", Spell: NoCast, State: s, Err: ErrWrongTurn}
	}
	s.HP -= max(1, s.DefenderDamage-mitigation)
	s.Turn = Attacker

	return s, nil
}

// Step is one edge of the duel graph.
type Step struct {
	// Cast is the spell chosen by the Attacker, or NoCast.
	Cast  EffectID
	State State
}

// Successors settles effects on s and expands it by one move.
//
//   - Effects or attrition end the duel: one Step carrying the terminal state.
//   - Defender turn: one Step with the strike applied.
//   - Attacker turn: one Step per legal move; none when no move is legal.
func (r Rules) Successors(s State) ([]Step, error) {
	res, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	if res.Outcome != Ongoing {
		return []Step{{Cast: NoCast, State: res.State}}, nil
	}

	if res.State.Turn == Defender {
		next, err := r.Strike(res.State, res.Mitigation)
		if err != nil {
			return nil, err
		}

		return []Step{{Cast: NoCast, State: next}}, nil
	}

	moves := r.LegalMoves(res.State)
	steps := make([]Step, 0, len(moves))
	for _, sp := range moves {
		next, err := r.Cast(res.State, sp.ID)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Cast: sp.ID, State: next})
	}

	return steps, nil
}

// Replay applies casts from initial, letting the Defender answer after each
// one. It returns the final state, stopping early once the duel is decided.
func (r Rules) Replay(initial State, casts []EffectID) (State, error) {
	s := initial
	for _, id := range casts {
		res, err := r.Resolve(s)
		if err != nil {
			return State{}, err
		}
		if res.Outcome != Ongoing {
			return res.State, nil
		}
		if s, err = r.Cast(res.State, id); err != nil {
			return State{}, err
		}
		if s.Outcome() != Ongoing {
			return s, nil
		}
		if res, err = r.Resolve(s); err != nil {
			return State{}, err
		}
		if res.Outcome != Ongoing {
			return res.State, nil
		}
		if s, err = r.Strike(res.State, res.Mitigation); err != nil {
			return State{}, err
		}
		if s.Outcome() != Ongoing {
			return s, nil
		}
	}

	// Effects still running may finish the Defender on the next resolution.
	res, err := r.Resolve(s)
	if err != nil {
		return State{}, err
	}

	return res.State, nil
}
