package duel

import (
	"fmt"
	"strings"
)

// State is an immutable snapshot of the duel. It is a plain comparable value:
// copying it copies everything, and two States are equal iff every field is.
type State struct {
	Turn           Turn
	Mana           int
	HP             int
	DefenderHP     int
	DefenderDamage int

	// Spent is the total mana paid on the path to this state. It never decreases.
	Spent int

	// Timers holds the remaining duration of each effect; 0 means inactive.
	Timers [NumEffects]int
}

// Outcome classifies s. A Defender at or below zero hit points is a win only
// while the Attacker is still standing.
func (s State) Outcome() Outcome {
	switch {
	case s.HP <= 0:
		return Lost
	case s.DefenderHP <= 0:
		return Won
	default:
		return Ongoing
	}
}

// Active reports whether the effect id is currently running.
func (s State) Active(id EffectID) bool {
	return id < NumEffects && s.Timers[id] > 0
}

// Key returns s with Spent cleared. Two states with the same Key play out
// identically from here on, so the cheaper one dominates.
func (s State) Key() State {
	s.Spent = 0

	return s
}

func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s hp=%d mana=%d defender=%d/%d spent=%d",
		s.Turn, s.HP, s.Mana, s.DefenderHP, s.DefenderDamage, s.Spent)
	for id, t := range s.Timers {
		if t > 0 {
			fmt.Fprintf(&b, " %s:%d", EffectID(id), t)
		}
	}

	return b.String()
}
