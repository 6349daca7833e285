package duel

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog construction and state transitions.
var (
	// ErrInvalidSpell is returned when a catalog entry has negative or inconsistent fields.
	ErrInvalidSpell = errors.New("duel: invalid spell")

	// ErrDuplicateSpell is returned when two catalog entries share an EffectID.
	ErrDuplicateSpell = errors.New("duel: duplicate spell")

	// ErrUnknownSpell is returned when an EffectID is not present in the catalog.
	ErrUnknownSpell = errors.New("duel: unknown spell")

	// ErrInvalidSetup is returned for negative starting values.
	ErrInvalidSetup = errors.New("duel: invalid setup")

	// ErrInsufficientMana marks a cast that costs more than the available mana.
	ErrInsufficientMana = errors.New("duel: insufficient mana")

	// ErrEffectActive marks a cast of an effect that is still running.
	ErrEffectActive = errors.New("duel: effect already active")

	// ErrWrongTurn marks a transition attempted on the other side's turn.
	ErrWrongTurn = errors.New("duel: wrong turn")
)

// InvariantError reports a transition that the rules forbid. It is never
// produced for states reached through LegalMoves, so seeing one means a
// caller bypassed the move generator.
type InvariantError struct {
	Op    string
	Spell EffectID
	State State
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("duel: %s %s: %v (mana=%d timers=%v)", e.Op, e.Spell, e.Err, e.State.Mana, e.State.Timers)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (e *InvariantError) Unwrap() error { return e.Err }

// Turn identifies which side acts next.
type Turn uint8

const (
	// Attacker is the side whose casts are chosen by the search.
	Attacker Turn = iota
	// Defender is the deterministic adversary.
	Defender
)

func (t Turn) String() string {
	switch t {
	case Attacker:
		return "attacker"
	case Defender:
		return "defender"
	default:
		return fmt.Sprintf("turn(%d)", uint8(t))
	}
}

// EffectID is the closed enumeration of spells known to the duel.
type EffectID uint8

const (
	MagicMissile EffectID = iota
	Drain
	Shield
	Poison
	Recharge

	// NumEffects is the number of known spells; it sizes State.Timers.
	NumEffects
)

// NoCast marks a Step produced by the Defender or by effects alone.
const NoCast EffectID = 0xFF

var effectNames = [NumEffects]string{
	MagicMissile: "magic_missile",
	Drain:        "drain",
	Shield:       "shield",
	Poison:       "poison",
	Recharge:     "recharge",
}

func (id EffectID) String() string {
	if id < NumEffects {
		return effectNames[id]
	}
	if id == NoCast {
		return "none"
	}

	return fmt.Sprintf("effect(%d)", uint8(id))
}

// ParseEffectID maps a spell name (as printed by EffectID.String) back to its ID.
func ParseEffectID(name string) (EffectID, error) {
	for i, n := range effectNames {
		if n == name {
			return EffectID(i), nil
		}
	}

	return NoCast, fmt.Errorf("%w: %q", ErrUnknownSpell, name)
}

// Outcome classifies a State.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Setup holds the starting values of a duel.
type Setup struct {
	HP             int
	Mana           int
	DefenderHP     int
	DefenderDamage int
}

// Reference attacker values.
const (
	DefaultHP   = 50
	DefaultMana = 500
)

// Validate rejects negative starting values.
func (s Setup) Validate() error {
	switch {
	case s.HP < 0:
		return fmt.Errorf("%w: hp %d", ErrInvalidSetup, s.HP)
	case s.Mana < 0:
		return fmt.Errorf("%w: mana %d", ErrInvalidSetup, s.Mana)
	case s.DefenderHP < 0:
		return fmt.Errorf("%w: defender hp %d", ErrInvalidSetup, s.DefenderHP)
	case s.DefenderDamage < 0:
		return fmt.Errorf("%w: defender damage %d", ErrInvalidSetup, s.DefenderDamage)
	}

	return nil
}

// Initial returns the opening State: Attacker to act, nothing spent, no effects.
func (s Setup) Initial() State {
	return State{
		Turn:           Attacker,
		Mana:           s.Mana,
		HP:             s.HP,
		DefenderHP:     s.DefenderHP,
		DefenderDamage: s.DefenderDamage,
	}
}
