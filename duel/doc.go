// Package duel models a turn-based spell duel between a caster (the Attacker)
// and a deterministic adversary (the Defender) as an immutable state machine.
//
// What
//
//   - State: a comparable value snapshot of one moment in the duel
//     (whose turn, hit points, mana, mana spent, active effect timers).
//   - Catalog: the fixed table of spells the Attacker may cast.
//   - Resolve: settles every active effect once at the start of a turn,
//     advances their timers, and reports whether effects alone ended the duel.
//   - LegalMoves: the affordable spells whose effect is not already running.
//   - Cast / Strike: the two transition cases (Attacker casts, Defender hits).
//   - Successors: Resolve + LegalMoves + transition composed into one step.
//
// Why
//
//	A search driver only needs a pure successor function over small value
//	types. States never share mutable parts: effect timers live in a fixed
//	array indexed by EffectID, so a State can be copied, compared, and used
//	as a map key without any cloning.
//
// Turn order
//
//	Each turn begins with Rules.Attrition (Attacker turns only), then effect
//	resolution. An effect whose timer reaches zero during resolution is
//	removed before the Attacker chooses, so it may be recast on that same
//	turn. A cast that drops the Defender to zero hit points ends the duel at
//	once; the turn does not pass.
//
// Errors
//
//   - ErrInvalidSpell   catalog entry with negative or inconsistent fields.
//   - ErrDuplicateSpell two catalog entries share an EffectID.
//   - ErrUnknownSpell   EffectID outside the catalog.
//   - ErrInvalidSetup   negative hit points, mana, or damage.
//   - *InvariantError   wraps ErrInsufficientMana, ErrEffectActive, ErrWrongTurn
//     or ErrUnknownSpell when a transition is asked to break the rules.
//     Callers should treat it as a defect, never clamp and continue.
package duel
