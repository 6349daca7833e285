// Package scenario turns puzzle input and scenario files into the plain
// values consumed by duel and search.
//
// Two formats are understood:
//
//   - The defender descriptor, one "Key: value" line per stat:
//
//     Hit Points: 58
//     Damage: 9
//
//   - A YAML scenario that also fixes the attacker, the attrition rule and
//     an optional subset of the compiled-in spells:
//
//     attacker: {hp: 10, mana: 250}
//     defender: {hp: 13, damage: 8}
//     attrition: 0
//     spells: [poison, magic_missile]
//
// Both parsers reject malformed input with ErrMalformedDescriptor or
// ErrInvalidScenario before any search runs.
package scenario
