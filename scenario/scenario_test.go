package scenario_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spellduel/duel"
	"github.com/katalvlaran/spellduel/scenario"
	"github.com/katalvlaran/spellduel/search"
)

func TestParseDefender(t *testing.T) {
	d, err := scenario.ParseDefenderString("Hit Points: 58\nDamage: 9\n")
	require.NoError(t, err)
	assert.Equal(t, scenario.Defender{HP: 58, Damage: 9}, d)

	d, err = scenario.ParseDefenderString("damage: 8   hit points: 13")
	require.NoError(t, err)
	assert.Equal(t, scenario.Defender{HP: 13, Damage: 8}, d)
}

func TestParseDefender_Malformed(t *testing.T) {
	for name, input := range map[string]string{
		"empty":        "",
		"missing hp":   "Damage: 9",
		"missing dmg":  "Hit Points: 58",
		"negative":     "Hit Points: -5\nDamage: 9",
		"unknown stat": "Hit Points: 58\nDamage: 9\nArmor: 2",
		"repeated":     "Hit Points: 58\nHit Points: 12\nDamage: 9",
		"no value":     "Hit Points:\nDamage: 9",
		"bad token":    "Hit Points = 58",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.ParseDefenderString(input)
			assert.ErrorIs(t, err, scenario.ErrMalformedDescriptor)
		})
	}
}

const twoScenarios = `
name: poison-and-missile
attacker: {hp: 10, mana: 250}
defender: {hp: 13, damage: 8}
spells: [poison, magic_missile]
expect: 226
---
name: reference
defender: {hp: 58, damage: 9}
attrition: 1
`

func TestDecode(t *testing.T) {
	got, err := scenario.Decode(strings.NewReader(twoScenarios))
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "poison-and-missile", first.Name)
	assert.Equal(t, duel.Setup{HP: 10, Mana: 250, DefenderHP: 13, DefenderDamage: 8}, first.Setup())
	require.NotNil(t, first.Expect)
	assert.Equal(t, 226, *first.Expect)

	rules, err := first.Rules()
	require.NoError(t, err)
	assert.Equal(t, 2, rules.Catalog.Len())

	res, err := search.MinCost(rules, first.Setup().Initial())
	require.NoError(t, err)
	assert.Equal(t, *first.Expect, res.Cost)

	second := got[1]
	assert.Equal(t, duel.DefaultHP, second.Attacker.HP, "attacker defaults to the reference values")
	assert.Equal(t, duel.DefaultMana, second.Attacker.Mana)
	assert.Nil(t, second.Expect)
	rules, err = second.Rules()
	require.NoError(t, err)
	assert.Equal(t, 1, rules.Attrition)
	assert.Equal(t, 5, rules.Catalog.Len())
}

func TestDecode_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":          "",
		"unknown field":  "defender: {hp: 1, damage: 1}\nboss: true\n",
		"unknown spell":  "defender: {hp: 1, damage: 1}\nspells: [fireball]\n",
		"negative mana":  "attacker: {hp: 1, mana: -1}\ndefender: {hp: 1, damage: 1}\n",
		"negative drain": "defender: {hp: 1, damage: 1}\nattrition: -1\n",
		"not yaml":       "defender: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoScenarios), 0o600))

	got, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = scenario.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	s := scenario.New(scenario.Defender{HP: 51, Damage: 9})
	require.NoError(t, s.Validate())
	assert.Equal(t, duel.Setup{HP: 50, Mana: 500, DefenderHP: 51, DefenderDamage: 9}, s.Setup())
}
