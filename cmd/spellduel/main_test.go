package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSolve_Stdin(t *testing.T) {
	out, _, err := run(t, "Hit Points: 13\nDamage: 8\n",
		"solve", "--attacker-hp", "10", "--attacker-mana", "250", "--trace")
	require.NoError(t, err)
	assert.Equal(t, "226\ncasts: poison magic_missile\n", out)
}

func TestSolve_File(t *testing.T) {
	path := writeFile(t, "input.txt", "Hit Points: 14\nDamage: 8\n")
	out, _, err := run(t, "", "solve", path, "--attacker-hp", "10", "--attacker-mana", "250", "--workers", "4")
	require.NoError(t, err)
	assert.Equal(t, "641\n", out)
}

func TestSolve_Unreachable(t *testing.T) {
	out, _, err := run(t, "Hit Points: 14\nDamage: 100\n", "solve", "--attacker-hp", "10", "--attacker-mana", "250")
	require.NoError(t, err)
	assert.Equal(t, "unreachable\n", out)
}

func TestSolve_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "spellduel.yaml", "attacker_hp: 10\nattacker_mana: 250\nstrategy: best-first\n")
	out, _, err := run(t, "Hit Points: 14\nDamage: 8\n", "solve", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "641\n", out)

	// flags win over the file
	out, _, err = run(t, "Hit Points: 14\nDamage: 8\n", "solve", "--config", cfg, "--attacker-mana", "10")
	require.NoError(t, err)
	assert.Equal(t, "unreachable\n", out)
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := run(t, "Hit Points: 14\n", "solve")
	assert.Error(t, err)

	_, _, err = run(t, "Hit Points: 14\nDamage: 8\n", "solve", "--workers", "2", "--strategy", "best-first")
	assert.Error(t, err)

	_, _, err = run(t, "", "solve", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, _, err = run(t, "", "solve", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScenario(t *testing.T) {
	path := writeFile(t, "duels.yaml", `name: small
attacker: {hp: 10, mana: 250}
defender: {hp: 13, damage: 8}
expect: 226
---
name: two spells
attacker: {hp: 10, mana: 250}
defender: {hp: 14, damage: 8}
spells: [magic_missile, poison]
expect: -1
`)
	out, _, err := run(t, "", "scenario", path)
	require.NoError(t, err)
	assert.Equal(t, "small: 226\ntwo spells: unreachable\n", out)

	out, _, err = run(t, "", "scenario", path, "--progress", "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "small: 226\ntwo spells: unreachable\n", out)
}

func TestScenario_Mismatch(t *testing.T) {
	path := writeFile(t, "duels.yaml", `attacker: {hp: 10, mana: 250}
defender: {hp: 14, damage: 8}
expect: 226
`)
	out, errOut, err := run(t, "", "scenario", path)
	require.Error(t, err)
	assert.Contains(t, out, "#1: 641")
	assert.Contains(t, errOut, "expected 226, got 641")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "spellduel dev (none)"), out)
}

func TestSolve_Logging(t *testing.T) {
	out, errOut, err := run(t, "Hit Points: 13\nDamage: 8\n",
		"solve", "--attacker-hp", "10", "--attacker-mana", "250", "--log-level", "info")
	require.NoError(t, err)
	assert.Equal(t, "226\n", out)
	assert.Contains(t, errOut, `"msg":"search finished"`)
	assert.Contains(t, errOut, `"result":"226"`)
	assert.Contains(t, errOut, `"defender":"13/8"`)

	_, errOut, err = run(t, "Hit Points: 13\nDamage: 8\n",
		"solve", "--attacker-hp", "10", "--attacker-mana", "250", "--log-level", "debug", "--log-format", "text")
	require.NoError(t, err)
	assert.Contains(t, errOut, "DEBUG\tconfig loaded")
	assert.Contains(t, errOut, "INFO\tsearch finished")

	_, _, err = run(t, "Hit Points: 13\nDamage: 8\n", "solve", "--log-format", "xml")
	assert.Error(t, err)
}
