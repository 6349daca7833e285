package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spellduel/duel"
	"github.com/katalvlaran/spellduel/search"
)

type envTestConfig struct {
	Port int `env:"SPELLDUEL_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SPELLDUEL_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse env:"), "got %v", err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "fifo", cfg.Strategy)
	assert.True(t, cfg.Dedupe)
	assert.Equal(t, duel.DefaultHP, cfg.AttackerHP)
	assert.Equal(t, duel.DefaultMana, cfg.AttackerMana)
	assert.Zero(t, cfg.TimeLimit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SPELLDUEL_WORKERS", "4")
	t.Setenv("SPELLDUEL_TIME_LIMIT", "2s")
	t.Setenv("SPELLDUEL_ATTRITION", "1")
	t.Setenv("SPELLDUEL_DEDUPE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 2*time.Second, cfg.TimeLimit)
	assert.Equal(t, 1, cfg.Attrition)
	assert.False(t, cfg.Dedupe)
}

func TestValidate(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	for name, mutate := range map[string]func(*Config){
		"workers":   func(c *Config) { c.Workers = -1 },
		"time":      func(c *Config) { c.TimeLimit = -time.Second },
		"states":    func(c *Config) { c.MaxStates = -3 },
		"mana":      func(c *Config) { c.AttackerMana = -1 },
		"attrition": func(c *Config) { c.Attrition = -1 },
		"strategy":  func(c *Config) { c.Strategy = "dfs" },
		"bestfirst": func(c *Config) { c.Workers, c.Strategy = 2, "best-first" },
	} {
		c := base
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), ErrInvalidConfig, name)
	}
}

func TestSearchOptions(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.AttackerHP, cfg.AttackerMana = 10, 250

	opts, err := cfg.SearchOptions()
	require.NoError(t, err)

	start := duel.Setup{HP: cfg.AttackerHP, Mana: cfg.AttackerMana, DefenderHP: 14, DefenderDamage: 8}.Initial()
	res, err := search.MinCost(duel.Rules{}, start, opts...)
	require.NoError(t, err)
	assert.Equal(t, 641, res.Cost)
}
