package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/spellduel/internal/config"
	"github.com/katalvlaran/spellduel/internal/logging"
)

// app carries the resolved settings shared by every subcommand.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *zap.Logger
}

// flagKeys maps config keys to their flag names.
var flagKeys = map[string]string{
	"workers":       "workers",
	"strategy":      "strategy",
	"time_limit":    "time-limit",
	"max_states":    "max-states",
	"dedupe":        "dedupe",
	"attacker_hp":   "attacker-hp",
	"attacker_mana": "attacker-mana",
	"attrition":     "attrition",
	"log_level":     "log-level",
	"log_format":    "log-format",
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "spellduel",
		Short: "Find the cheapest way to win a spell duel",
		Long: `spellduel searches every line of play in a turn-based spell duel and reports
the minimum mana the caster must spend to defeat the defender.

Settings come from SPELLDUEL_* environment variables, then an optional YAML
config file, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.Int("workers", 1, "goroutines expanding states (1 = sequential)")
	pf.String("strategy", "fifo", "frontier discipline: fifo or best-first")
	pf.Duration("time-limit", 0, "abort the search after this long (0 = no limit)")
	pf.Int("max-states", 0, "abort after expanding this many states (0 = no limit)")
	pf.Bool("dedupe", true, "skip states already reached for less mana")
	pf.Int("attacker-hp", 50, "caster hit points")
	pf.Int("attacker-mana", 500, "caster starting mana")
	pf.Int("attrition", 0, "hit points the caster loses at the start of each turn")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.String("log-format", "json", "json or text (console)")

	root.AddCommand(newSolveCmd(a), newScenarioCmd(a), newVersionCmd())

	return root
}

// init layers environment defaults, the config file, and flags into a.cfg.
func (a *app) init(cmd *cobra.Command) error {
	env, err := config.Load()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetDefault("workers", env.Workers)
	v.SetDefault("strategy", env.Strategy)
	v.SetDefault("time_limit", env.TimeLimit)
	v.SetDefault("max_states", env.MaxStates)
	v.SetDefault("dedupe", env.Dedupe)
	v.SetDefault("attacker_hp", env.AttackerHP)
	v.SetDefault("attacker_mana", env.AttackerMana)
	v.SetDefault("attrition", env.Attrition)
	v.SetDefault("log_level", env.LogLevel)
	v.SetDefault("log_format", env.LogFormat)

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.log.Debug("config loaded",
		zap.Int("workers", cfg.Workers),
		zap.String("strategy", cfg.Strategy),
		zap.Bool("dedupe", cfg.Dedupe),
		zap.String("file", a.cfgFile),
	)

	return nil
}
