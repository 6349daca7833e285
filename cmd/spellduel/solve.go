package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/spellduel/scenario"
	"github.com/katalvlaran/spellduel/search"
)

func newSolveCmd(a *app) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "solve [descriptor]",
		Short: "Print the minimum mana needed to defeat a defender",
		Long: `Reads a defender descriptor ("Hit Points: N" and "Damage: N" lines) from the
given file or stdin and prints the minimum mana the caster must spend to win,
or "unreachable" when no line of play wins.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			d, err := scenario.ParseDefender(in)
			if err != nil {
				return err
			}
			sc := scenario.Scenario{
				Attacker:  scenario.Attacker{HP: a.cfg.AttackerHP, Mana: a.cfg.AttackerMana},
				Defender:  d,
				Attrition: a.cfg.Attrition,
			}
			res, err := a.solve(cmd.Context(), sc, trace)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), "", res, trace)

			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "also print the winning casts")

	return cmd
}

// solve runs one scenario with the configured search options.
func (a *app) solve(ctx context.Context, sc scenario.Scenario, trace bool) (search.Result, error) {
	if err := sc.Validate(); err != nil {
		return search.Result{}, err
	}
	rules, err := sc.Rules()
	if err != nil {
		return search.Result{}, err
	}
	opts, err := a.cfg.SearchOptions()
	if err != nil {
		return search.Result{}, err
	}
	opts = append(opts, search.WithContext(ctx))
	if trace {
		opts = append(opts, search.WithTrace())
	}

	fields := []zap.Field{
		zap.String("scenario", sc.Name),
		zap.String("defender", fmt.Sprintf("%d/%d", sc.Defender.HP, sc.Defender.Damage)),
		zap.Int("attrition", sc.Attrition),
	}
	a.log.Debug("search started", fields...)
	start := time.Now()

	res, err := search.MinCost(rules, sc.Setup().Initial(), opts...)

	fields = append(fields,
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("expanded", res.Stats.Expanded),
		zap.Int("pruned", res.Stats.Pruned),
		zap.Int("deduplicated", res.Stats.Deduplicated),
		zap.Stringer("result", res),
	)
	if err != nil {
		a.log.Error("search aborted", append(fields, zap.Error(err))...)
		return res, err
	}
	a.log.Info("search finished", fields...)

	return res, nil
}

// printResult writes the cost (or "unreachable") and, with trace, the casts.
func printResult(w io.Writer, label string, res search.Result, trace bool) {
	if label != "" {
		fmt.Fprintf(w, "%s: ", label)
	}
	fmt.Fprintln(w, res)
	if trace && res.Found {
		names := make([]string, len(res.Casts))
		for i, c := range res.Casts {
			names[i] = c.String()
		}
		fmt.Fprintf(w, "casts: %s\n", strings.Join(names, " "))
	}
}
