package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spellduel/scenario"
)

func newScenarioCmd(a *app) *cobra.Command {
	var trace, progress bool
	cmd := &cobra.Command{
		Use:   "scenario <file.yaml>...",
		Short: "Solve every duel in one or more YAML scenario files",
		Long: `Solves each YAML document in turn. Documents with an "expect" value are
checked against the result; any mismatch makes the command fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				all, err := scenario.Load(path)
				if err != nil {
					return err
				}
				var bar *progressbar.ProgressBar
				if progress {
					bar = progressbar.NewOptions(len(all),
						progressbar.OptionSetWriter(cmd.ErrOrStderr()),
						progressbar.OptionSetDescription("solving "+path),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}
				for i, sc := range all {
					if sc.Name == "" {
						sc.Name = fmt.Sprintf("%s#%d", path, i+1)
					}
					res, err := a.solve(cmd.Context(), sc, trace)
					if err != nil {
						return fmt.Errorf("%s: %w", sc.Name, err)
					}
					if bar != nil {
						_ = bar.Add(1)
					}
					printResult(cmd.OutOrStdout(), sc.Name, res, trace)

					if sc.Expect == nil {
						continue
					}
					got := -1
					if res.Found {
						got = res.Cost
					}
					if got != *sc.Expect {
						failed++
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: expected %d, got %s\n", sc.Name, *sc.Expect, res)
					}
				}
				if bar != nil {
					_ = bar.Finish()
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d scenario(s) did not match their expected cost", failed)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "also print the winning casts")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")

	return cmd
}
