package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneloom/internal/config"
	"sceneloom/internal/ledger"
	"sceneloom/internal/workflow"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check readiness of every pipeline stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withLedger(func(cfg *config.Config, store *ledger.Store) error {
				runner := workflow.NewRunner(cfg, store, logger)
				checks := runner.HealthCheck(cmd.Context())

				rows := make([][]string, 0, len(checks))
				unhealthy := 0
				for _, check := range checks {
					state := "ready"
					if !check.Ready {
						state = "not ready"
						unhealthy++
					}
					rows = append(rows, []string{check.Name, state, check.Detail})
				}
				table := renderTable(
					[]string{"Stage", "State", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				if unhealthy > 0 {
					return fmt.Errorf("%d stage(s) not ready", unhealthy)
				}
				return nil
			})
		},
	}
}
