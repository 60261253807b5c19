package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneloom/internal/config"
	"sceneloom/internal/ledger"
	"sceneloom/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline for one episode",
		Long:  "Run merge, chunk, timeline, and frame planning in order, recording progress in the run ledger.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withLedger(func(cfg *config.Config, store *ledger.Store) error {
				runner := workflow.NewRunner(cfg, store, logger)
				run, err := runner.Run(cmd.Context(), seriesID, episodeID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s completed for %s/%s\n", run.RunID, seriesID, episodeID)
				for _, path := range []struct {
					label string
					value string
				}{
					{"Scenes", run.ScenesPath},
					{"Chunks", run.ChunksPath},
					{"Timeline", run.TimelinePath},
					{"Frame plan", run.FramePlanPath},
				} {
					if path.value != "" {
						fmt.Fprintf(out, "%s → %s\n", path.label, path.value)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&seriesID, "series-id", "s", "", "Series identifier")
	cmd.Flags().StringVarP(&episodeID, "episode-id", "e", "", "Episode identifier")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("episode-id")
	return cmd
}
