package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/chunking"
	"sceneloom/internal/ledger"
	"sceneloom/internal/pipeline"
)

func newChunkCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var targetSec float64
	var toleranceSec float64

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Group merged scenes into render chunks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("target-sec") {
				cfg.Chunking.TargetSec = targetSec
			}
			if cmd.Flags().Changed("tolerance-sec") {
				cfg.Chunking.ToleranceSec = toleranceSec
			}

			run := &ledger.Run{SeriesID: seriesID, EpisodeID: episodeID}
			runCtx := pipeline.WithStage(pipeline.WithEpisode(pipeline.WithSeries(cmd.Context(), seriesID), episodeID), "chunk")

			handler := chunking.NewChunkStage(cfg, logger)
			if err := handler.Prepare(runCtx, run); err != nil {
				return err
			}
			if err := handler.Execute(runCtx, run); err != nil {
				return err
			}

			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Chunking done.")
			fmt.Fprintf(out, "Chunks → %s\n", ws.ChunksPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&seriesID, "series-id", "s", "", "Series identifier")
	cmd.Flags().StringVarP(&episodeID, "episode-id", "e", "", "Episode identifier")
	cmd.Flags().Float64Var(&targetSec, "target-sec", 0, "Target chunk duration in seconds")
	cmd.Flags().Float64Var(&toleranceSec, "tolerance-sec", 0, "Allowed deviation in seconds")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("episode-id")
	return cmd
}
