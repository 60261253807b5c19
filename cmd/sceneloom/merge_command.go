package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/ledger"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/scenes"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var minSceneSec float64
	var maxMergeChain int

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Fold micro-scenes into their predecessors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-scene-sec") {
				cfg.Scene.MinSceneSec = minSceneSec
			}
			if cmd.Flags().Changed("max-merge-chain") {
				cfg.Scene.MaxMergeChain = maxMergeChain
			}

			run := &ledger.Run{SeriesID: seriesID, EpisodeID: episodeID}
			runCtx := pipeline.WithStage(pipeline.WithEpisode(pipeline.WithSeries(cmd.Context(), seriesID), episodeID), "merge")

			handler := scenes.NewMergeStage(cfg, logger)
			if err := handler.Prepare(runCtx, run); err != nil {
				return err
			}
			if err := handler.Execute(runCtx, run); err != nil {
				return err
			}

			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Scene merge done.")
			fmt.Fprintf(out, "Merged JSON → %s\n", ws.MergedScenesPath())
			fmt.Fprintf(out, "Merged CSV → %s\n", ws.MergedScenesCSVPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&seriesID, "series-id", "s", "", "Series identifier")
	cmd.Flags().StringVarP(&episodeID, "episode-id", "e", "", "Episode identifier")
	cmd.Flags().Float64Var(&minSceneSec, "min-scene-sec", 0, "Minimum scene duration in seconds")
	cmd.Flags().IntVar(&maxMergeChain, "max-merge-chain", 0, "Max consecutive micro merges")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("episode-id")
	return cmd
}
