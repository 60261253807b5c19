package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/frames"
	"sceneloom/internal/ledger"
	"sceneloom/internal/pipeline"
)

func newFramesCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var samplePoints string
	var imageFormat string
	var quality int

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Plan per-scene frame extraction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sample-points") {
				points, err := parseSamplePoints(samplePoints)
				if err != nil {
					return err
				}
				cfg.Frames.SamplePoints = points
			}
			if cmd.Flags().Changed("image-format") {
				cfg.Frames.ImageFormat = imageFormat
			}
			if cmd.Flags().Changed("quality") {
				cfg.Frames.Quality = quality
			}

			run := &ledger.Run{SeriesID: seriesID, EpisodeID: episodeID}
			runCtx := pipeline.WithStage(pipeline.WithEpisode(pipeline.WithSeries(cmd.Context(), seriesID), episodeID), "frames")

			handler := frames.NewPlanStage(cfg, logger)
			if err := handler.Prepare(runCtx, run); err != nil {
				return err
			}
			if err := handler.Execute(runCtx, run); err != nil {
				return err
			}

			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Frame plan built.")
			fmt.Fprintf(out, "Plan → %s\n", ws.FramePlanPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&seriesID, "series-id", "s", "", "Series identifier")
	cmd.Flags().StringVarP(&episodeID, "episode-id", "e", "", "Episode identifier")
	cmd.Flags().StringVar(&samplePoints, "sample-points", "", "Comma-separated sample points (e.g. 0.25,0.5,0.75)")
	cmd.Flags().StringVar(&imageFormat, "image-format", "", "Frame image format (jpg or png)")
	cmd.Flags().IntVar(&quality, "quality", 0, "Frame image quality")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("episode-id")
	return cmd
}

func parseSamplePoints(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	points := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sample point %q: %w", part, err)
		}
		points = append(points, value)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no sample points in %q", raw)
	}
	return points, nil
}
