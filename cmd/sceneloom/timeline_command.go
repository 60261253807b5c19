package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/ledger"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/stage"
	"sceneloom/internal/subtitles"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var offsetMS int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Align subtitle dialogue with the scene list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("subtitle-offset-ms") {
				cfg.Subtitles.OffsetMS = offsetMS
			}

			run := &ledger.Run{SeriesID: seriesID, EpisodeID: episodeID}
			runCtx := pipeline.WithStage(pipeline.WithEpisode(pipeline.WithSeries(cmd.Context(), seriesID), episodeID), "timeline")

			handler := subtitles.NewTimelineStage(cfg, logger)
			err = handler.Prepare(runCtx, run)
			if err == nil {
				err = handler.Execute(runCtx, run)
			}
			var skip *stage.SkipError
			if errors.As(err, &skip) {
				return fmt.Errorf("timeline: %s", skip.Reason)
			}
			if err != nil {
				return err
			}

			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Timeline built.")
			fmt.Fprintf(out, "Timeline → %s\n", ws.TimelinePath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&seriesID, "series-id", "s", "", "Series identifier")
	cmd.Flags().StringVarP(&episodeID, "episode-id", "e", "", "Episode identifier")
	cmd.Flags().IntVar(&offsetMS, "subtitle-offset-ms", 0, "Subtitle timing offset (ms)")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("episode-id")

	cmd.AddCommand(newTrimCommand())
	return cmd
}

// newTrimCommand trims a full subtitle file into a shorter snippet.
func newTrimCommand() *cobra.Command {
	var inputPath string
	var outputPath string
	var startSec float64
	var endSec float64
	var noShift bool

	cmd := &cobra.Command{
		Use:         "trim",
		Short:       "Trim an SRT file to a time window",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			window := subtitles.TrimOptions{
				StartSec:    startSec,
				EndSec:      math.Inf(1),
				ShiftToZero: !noShift,
			}
			if cmd.Flags().Changed("end-sec") {
				window.EndSec = endSec
			}

			file, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open subtitles: %w", err)
			}
			cues, err := subtitles.ParseCues(file)
			_ = file.Close()
			if err != nil {
				return err
			}

			trimmed := subtitles.Trim(cues, window)
			var buf bytes.Buffer
			if err := subtitles.Compose(&buf, trimmed); err != nil {
				return err
			}
			if err := artifacts.WriteFileAtomic(outputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write trimmed subtitles: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Subtitles trimmed.")
			fmt.Fprintf(out, "SRT → %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to full .srt file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to trimmed .srt file")
	cmd.Flags().Float64Var(&startSec, "start-sec", 0, "Trim window start (seconds)")
	cmd.Flags().Float64Var(&endSec, "end-sec", 0, "Trim window end (seconds)")
	cmd.Flags().BoolVar(&noShift, "no-shift-to-zero", false, "Keep original timestamps instead of rebasing to zero")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
