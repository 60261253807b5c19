package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/chunking"
	"sceneloom/internal/frames"
	"sceneloom/internal/scenes"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Inspect episode artifacts",
	}

	showCmd.AddCommand(newShowScenesCommand(ctx))
	showCmd.AddCommand(newShowChunksCommand(ctx))
	showCmd.AddCommand(newShowPlanCommand(ctx))

	return showCmd
}

func episodeFlags(cmd *cobra.Command, seriesID, episodeID *string) {
	cmd.Flags().StringVarP(seriesID, "series-id", "s", "", "Series identifier")
	cmd.Flags().StringVarP(episodeID, "episode-id", "e", "", "Episode identifier")
	_ = cmd.MarkFlagRequired("series-id")
	_ = cmd.MarkFlagRequired("episode-id")
}

func newShowScenesCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Show the episode's scene list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			sceneList, source, err := scenes.LoadList(ws)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, sceneList)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scenes → %s\n", source)
			rows := make([][]string, 0, len(sceneList))
			for _, scene := range sceneList {
				rows = append(rows, []string{
					strconv.Itoa(scene.Index),
					formatSec(scene.StartSec),
					formatSec(scene.EndSec),
					formatSec(scene.DurationSec()),
				})
			}
			table := renderTable(
				[]string{"Scene", "Start", "End", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	episodeFlags(cmd, &seriesID, &episodeID)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newShowChunksCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Show the episode's chunk list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			file, err := os.Open(ws.ChunksPath())
			if err != nil {
				return fmt.Errorf("open chunks: %w", err)
			}
			chunks, err := chunking.Decode(file)
			_ = file.Close()
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, chunks)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Chunks → %s\n", ws.ChunksPath())
			if !isTerminal(out) {
				for _, line := range chunking.Summary(chunks) {
					fmt.Fprintln(out, line)
				}
				return nil
			}
			rows := make([][]string, 0, len(chunks))
			for _, chunk := range chunks {
				rows = append(rows, []string{
					strconv.Itoa(chunk.ChunkIndex),
					fmt.Sprintf("%d-%d", chunk.StartSceneIndex, chunk.EndSceneIndex),
					strconv.Itoa(chunk.SceneCount),
					formatSec(chunk.ChunkStartSec),
					formatSec(chunk.ChunkEndSec),
					formatSec(chunk.DurationSec),
				})
			}
			table := renderTable(
				[]string{"Chunk", "Scenes", "Count", "Start", "End", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	episodeFlags(cmd, &seriesID, &episodeID)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newShowPlanCommand(ctx *commandContext) *cobra.Command {
	var seriesID string
	var episodeID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the episode's frame plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
			file, err := os.Open(ws.FramePlanPath())
			if err != nil {
				return fmt.Errorf("open frame plan: %w", err)
			}
			plan, err := frames.DecodePlan(file)
			_ = file.Close()
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, plan)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Frame plan → %s (%s)\n", ws.FramePlanPath(), plan.ImageFormat)
			rows := make([][]string, 0, len(plan.Rows))
			for _, row := range plan.Rows {
				rows = append(rows, []string{
					strconv.Itoa(row.SceneIndex),
					row.Label,
					formatSec(row.TimestampSec),
					row.Path,
				})
			}
			table := renderTable(
				[]string{"Scene", "Label", "Timestamp", "Path"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	episodeFlags(cmd, &seriesID, &episodeID)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func formatSec(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + "s"
}
