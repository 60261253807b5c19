package subtitles

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/config"
	"sceneloom/internal/ledger"
	"sceneloom/internal/logging"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/scenes"
	"sceneloom/internal/stage"
)

// TimelineStage aligns subtitle dialogue with the scene list and writes the
// timeline artifact. Episodes without an SRT in the input directory skip the
// stage.
type TimelineStage struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewTimelineStage constructs the timeline stage handler.
func NewTimelineStage(cfg *config.Config, logger *slog.Logger) *TimelineStage {
	if logger != nil {
		logger = logger.With(logging.String(logging.FieldComponent, "timeline"))
	}
	return &TimelineStage{cfg: cfg, logger: logger}
}

func (t *TimelineStage) workspace(run *ledger.Run) artifacts.Workspace {
	return artifacts.NewWorkspace(t.cfg.Paths.ArtifactsDir, run.SeriesID, run.EpisodeID)
}

func (t *TimelineStage) Prepare(ctx context.Context, run *ledger.Run) error {
	ws := t.workspace(run)
	if _, err := FindSRT(ws.InputDir()); err != nil {
		return err
	}
	if _, _, err := scenes.LoadList(ws); err != nil {
		return err
	}
	return nil
}

func (t *TimelineStage) Execute(ctx context.Context, run *ledger.Run) error {
	logger := logging.WithContext(ctx, t.logger)
	ws := t.workspace(run)

	srtPath, err := FindSRT(ws.InputDir())
	if err != nil {
		return err
	}
	sceneList, source, err := scenes.LoadList(ws)
	if err != nil {
		return err
	}

	file, err := os.Open(srtPath)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "timeline", "open srt",
			"Subtitle file could not be opened", err)
	}
	lines, err := ParseLines(file, t.cfg.Subtitles.OffsetMS)
	_ = file.Close()
	if err != nil {
		return err
	}

	logger.Info("aligning dialogue",
		logging.Int("scenes", len(sceneList)),
		logging.Int("lines", len(lines)),
		logging.String("srt", srtPath),
		logging.String("scene_source", source),
		logging.Int("offset_ms", t.cfg.Subtitles.OffsetMS))

	timeline := Timeline{
		Source: TimelineSource{
			SeriesID:         run.SeriesID,
			EpisodeID:        run.EpisodeID,
			SubtitlePath:     srtPath,
			SubtitleOffsetMS: t.cfg.Subtitles.OffsetMS,
		},
		Scenes: Align(sceneList, lines),
	}

	var buf bytes.Buffer
	if err := EncodeTimeline(&buf, timeline); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "timeline", "encode timeline",
			"Failed to encode timeline", err)
	}
	if err := artifacts.WriteFileAtomic(ws.TimelinePath(), buf.Bytes()); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "timeline", "write timeline",
			"Failed to write timeline", err)
	}

	run.TimelinePath = ws.TimelinePath()
	logger.Info("timeline completed", logging.String("timeline_path", run.TimelinePath))
	return nil
}

func (t *TimelineStage) HealthCheck(ctx context.Context) stage.Health {
	if _, err := os.Stat(t.cfg.Paths.ArtifactsDir); err != nil {
		return stage.Unhealthy("timeline", "artifacts directory unavailable: "+err.Error())
	}
	return stage.Healthy("timeline")
}

// FindSRT returns the first .srt file in dir, ordered by name. A missing file
// yields a stage skip, not an error.
func FindSRT(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", stage.Skip("no input directory for subtitles")
		}
		return "", pipeline.Wrap(pipeline.ErrValidation, "timeline", "scan input",
			"Input directory could not be read", err)
	}

	names := make([]string, 0, 2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".srt") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", stage.Skip("no subtitle file in input directory")
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}
