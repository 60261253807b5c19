package scenes

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/config"
	"sceneloom/internal/ledger"
	"sceneloom/internal/logging"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/stage"
)

// MergeStage folds micro-scenes into their predecessors and writes the merged
// scene list artifact.
type MergeStage struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewMergeStage constructs the merge stage handler.
func NewMergeStage(cfg *config.Config, logger *slog.Logger) *MergeStage {
	if logger != nil {
		logger = logger.With(logging.String(logging.FieldComponent, "merge"))
	}
	return &MergeStage{cfg: cfg, logger: logger}
}

func (m *MergeStage) workspace(run *ledger.Run) artifacts.Workspace {
	return artifacts.NewWorkspace(m.cfg.Paths.ArtifactsDir, run.SeriesID, run.EpisodeID)
}

func (m *MergeStage) Prepare(ctx context.Context, run *ledger.Run) error {
	ws := m.workspace(run)
	if err := ws.EnsureDirs(); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "merge", "ensure dirs",
			"Episode directories could not be created; check artifacts_dir permissions", err)
	}
	if _, _, err := LoadRawList(ws); err != nil {
		return err
	}
	return nil
}

func (m *MergeStage) Execute(ctx context.Context, run *ledger.Run) error {
	logger := logging.WithContext(ctx, m.logger)
	ws := m.workspace(run)

	raw, source, err := LoadRawList(ws)
	if err != nil {
		return err
	}
	logger.Info("merging scenes",
		logging.Int("raw_scenes", len(raw)),
		logging.String("source", source),
		logging.Float64("min_scene_sec", m.cfg.Scene.MinSceneSec),
		logging.Int("max_merge_chain", m.cfg.Scene.MaxMergeChain))

	merged, err := Merge(raw, m.cfg.Scene.MinSceneSec, m.cfg.Scene.MaxMergeChain)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrInvalidArgument, "merge", "merge scenes",
			"Scene merge rejected its inputs; check [scene] settings", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, merged); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "merge", "encode scenes",
			"Failed to encode merged scene list", err)
	}
	if err := artifacts.WriteFileAtomic(ws.MergedScenesPath(), buf.Bytes()); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "merge", "write scenes",
			"Failed to write merged scene list", err)
	}

	var csvBuf bytes.Buffer
	if err := EncodeCSV(&csvBuf, merged); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "merge", "encode scenes csv",
			"Failed to encode merged scene CSV", err)
	}
	if err := artifacts.WriteFileAtomic(ws.MergedScenesCSVPath(), csvBuf.Bytes()); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "merge", "write scenes csv",
			"Failed to write merged scene CSV", err)
	}

	run.ScenesPath = ws.MergedScenesPath()
	logger.Info("scene merge completed",
		logging.Int("raw_scenes", len(raw)),
		logging.Int("merged_scenes", len(merged)),
		logging.String("scenes_path", run.ScenesPath))
	return nil
}

func (m *MergeStage) HealthCheck(ctx context.Context) stage.Health {
	if _, err := os.Stat(m.cfg.Paths.ArtifactsDir); err != nil {
		return stage.Unhealthy("merge", "artifacts directory unavailable: "+err.Error())
	}
	return stage.Healthy("merge")
}
