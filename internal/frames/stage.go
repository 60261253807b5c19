package frames

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
	"sceneloom/internal/scenes"
	"sceneloom/internal/stage"
)

// PlanStage computes per-scene frame samples and writes the frame plan
// artifact.
type PlanStage struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewPlanStage constructs the frame plan stage handler.
func NewPlanStage(cfg *config.Config, logger *slog.Logger) *PlanStage {
	if logger != nil {
		logger = logger.With(logging.String(logging.FieldComponent, "frames"))
	}
	return &PlanStage{cfg: cfg, logger: logger}
}

func (p *PlanStage) workspace(run *ledger.Run) artifacts.Workspace {
	return artifacts.NewWorkspace(p.cfg.Paths.ArtifactsDir, run.SeriesID, run.EpisodeID)
}

func (p *PlanStage) Prepare(ctx context.Context, run *ledger.Run) error {
	if _, _, err := scenes.LoadList(p.workspace(run)); err != nil {
		return err
	}
	return nil
}

func (p *PlanStage) Execute(ctx context.Context, run *ledger.Run) error {
	logger := logging.WithContext(ctx, p.logger)
	ws := p.workspace(run)

	sceneList, source, err := scenes.LoadList(ws)
	if err != nil {
		return err
	}
	logger.Info("planning frames",
		logging.Int("scenes", len(sceneList)),
		logging.String("source", source),
		logging.Any("sample_points", p.cfg.Frames.SamplePoints),
		logging.String("image_format", p.cfg.Frames.ImageFormat))

	plan := BuildPlan(sceneList, p.cfg.Frames.SamplePoints, p.cfg.Frames.MinSceneSec,
		p.cfg.Frames.ImageFormat, p.cfg.Frames.Quality)

	var buf bytes.Buffer
	if err := EncodePlan(&buf, plan); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "frames", "encode plan",
			"Failed to encode frame plan", err)
	}
	if err := artifacts.WriteFileAtomic(ws.FramePlanPath(), buf.Bytes()); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "frames", "write plan",
			"Failed to write frame plan", err)
	}

	run.FramePlanPath = ws.FramePlanPath()
	logger.Info("frame plan completed",
		logging.Int("rows", len(plan.Rows)),
		logging.String("frame_plan_path", run.FramePlanPath))
	return nil
}

func (p *PlanStage) HealthCheck(ctx context.Context) stage.Health {
	if _, err := os.Stat(p.cfg.Paths.ArtifactsDir); err != nil {
		return stage.Unhealthy("frames", "artifacts directory unavailable: "+err.Error())
	}
	return stage.Healthy("frames")
}
