package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/chunking"
	"sceneloom/internal/config"
	"sceneloom/internal/frames"
	"sceneloom/internal/ledger"
	"sceneloom/internal/logging"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/scenes"
	"sceneloom/internal/stage"
	"sceneloom/internal/subtitles"
)

// pipelineStage binds a handler to the ledger statuses it moves through.
type pipelineStage struct {
	name             string
	handler          stage.Handler
	processingStatus ledger.Status
	doneStatus       ledger.Status
}

// Runner executes the pipeline stages for one episode at a time.
type Runner struct {
	cfg    *config.Config
	store  *ledger.Store
	logger *slog.Logger
	stages []pipelineStage
}

// NewRunner wires the default stage handlers.
func NewRunner(cfg *config.Config, store *ledger.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		logger: logger.With(logging.String(logging.FieldComponent, "workflow")),
		stages: []pipelineStage{
			{
				name:             "merge",
				handler:          scenes.NewMergeStage(cfg, logger),
				processingStatus: ledger.StatusMerging,
				doneStatus:       ledger.StatusMerged,
			},
			{
				name:             "chunk",
				handler:          chunking.NewChunkStage(cfg, logger),
				processingStatus: ledger.StatusChunking,
				doneStatus:       ledger.StatusChunked,
			},
			{
				name:             "timeline",
				handler:          subtitles.NewTimelineStage(cfg, logger),
				processingStatus: ledger.StatusAligning,
				doneStatus:       ledger.StatusAligned,
			},
			{
				name:             "frames",
				handler:          frames.NewPlanStage(cfg, logger),
				processingStatus: ledger.StatusPlanning,
				doneStatus:       ledger.StatusCompleted,
			},
		},
	}
}

// Run executes every stage for the episode, creating a ledger run and a run
// metadata artifact. The episode lock is held for the whole run.
func (r *Runner) Run(ctx context.Context, seriesID, episodeID string) (*ledger.Run, error) {
	runID := uuid.NewString()
	ctx = pipeline.WithSeries(ctx, seriesID)
	ctx = pipeline.WithEpisode(ctx, episodeID)
	ctx = pipeline.WithRunID(ctx, runID)

	ws := artifacts.NewWorkspace(r.cfg.Paths.ArtifactsDir, seriesID, episodeID)
	if err := ws.EnsureDirs(); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrValidation, "workflow", "ensure dirs",
			"Episode directories could not be created; check artifacts_dir permissions", err)
	}

	lock, err := artifacts.AcquireRunLock(ws)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			r.logger.Warn("failed to release run lock", logging.Error(releaseErr))
		}
	}()

	run, err := r.store.NewRun(ctx, seriesID, episodeID, runID)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	meta := artifacts.NewRunMeta(seriesID, episodeID, r.cfg.Snapshot())
	meta.RunID = runID
	if err := artifacts.WriteRunMeta(ws, meta); err != nil {
		r.logger.Warn("failed to write run metadata", logging.Error(err))
	}

	start := time.Now()
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("run started", logging.String("run_id", runID))

	for _, ps := range r.stages {
		if err := r.runStage(ctx, ps, run); err != nil {
			if failErr := r.store.MarkFailed(ctx, run.ID, err.Error()); failErr != nil {
				logger.Error("failed to record run failure", logging.Error(failErr))
			}
			run.Status = ledger.StatusFailed
			run.ErrorMessage = err.Error()
			logger.Error("run failed",
				logging.String("stage", ps.name),
				logging.Error(err),
				logging.Duration("run_duration", time.Since(start)))
			return run, err
		}
	}

	logger.Info("run completed", logging.Duration("run_duration", time.Since(start)))
	return run, nil
}

func (r *Runner) runStage(ctx context.Context, ps pipelineStage, run *ledger.Run) error {
	stageCtx := pipeline.WithStage(ctx, ps.name)
	logger := logging.WithContext(stageCtx, r.logger)

	if err := ctx.Err(); err != nil {
		return err
	}

	stageStart := time.Now()
	if err := r.store.UpdateStatus(stageCtx, run.ID, ps.processingStatus); err != nil {
		return fmt.Errorf("transition to %s: %w", ps.processingStatus, err)
	}
	run.Status = ps.processingStatus

	err := ps.handler.Prepare(stageCtx, run)
	if err == nil {
		err = ps.handler.Execute(stageCtx, run)
	}

	var skip *stage.SkipError
	if errors.As(err, &skip) {
		logger.Info("stage skipped", logging.String("reason", skip.Reason))
		err = nil
	}
	if err != nil {
		return err
	}

	run.Status = ps.doneStatus
	if err := r.store.Update(stageCtx, run); err != nil {
		return fmt.Errorf("persist stage result: %w", err)
	}
	logger.Info("stage completed",
		logging.String("next_status", string(ps.doneStatus)),
		logging.Duration("stage_duration", time.Since(stageStart)))
	return nil
}

// HealthCheck reports readiness for every configured stage.
func (r *Runner) HealthCheck(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(r.stages))
	for _, ps := range r.stages {
		checks = append(checks, ps.handler.HealthCheck(ctx))
	}
	return checks
}
