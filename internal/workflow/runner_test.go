package workflow_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"sceneloom/internal/chunking"
	"sceneloom/internal/frames"
	"sceneloom/internal/ledger"
	"sceneloom/internal/logging"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/scenes"
	"sceneloom/internal/testsupport"
	"sceneloom/internal/workflow"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:03,000\nHello there.\n\n2\n00:00:12,000 --> 00:00:14,000\nStill talking.\n"

func TestRunCompletesAllStages(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithScene(1.5, 8),
		testsupport.WithChunking(10, 2))
	store := testsupport.MustOpenLedger(t, cfg)
	ws := testsupport.NewWorkspace(t, cfg, "show", "e01")

	testsupport.WriteRawScenes(t, ws, []scenes.Scene{
		{Index: 1, StartSec: 0, EndSec: 8.5},
		{Index: 2, StartSec: 8.5, EndSec: 9},
		{Index: 3, StartSec: 9, EndSec: 19},
	})
	testsupport.WriteSRT(t, ws, "e01.srt", sampleSRT)

	runner := workflow.NewRunner(cfg, store, logging.NewNop())
	run, err := runner.Run(context.Background(), "show", "e01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if run.Status != ledger.StatusCompleted {
		t.Fatalf("run status = %q, want completed", run.Status)
	}

	mergedFile, err := os.Open(ws.MergedScenesPath())
	if err != nil {
		t.Fatalf("merged scenes missing: %v", err)
	}
	merged, err := scenes.Decode(mergedFile)
	_ = mergedFile.Close()
	if err != nil {
		t.Fatalf("decode merged scenes: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged scenes, got %+v", merged)
	}

	chunksFile, err := os.Open(ws.ChunksPath())
	if err != nil {
		t.Fatalf("chunks missing: %v", err)
	}
	chunks, err := chunking.Decode(chunksFile)
	_ = chunksFile.Close()
	if err != nil {
		t.Fatalf("decode chunks: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %+v", chunks)
	}

	timelineFile, err := os.Open(ws.TimelinePath())
	if err != nil {
		t.Fatalf("timeline missing: %v", err)
	}
	_ = timelineFile.Close()

	planFile, err := os.Open(ws.FramePlanPath())
	if err != nil {
		t.Fatalf("frame plan missing: %v", err)
	}
	plan, err := frames.DecodePlan(planFile)
	_ = planFile.Close()
	if err != nil {
		t.Fatalf("decode frame plan: %v", err)
	}
	if len(plan.Rows) == 0 {
		t.Fatal("expected frame plan rows")
	}

	if _, err := os.Stat(ws.RunMetaPath()); err != nil {
		t.Fatalf("run metadata missing: %v", err)
	}

	recorded, err := store.LatestForEpisode(context.Background(), "show", "e01")
	if err != nil {
		t.Fatalf("LatestForEpisode failed: %v", err)
	}
	if recorded.Status != ledger.StatusCompleted {
		t.Fatalf("ledger status = %q, want completed", recorded.Status)
	}
	if recorded.ScenesPath == "" || recorded.ChunksPath == "" || recorded.TimelinePath == "" || recorded.FramePlanPath == "" {
		t.Fatalf("ledger missing artifact paths: %#v", recorded)
	}
}

func TestRunSkipsTimelineWithoutSRT(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithChunking(10, 2))
	store := testsupport.MustOpenLedger(t, cfg)
	ws := testsupport.NewWorkspace(t, cfg, "show", "e02")

	testsupport.WriteRawScenes(t, ws, testsupport.EvenScenes(4, 5))

	runner := workflow.NewRunner(cfg, store, logging.NewNop())
	run, err := runner.Run(context.Background(), "show", "e02")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if run.Status != ledger.StatusCompleted {
		t.Fatalf("run status = %q, want completed", run.Status)
	}
	if _, err := os.Stat(ws.TimelinePath()); !os.IsNotExist(err) {
		t.Fatalf("timeline should not exist without subtitles: %v", err)
	}
	if _, err := os.Stat(ws.FramePlanPath()); err != nil {
		t.Fatalf("frame plan should still be written: %v", err)
	}
	if run.TimelinePath != "" {
		t.Fatalf("timeline path should stay empty, got %q", run.TimelinePath)
	}
}

func TestRunFailsWithoutRawScenes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)
	testsupport.NewWorkspace(t, cfg, "show", "e03")

	runner := workflow.NewRunner(cfg, store, logging.NewNop())
	run, err := runner.Run(context.Background(), "show", "e03")
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if run == nil || run.Status != ledger.StatusFailed {
		t.Fatalf("expected failed run, got %#v", run)
	}

	recorded, fetchErr := store.GetByID(context.Background(), run.ID)
	if fetchErr != nil {
		t.Fatalf("GetByID failed: %v", fetchErr)
	}
	if recorded.Status != ledger.StatusFailed || recorded.ErrorMessage == "" {
		t.Fatalf("failure not recorded: %#v", recorded)
	}
}

func TestHealthCheckReportsEveryStage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	runner := workflow.NewRunner(cfg, store, logging.NewNop())
	checks := runner.HealthCheck(context.Background())
	if len(checks) != 4 {
		t.Fatalf("expected 4 stage checks, got %d", len(checks))
	}
	for _, check := range checks {
		if !check.Ready {
			t.Fatalf("stage %s unexpectedly unhealthy: %s", check.Name, check.Detail)
		}
	}
}
