package ledger_test

import (
	"context"
	"testing"

	"sceneloom/internal/ledger"
	"sceneloom/internal/testsupport"
)

func TestOpenCreatesSchemaAndInsertsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	ctx := context.Background()
	run, err := store.NewRun(ctx, "show", "e01", "run-1")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if run.ID == 0 {
		t.Fatal("expected run ID to be assigned")
	}
	if run.Status != ledger.StatusPending {
		t.Fatalf("new run status = %q, want pending", run.Status)
	}

	fetched, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.EpisodeID != "e01" || fetched.RunID != "run-1" {
		t.Fatalf("unexpected fetched run: %#v", fetched)
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	run, err := store.GetByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil for missing run, got %#v", run)
	}
}

func TestStatusTransitionsAndFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	ctx := context.Background()
	run, err := store.NewRun(ctx, "show", "e02", "run-2")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	for _, status := range []ledger.Status{
		ledger.StatusMerging,
		ledger.StatusMerged,
		ledger.StatusChunking,
		ledger.StatusChunked,
	} {
		if err := store.UpdateStatus(ctx, run.ID, status); err != nil {
			t.Fatalf("UpdateStatus(%s) failed: %v", status, err)
		}
	}

	if err := store.MarkFailed(ctx, run.ID, "chunk artifact unwritable"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Status != ledger.StatusFailed {
		t.Fatalf("status = %q, want failed", fetched.Status)
	}
	if fetched.ErrorMessage != "chunk artifact unwritable" {
		t.Fatalf("error message = %q", fetched.ErrorMessage)
	}
	if !fetched.Status.Terminal() {
		t.Fatal("failed status should be terminal")
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	ctx := context.Background()
	run, err := store.NewRun(ctx, "show", "e03", "run-3")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if err := store.UpdateStatus(ctx, run.ID, ledger.Status("exploded")); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestUpdatePersistsArtifactPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	ctx := context.Background()
	run, err := store.NewRun(ctx, "show", "e04", "run-4")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	run.Status = ledger.StatusCompleted
	run.ScenesPath = "scenes/merged/scenes.json"
	run.ChunksPath = "chunks/chunks.json"
	if err := store.Update(ctx, run); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := store.LatestForEpisode(ctx, "show", "e04")
	if err != nil {
		t.Fatalf("LatestForEpisode failed: %v", err)
	}
	if fetched == nil || fetched.ScenesPath != "scenes/merged/scenes.json" {
		t.Fatalf("paths not persisted: %#v", fetched)
	}
	if fetched.TimelinePath != "" {
		t.Fatalf("unset path should stay empty, got %q", fetched.TimelinePath)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	ctx := context.Background()
	first, err := store.NewRun(ctx, "show", "e01", "run-a")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	second, err := store.NewRun(ctx, "show", "e02", "run-b")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if err := store.UpdateStatus(ctx, second.ID, ledger.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest-first listing, got %#v", all)
	}

	completed, err := store.List(ctx, ledger.StatusCompleted)
	if err != nil {
		t.Fatalf("List(completed) failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != second.ID {
		t.Fatalf("unexpected filtered listing: %#v", completed)
	}
}

func TestClearAndSummarize(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLedger(t, cfg)

	ctx := context.Background()
	run, err := store.NewRun(ctx, "show", "e01", "run-a")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if _, err := store.NewRun(ctx, "show", "e02", "run-b"); err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if err := store.UpdateStatus(ctx, run.ID, ledger.StatusMerging); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	summary, err := store.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.Total != 2 || summary.Pending != 1 || summary.Running != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty ledger, got %#v", remaining)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := ledger.ParseStatus(" Completed "); !ok || status != ledger.StatusCompleted {
		t.Fatalf("ParseStatus(completed) = %q, %v", status, ok)
	}
	if _, ok := ledger.ParseStatus("nope"); ok {
		t.Fatal("unknown status should not parse")
	}
}
