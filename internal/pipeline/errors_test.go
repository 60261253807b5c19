package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrInvalidArgument, "chunk", "build", "target_sec must be positive", base)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument classification, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	for _, want := range []string{"chunk", "build", "target_sec must be positive"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "merge", "", "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation fallback, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrNotFound, "", "", "", nil)
	if !strings.Contains(err.Error(), "stage failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestFatal(t *testing.T) {
	if !Fatal(Wrap(ErrInvalidArgument, "chunk", "build", "bad target", nil)) {
		t.Fatal("invalid argument should be fatal")
	}
	if Fatal(Wrap(ErrNotFound, "chunk", "load", "missing scenes", nil)) {
		t.Fatal("not found should not be fatal")
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := EpisodeFromContext(ctx); ok {
		t.Fatal("unexpected episode on fresh context")
	}
	ctx = WithEpisode(ctx, "e01")
	ctx = WithSeries(ctx, "show")
	ctx = WithStage(ctx, "merge")
	ctx = WithRunID(ctx, "run-1")

	if got, ok := EpisodeFromContext(ctx); !ok || got != "e01" {
		t.Fatalf("episode = %q, %v", got, ok)
	}
	if got, ok := SeriesFromContext(ctx); !ok || got != "show" {
		t.Fatalf("series = %q, %v", got, ok)
	}
	if got, ok := StageFromContext(ctx); !ok || got != "merge" {
		t.Fatalf("stage = %q, %v", got, ok)
	}
	if got, ok := RunIDFromContext(ctx); !ok || got != "run-1" {
		t.Fatalf("run id = %q, %v", got, ok)
	}
}
