package pipeline

import "context"

type contextKey string

const (
	episodeKey contextKey = "episode"
	seriesKey  contextKey = "series"
	stageKey   contextKey = "stage"
	runIDKey   contextKey = "run_id"
)

// WithEpisode annotates context with the episode identifier.
func WithEpisode(ctx context.Context, episode string) context.Context {
	if episode == "" {
		return ctx
	}
	return context.WithValue(ctx, episodeKey, episode)
}

// EpisodeFromContext extracts the episode identifier if present.
func EpisodeFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(episodeKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithSeries annotates context with the series identifier.
func WithSeries(ctx context.Context, series string) context.Context {
	if series == "" {
		return ctx
	}
	return context.WithValue(ctx, seriesKey, series)
}

// SeriesFromContext extracts the series identifier if present.
func SeriesFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(seriesKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(stageKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRunID annotates context with the run identifier recorded in run metadata.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(runIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
