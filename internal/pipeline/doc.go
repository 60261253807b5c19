// Package pipeline defines the shared error taxonomy and context annotations
// used by every stage of the episode pipeline.
//
// Stages classify failures by wrapping them with one of the exported sentinel
// errors so callers can decide with errors.Is whether a failure is a caller
// contract violation, a damaged artifact, or a missing input. Context helpers
// carry episode, stage, and run identifiers so log lines stay correlated
// without threading extra parameters through every call.
package pipeline
