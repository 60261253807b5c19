// Package artifacts owns the on-disk layout of per-episode pipeline output.
//
// Every episode gets a directory tree under the configured artifacts root
// (scenes, chunks, timeline, frames, and the slots later stages fill in).
// The package provides atomic JSON writes so partially written artifacts are
// never observed, a per-episode run lock so two pipeline invocations cannot
// interleave, and run metadata recording.
package artifacts
