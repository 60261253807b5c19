// Package workflow runs the episode pipeline: merge, chunk, timeline, and
// frame planning in order, holding the episode run lock and recording
// progress in the ledger.
package workflow
