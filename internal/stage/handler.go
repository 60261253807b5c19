// Package stage defines the contract the workflow runner needs from each
// pipeline stage.
package stage

import (
	"context"

	"sceneloom/internal/ledger"
)

// Handler describes one pipeline stage. Prepare validates inputs and may mark
// the run skippable; Execute produces the stage's artifacts; HealthCheck
// reports readiness without side effects.
type Handler interface {
	Prepare(context.Context, *ledger.Run) error
	Execute(context.Context, *ledger.Run) error
	HealthCheck(context.Context) Health
}

// SkipError signals that a stage has nothing to do for this run and the
// workflow should continue with the next stage.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "stage skipped: " + e.Reason
}

// Skip builds a SkipError with the given reason.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}
