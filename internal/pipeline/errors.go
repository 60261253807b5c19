package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument marks caller contract violations such as a
	// non-positive chunk target or a merge chain limit below one.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedArtifact marks artifacts that could not be decoded.
	ErrMalformedArtifact = errors.New("malformed artifact")
	// ErrNotFound marks missing artifacts or ledger rows.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks inputs that decoded but failed a semantic check.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error is a caller contract violation that should
// abort the surrounding run instead of marking one episode as failed.
func Fatal(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
