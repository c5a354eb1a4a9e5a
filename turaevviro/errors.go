package turaevviro

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a wrong dimension or bad parameters.
	ErrInvalidArgument = errors.New("turaevviro: invalid argument")

	// ErrCancelled reports a run stopped by its context or tracker.
	ErrCancelled = errors.New("turaevviro: cancelled")
)

func tvErrorf(err error, format string, args ...any) error {
	return fmt.Errorf("turaevviro.Evaluate: %w: %s", err, fmt.Sprintf(format, args...))
}
