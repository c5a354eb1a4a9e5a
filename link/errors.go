package link

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed planar diagram code.
	ErrInvalidArgument = errors.New("link: invalid argument")

	// ErrTooLarge reports a diagram with too many crossings for an
	// exponential-time invariant.
	ErrTooLarge = errors.New("link: diagram too large")
)

func linkErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("link.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
