package angle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a wrong dimension, an invalid
	// triangulation, or a malformed vector.
	ErrInvalidArgument = errors.New("angle: invalid argument")

	// ErrNoStrict reports that no strict angle structure exists.
	ErrNoStrict = errors.New("angle: no strict angle structure")
)

func angleErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("angle.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
