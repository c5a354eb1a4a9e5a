package distinguish

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a malformed container document.
	ErrInvalidInput = errors.New("distinguish: invalid input")

	// ErrInvalidArgument reports a bad configuration value.
	ErrInvalidArgument = errors.New("distinguish: invalid argument")
)

func distinguishErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("distinguish.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
