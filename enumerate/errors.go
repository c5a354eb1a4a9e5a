package enumerate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed cone or constraint set.
	ErrInvalidArgument = errors.New("enumerate: invalid argument")

	// ErrOptionViolation reports an invalid option value.
	ErrOptionViolation = errors.New("enumerate: invalid option")
)

func enumErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("enumerate.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
