package recognise

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented reports a query with no formula coded for the
	// variant.
	ErrNotImplemented = errors.New("recognise: not implemented")

	// ErrInvalidArgument reports variant parameters that describe no
	// triangulation.
	ErrInvalidArgument = errors.New("recognise: invalid argument")
)

func recogniseErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("recognise.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
