package census

import (
	"errors"
	"fmt"
)

var (
	// ErrFile reports a database that could not be opened, read or
	// written.
	ErrFile = errors.New("census: file error")

	// ErrInvalidArgument reports an empty signature or a nil triangulation.
	ErrInvalidArgument = errors.New("census: invalid argument")
)

func censusErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("census.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
