package snappea

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports text that is not SnapPea data: a missing
	// marker, an early end of input or a malformed field.
	ErrInvalidInput = errors.New("snappea: invalid input")

	// ErrInvalidArgument reports inconsistent gluings in the input, or a
	// triangulation the writer cannot express.
	ErrInvalidArgument = errors.New("snappea: invalid argument")

	// ErrFile reports a file that could not be opened or written.
	ErrFile = errors.New("snappea: file error")
)

func snapErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("snappea.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
