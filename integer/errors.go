package integer

import (
	"errors"
	"fmt"
)

var (
	// ErrArithmetic reports that an exact arithmetic precondition failed.
	ErrArithmetic = errors.New("integer: arithmetic error")

	// ErrDivisionByZero is an ErrArithmetic raised for a zero divisor.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrArithmetic)

	// ErrParse reports malformed textual input.
	ErrParse = errors.New("integer: cannot parse")
)
