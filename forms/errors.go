package forms

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/trimanifold/integer"
)

var (
	// ErrInvalidArgument reports a nil, non-square, non-symmetric or
	// infinite-entry matrix.
	ErrInvalidArgument = errors.New("forms: invalid argument")

	// ErrArithmetic is integer.ErrArithmetic; the signature of a singular
	// form wraps it.
	ErrArithmetic = integer.ErrArithmetic
)

func formsErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("forms.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
