package facetpairing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed pairing: an index out of range,
	// an asymmetric text representation, a facet matched twice.
	ErrInvalidArgument = errors.New("facetpairing: invalid argument")

	// ErrInvalidDimension reports a dimension outside 2..4.
	ErrInvalidDimension = errors.New("facetpairing: dimension must be 2, 3 or 4")

	// ErrNotApplicable reports a query that needs dimension 3.
	ErrNotApplicable = errors.New("facetpairing: operation not applicable")
)

func pairErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("facetpairing.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
