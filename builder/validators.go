// Package builder provides validation helpers to enforce parameter
// contracts in Constructor factories.
//
// Each function returns a sentinel wrapped by builderErrorf when its
// precondition is violated.
package builder

import (
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// validateMin ensures that the provided integer 'got' is ≥ 'min'.
// Complexity: O(1) time and space.
func validateMin(method string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrBadParameter, "parameter must be ≥ %d, got %d", min, got)
	}
	return nil
}

// validateCoprime checks that a and b are non-negative and coprime.
// (0, 1) is accepted; (0, 0) is not.
func validateCoprime(method string, a, b int) error {
	if a < 0 || b < 0 {
		return builderErrorf(method, ErrBadParameter, "parameters must be non-negative, got %d and %d", a, b)
	}
	if integer.GCD64(int64(a), int64(b)) != 1 {
		return builderErrorf(method, ErrBadParameter, "parameters %d and %d are not coprime", a, b)
	}
	return nil
}

// requireDim ensures t has one of the listed dimensions.
func requireDim(method string, t *triangulation.Triangulation, dims ...int) error {
	for _, d := range dims {
		if t.Dim() == d {
			return nil
		}
	}
	return builderErrorf(method, ErrUnsupportedDimension, "dimension %d, want one of %v", t.Dim(), dims)
}
