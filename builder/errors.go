// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Implementations attach context with builderErrorf, which keeps the
//     sentinel reachable through %w.
//   - Constructors MUST NOT panic; validation panics are confined to option
//     constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrBadParameter indicates that a numeric parameter is outside the domain of
// the requested constructor: a negative size, a non-coprime pair for a
// layered solid torus or lens space, and so on.
// Usage: if errors.Is(err, ErrBadParameter) { /* report invalid parameters */ }.
var ErrBadParameter = errors.New("builder: invalid parameter")

// ErrUnsupportedDimension indicates the invoked constructor does not exist in
// the dimension of the target triangulation (a lens space in dimension 4, a
// torus in dimension 3).
// Usage: if errors.Is(err, ErrUnsupportedDimension) { /* switch dimension */ }.
var ErrUnsupportedDimension = errors.New("builder: unsupported dimension")

// ErrConstructFailed indicates that the builder could not finish a
// construction: a nil constructor, a decoding failure, or a fold search that
// found no gluing with the requested topology.
// Usage: if errors.Is(err, ErrConstructFailed) { /* inspect the wrapped cause */ }.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf wraps a sentinel with the given method context.
// It returns an error of the form "<Method>: <formatted message>: <sentinel>".
func builderErrorf(method string, sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
