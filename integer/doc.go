// Package integer provides the exact scalar types used by every matrix,
// vector and homology computation in trimanifold.
//
// Integer keeps small values in a machine word and escalates to math/big on
// overflow. Escalation is one-way: once a value lives on the heap it stays
// there, and any result computed from it is also heap-backed. A distinguished
// infinity value compares greater than every finite value and absorbs
// addition and multiplication.
//
// Rational wraps big.Rat with the same error conventions.
//
// Errors:
//
//   - ErrArithmetic: inexact DivExact, division by zero, or arithmetic that
//     has no meaning on infinity (for example infinity minus infinity).
//   - ErrParse: malformed textual input.
package integer
