// SPDX-License-Identifier: MIT

// Package matrix provides dense integer matrices and the exact reductions
// used throughout trimanifold: row echelon form, Smith normal form and its
// metrical variant, and ranks over Z and Z/p.
//
// Entries are integer.Integer values, so no operation ever rounds. Storage
// is row-major with the index formula i*cols + j.
//
// Key types and functions:
//
//   - Dense: an r×c integer matrix. Zero-sized shapes are allowed, since
//     boundary maps of empty chain groups are routine in homology.
//   - Elementary operations: SwapRows/SwapCols, AddRow/AddCol,
//     NegateRow/NegateCol, CombRows/CombCols (unimodular 2×2 combinations).
//   - RowEchelonForm: integral (Hermite) reduction in place, returning rank
//     and pivot columns.
//   - SmithNormalForm / MetricalSmithNormalForm: diag(d1 | d2 | ... | dk, 0...)
//     with di >= 1, optionally recording unimodular L, R and their inverses
//     with L·M·R = SNF(M).
//   - RankModP: rank over the prime field Z/p.
//
// Errors:
//
//   - ErrBadShape, ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare.
//   - Arithmetic failures surface as integer.ErrArithmetic.
//
// Complexity:
//
//   - At/Set O(1); Mul O(r·k·c); SNF and echelon forms O(r·c·min(r,c))
//     elementary operations, with entry growth controlled by choosing the
//     smallest available pivot.
package matrix
