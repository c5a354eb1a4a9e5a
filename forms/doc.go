// Package forms works with integral symmetric bilinear forms, chiefly the
// intersection form on H₂ of a closed oriented 4-manifold.
//
// A Form wraps a symmetric integer matrix. Rank and parity come straight
// from the entries; the signature is computed exactly by congruence
// diagonalisation over the rationals and is only defined for
// non-degenerate forms. SignatureFloat gives an independent floating-point
// answer from the eigenvalues.
package forms
