// Package abelian models finitely generated abelian groups.
//
// Group stores a free rank and invariant factors d1 | d2 | ... with every
// di > 1; groups are built from a list of torsion orders, from a relation
// matrix, or directly from a pair of chain-complex boundary maps, and are
// always normalised through Smith normal form.
//
// MarkedGroup keeps the chain-level coordinate changes of a homology group
// so that cycles can be converted to group coordinates and back. HomMarked
// uses two marked groups and a chain map to compute the kernel, cokernel and
// image of the induced homomorphism.
package abelian
