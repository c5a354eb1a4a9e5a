// Package perm implements permutations of {0, ..., n-1} for 2 <= n <= 16.
//
// A Perm packs its images four bits each into a single word, so values are
// comparable with == and cheap to copy. Perms are ordered lexicographically
// by their image sequences; Index returns the position of a permutation in
// that order and FromIndex inverts it. Every table in this module (Sn, the
// gluing codes in isomorphism signatures, canonical-form comparisons) uses
// the same lexicographic order.
//
// Composition follows the usual convention: p.Compose(q) maps i to p(q(i)).
//
// For n <= 7 the full group is available as a sorted slice through Sn, and
// for n <= 5 composition of indices is served from a precomputed table.
package perm
