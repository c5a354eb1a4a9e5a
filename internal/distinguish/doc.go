// Package distinguish groups triangulations by the manifold they claim to
// represent and compares cheap invariants across and within the groups.
//
// Each container names one manifold and lists triangulations of it, given
// as isomorphism signatures or SnapPea files. Run computes H₁, the Z/2
// rank of H₂ and Turaev–Viro values for every member, then reports
// containers whose members disagree and pairs of containers whose
// invariants all match. Matching invariants do not prove two manifolds
// homeomorphic; the pairs are candidates only.
package distinguish
