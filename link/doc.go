// Package link models oriented link diagrams given by planar diagram codes
// and computes their classical polynomial invariants.
//
// A planar diagram (PD) code lists one 4-tuple per crossing. Each tuple
// names the four strands meeting there in counter-clockwise order, starting
// from the incoming lower strand. Every strand label appears exactly twice.
//
// The Kauffman bracket is a Laurent polynomial in A, normalised so the
// zero-crossing unknot has bracket 1. The Jones polynomial is returned in
// the variable √t. The HOMFLY-PT polynomial uses the variables (α, z) with
// the skein relation α·P(L₊) − α⁻¹·P(L₋) = z·P(L₀) and P(unknot) = 1.
package link
