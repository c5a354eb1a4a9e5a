// Package recognise identifies components of 3-dimensional triangulations
// that are exact copies of well-known parametric triangulations.
//
// Each family is a Standard variant carrying the parameters needed to
// rebuild it. Recognise runs cheap filters first (size, boundary, first
// homology) and only then builds candidates and compares isomorphism
// signatures, so a positive answer means the component is combinatorially
// isomorphic to the reconstruction.
package recognise
