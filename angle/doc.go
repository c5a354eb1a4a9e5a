// Package angle enumerates angle structures on 3-dimensional
// triangulations.
//
// An angle structure assigns an angle in [0, π] to each pair of opposite
// edges of each tetrahedron so that the three angles of a tetrahedron sum
// to π and the angles around every internal edge sum to 2π. Structures are
// held as integer vectors of length 3n+1: three angle members per
// tetrahedron, for the edge pairs 01|23, 02|13 and 03|12, followed by a
// scaling member. The angle of pair p in tetrahedron t is
// vec[3t+p] / vec[3n] multiples of π.
//
// The solution space is a polytope; Enumerate returns its vertices via the
// cone enumerators of package enumerate. A strict structure (every angle
// strictly between 0 and π) exists exactly when the barycentre of the
// vertices is strict. Taut structures, with every angle 0 or π, are always
// vertices and can be listed directly with WithTautOnly.
package angle
