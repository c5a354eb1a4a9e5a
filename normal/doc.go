// Package normal enumerates and classifies normal surfaces in
// 3-dimensional triangulations.
//
// A normal surface meets each tetrahedron in finitely many disjoint
// elementary discs: triangles cutting off one vertex and quadrilaterals
// separating two pairs of vertices. Almost normal surfaces may also carry
// octagons, at most one octagon type overall. A surface is recorded as the
// number of discs of each type in each tetrahedron.
//
// Coordinate systems (per tetrahedron):
//
//	Standard      4 triangles, 3 quads              (7n)
//	Quad          3 quads                           (3n)
//	AlmostNormal  4 triangles, 3 quads, 3 octagons  (10n)
//	QuadOct       3 quads, 3 octagons               (6n)
//
// Quad type q keeps together the vertices of tetrahedron edges q and 5−q:
// type 0 pairs 01|23, type 1 pairs 02|13 and type 2 pairs 03|12. Octagon
// type o uses the same pairing and meets the two kept-together edges twice.
//
// Enumerate builds the matching equations and validity constraints for a
// coordinate system and hands the resulting cone to package enumerate.
// Surfaces given in quad coordinates are converted to standard form by
// walking the links of the vertices; a surface with infinitely many
// triangles near an ideal vertex is non-compact.
//
// Properties of a Surface are computed lazily and cached. A Surface is
// safe for concurrent reads.
package normal
