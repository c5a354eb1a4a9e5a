// Package snappea reads and writes the SnapPea text format for
// 3-dimensional triangulations.
//
// The reader accepts the layout written by SnapPea and its descendants:
// a "% Triangulation" marker, the manifold name, solution data, cusp
// records and one record per tetrahedron. Only the gluings are kept; the
// manifold name becomes the triangulation label. Every gluing is read from
// both of its sides and the two must agree.
//
// The writer emits closed or ideal triangulations with no boundary facets,
// with all geometric fields left unknown.
package snappea
