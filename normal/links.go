package normal

import (
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/vector"
)

// VertexLinkSurface returns the link of vertex v in standard coordinates:
// one triangle at every tetrahedron corner belonging to v.
func VertexLinkSurface(t *triangulation.Triangulation, v int) (*Surface, error) {
	if err := checkTriangulation(opVertexLink, t, Standard); err != nil {
		return nil, err
	}
	if v < 0 || v >= t.CountFaces(0) {
		return nil, normalErrorf(opVertexLink, ErrInvalidArgument, "vertex %d of %d", v, t.CountFaces(0))
	}
	vec := vector.New(7 * t.Size())
	one := integer.New(1)
	for _, s := range t.Simplices() {
		for w := 0; w < 4; w++ {
			if s.Vertex(w).Index() == v {
				vec[Standard.triPos(s.Index(), w)] = one
			}
		}
	}
	return newSurface(t, Standard, vec), nil
}

// ThinEdgeLinkSurface returns the frontier of a thin regular neighbourhood
// of edge e in standard coordinates. Each tetrahedron contributes one quad
// per copy of e that the quad keeps together, and a triangle at every
// corner lying on an end of e whose three edges avoid e. If that frontier
// is not a normal surface the result is ErrNotApplicable.
func ThinEdgeLinkSurface(t *triangulation.Triangulation, e int) (*Surface, error) {
	if err := checkTriangulation(opEdgeLink, t, Standard); err != nil {
		return nil, err
	}
	if e < 0 || e >= t.CountFaces(1) {
		return nil, normalErrorf(opEdgeLink, ErrInvalidArgument, "edge %d of %d", e, t.CountFaces(1))
	}
	vec, ok := edgeLinkVector(t, e)
	if !ok {
		return nil, normalErrorf(opEdgeLink, ErrNotApplicable, "edge %d has no thin normal link", e)
	}
	return newSurface(t, Standard, vec), nil
}

// edgeLinkVector builds the candidate thin link of edge e and reports
// whether it is a non-empty solution of the standard matching equations.
func edgeLinkVector(t *triangulation.Triangulation, e int) (vector.Vector, bool) {
	edge := t.Face(1, e)
	ends := [2]int{edge.Vertex(0).Index(), edge.Vertex(1).Index()}
	edgeAt := func(s *triangulation.Simplex, a, b int) int {
		return s.Edge(triangulation.FaceNumber(3, 1, a, b)).Index()
	}

	vec := vector.New(7 * t.Size())
	for _, s := range t.Simplices() {
		tet := s.Index()
		for q := 0; q < 3; q++ {
			d := quadDefn[q]
			var k int64
			if edgeAt(s, d[0], d[1]) == e {
				k++
			}
			if edgeAt(s, d[2], d[3]) == e {
				k++
			}
			vec[Standard.quadPos(tet, q)] = integer.New(k)
		}
		for v := 0; v < 4; v++ {
			vi := s.Vertex(v).Index()
			if vi != ends[0] && vi != ends[1] {
				continue
			}
			touches := false
			for u := 0; u < 4; u++ {
				if u != v && edgeAt(s, v, u) == e {
					touches = true
					break
				}
			}
			if !touches {
				vec[Standard.triPos(tet, v)] = integer.New(1)
			}
		}
	}
	if vec.IsZero() {
		return nil, false
	}
	m, err := MatchingEquations(t, Standard)
	if err != nil {
		return nil, false
	}
	img, err := m.MulVec(vec)
	if err != nil || !vector.Vector(img).IsZero() {
		return nil, false
	}
	return vec, true
}
