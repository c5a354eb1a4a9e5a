package normal

import (
	"github.com/katalvlaran/trimanifold/bfs"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/vector"
)

// cornerGraph has one node per tetrahedron corner, 4·tet + w. Two corners
// are joined when a face glues them; the port is the face number on the
// source side. Its components are the vertex links.
type cornerGraph struct {
	t *triangulation.Triangulation
}

func (g cornerGraph) Order() int { return 4 * g.t.Size() }

func (g cornerGraph) Arcs(v int) []bfs.Arc {
	s := g.t.Simplex(v / 4)
	w := v % 4
	out := make([]bfs.Arc, 0, 3)
	for f := 0; f < 4; f++ {
		if f == w {
			continue
		}
		adj := s.Adjacent(f)
		if adj == nil {
			continue
		}
		out = append(out, bfs.Arc{To: 4*adj.Index() + s.Gluing(f).Image(w), Port: f})
	}
	return out
}

// nonTriangleArcs counts the quad and octagon arcs of quadVec (in
// coordinates c without triangles) that cut off corner w of face f.
func nonTriangleArcs(c Coords, v vector.Vector, tet, f, w int) integer.Integer {
	x := v[c.quadPos(tet, quadSeparating[w][f])]
	if c.HasOctagons() {
		m := quadMeeting[w][f]
		x = x.Add(v[c.octPos(tet, m[0])]).Add(v[c.octPos(tet, m[1])])
	}
	return x
}

// standardVector rebuilds the triangle coordinates of a surface given in
// quad or quad-oct coordinates. Around each vertex the triangle counts are
// fixed by the matching equations up to a constant; the constant is chosen
// so the smallest count is zero. A vertex link around which the counts do
// not close up gets infinitely many triangles, and compact is false.
func standardVector(t *triangulation.Triangulation, c Coords, v vector.Vector) (std vector.Vector, compact bool) {
	sc := c.standardOf()
	n := t.Size()
	std = vector.New(sc.Block() * n)
	for tet := 0; tet < n; tet++ {
		for q := 0; q < 3; q++ {
			std[sc.quadPos(tet, q)] = v[c.quadPos(tet, q)]
			if c.HasOctagons() {
				std[sc.octPos(tet, q)] = v[c.octPos(tet, q)]
			}
		}
	}
	if n == 0 {
		return std, true
	}

	g := cornerGraph{t: t}
	labels, count, res, err := bfs.Components(g)
	if err != nil {
		panic("normal: corner graph: " + err.Error())
	}
	tri := make([]integer.Integer, g.Order())
	step := func(from, f int) (to int, val integer.Integer) {
		s := t.Simplex(from / 4)
		w := from % 4
		adj := s.Adjacent(f)
		gl := s.Gluing(f)
		to = 4*adj.Index() + gl.Image(w)
		val = tri[from].
			Add(nonTriangleArcs(c, v, s.Index(), f, w)).
			Sub(nonTriangleArcs(c, v, adj.Index(), gl.Image(f), gl.Image(w)))
		return to, val
	}
	for _, u := range res.Order {
		if p := res.Parent[u]; p >= 0 {
			_, tri[u] = step(p, res.ParentPort[u])
		}
	}

	broken := make([]bool, count)
	for u := 0; u < g.Order(); u++ {
		for _, a := range g.Arcs(u) {
			if _, val := step(u, a.Port); !val.Equal(tri[a.To]) {
				broken[labels[u]] = true
			}
		}
	}
	low := make([]integer.Integer, count)
	seen := make([]bool, count)
	for u, l := range labels {
		if !seen[l] || tri[u].Cmp(low[l]) < 0 {
			low[l], seen[l] = tri[u], true
		}
	}

	compact = true
	for u, l := range labels {
		pos := sc.triPos(u/4, u%4)
		if broken[l] {
			std[pos] = integer.Infinity()
			compact = false
			continue
		}
		std[pos] = tri[u].Sub(low[l])
	}
	return std, compact
}

// ToStandard returns s in Standard or AlmostNormal coordinates. Surfaces
// already in those coordinates are returned as they are. A non-compact
// surface has no standard form and yields ErrNonCompact.
func ToStandard(s *Surface) (*Surface, error) {
	if s.coords.HasTriangles() {
		return s, nil
	}
	if !s.compact {
		return nil, normalErrorf(opToStandard, ErrNonCompact, "infinitely many triangles near an ideal vertex")
	}
	return newSurface(s.tri, s.coords.standardOf(), s.std.Clone()), nil
}

// ToQuad returns s in Quad or QuadOct coordinates by dropping the triangle
// coordinates.
func ToQuad(s *Surface) (*Surface, error) {
	if !s.coords.HasTriangles() {
		return s, nil
	}
	qc := s.coords.quadOf()
	n := s.tri.Size()
	v := vector.New(qc.Block() * n)
	for tet := 0; tet < n; tet++ {
		for q := 0; q < 3; q++ {
			v[qc.quadPos(tet, q)] = s.vec[s.coords.quadPos(tet, q)]
			if qc.HasOctagons() {
				v[qc.octPos(tet, q)] = s.vec[s.coords.octPos(tet, q)]
			}
		}
	}
	if v.IsZero() && !s.vec.IsZero() {
		return nil, normalErrorf(opToQuad, ErrNotApplicable, "vertex linking surface has no quad form")
	}
	return newSurface(s.tri, qc, v), nil
}
