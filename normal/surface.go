package normal

import (
	"sync"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/vector"
)

// Surface is a normal or almost normal surface in a 3-dimensional
// triangulation, held as a vector in one coordinate system.
type Surface struct {
	tri    *triangulation.Triangulation
	coords Coords
	vec    vector.Vector

	// std is vec in Standard or AlmostNormal coordinates, with infinite
	// triangle counts around vertices where the surface is not compact.
	std     vector.Vector
	compact bool

	discOnce sync.Once
	disc     discProps
}

// NewSurface wraps v, a non-negative vector in coordinates c, as a surface
// in t. The matching equations are not checked; see Satisfies.
func NewSurface(t *triangulation.Triangulation, c Coords, v vector.Vector) (*Surface, error) {
	if err := checkTriangulation(opNewSurface, t, c); err != nil {
		return nil, err
	}
	if want := c.Block() * t.Size(); len(v) != want {
		return nil, normalErrorf(opNewSurface, ErrInvalidArgument, "vector has length %d, want %d", len(v), want)
	}
	if !v.IsNonNegative() {
		return nil, normalErrorf(opNewSurface, ErrInvalidArgument, "negative coordinate in %s", v)
	}
	return newSurface(t, c, v.Clone()), nil
}

func newSurface(t *triangulation.Triangulation, c Coords, v vector.Vector) *Surface {
	s := &Surface{tri: t, coords: c, vec: v, std: v, compact: true}
	if c.HasTriangles() {
		for _, x := range v {
			if x.IsInfinite() {
				s.compact = false
				break
			}
		}
		return s
	}
	s.std, s.compact = standardVector(t, c, v)
	return s
}

// Triangulation returns the triangulation the surface lives in.
func (s *Surface) Triangulation() *triangulation.Triangulation { return s.tri }

// Coords returns the coordinate system of Vector.
func (s *Surface) Coords() Coords { return s.coords }

// Vector returns a copy of the coordinate vector.
func (s *Surface) Vector() vector.Vector { return s.vec.Clone() }

// Satisfies reports whether the vector solves the matching equations of
// its coordinate system.
func (s *Surface) Satisfies() bool {
	m, err := MatchingEquations(s.tri, s.coords)
	if err != nil {
		return false
	}
	img, err := m.MulVec(s.vec)
	if err != nil {
		return false
	}
	return vector.Vector(img).IsZero()
}

// Triangles returns the number of triangles about vertex v of tetrahedron
// tet. It is infinite near a vertex where the surface is not compact.
func (s *Surface) Triangles(tet, v int) integer.Integer {
	return s.std[s.coords.standardOf().triPos(tet, v)]
}

// Quads returns the number of quads of type q in tetrahedron tet.
func (s *Surface) Quads(tet, q int) integer.Integer {
	return s.std[s.coords.standardOf().quadPos(tet, q)]
}

// Octs returns the number of octagons of type o in tetrahedron tet, which
// is zero in coordinates without octagons.
func (s *Surface) Octs(tet, o int) integer.Integer {
	if !s.coords.HasOctagons() {
		return integer.Zero
	}
	return s.std[s.coords.standardOf().octPos(tet, o)]
}

// arcs counts the discs of tet meeting face f in an arc about corner w.
func (s *Surface) arcs(tet, f, w int) integer.Integer {
	x := s.Triangles(tet, w).Add(s.Quads(tet, quadSeparating[w][f]))
	if s.coords.HasOctagons() {
		m := quadMeeting[w][f]
		x = x.Add(s.Octs(tet, m[0])).Add(s.Octs(tet, m[1]))
	}
	return x
}

// EdgeWeight returns the number of times the surface meets edge e.
func (s *Surface) EdgeWeight(e int) integer.Integer {
	emb := s.tri.Face(1, e).Front()
	tet := emb.Simplex.Index()
	a, b := emb.Vertices.Image(0), emb.Vertices.Image(1)
	m := quadMeeting[a][b]
	x := s.Triangles(tet, a).Add(s.Triangles(tet, b)).
		Add(s.Quads(tet, m[0])).Add(s.Quads(tet, m[1]))
	if s.coords.HasOctagons() {
		for o := 0; o < 3; o++ {
			x = x.Add(s.Octs(tet, o))
		}
		x = x.Add(s.Octs(tet, quadSeparating[a][b]))
	}
	return x
}

// ArcCount returns the number of arcs in which the surface meets triangle
// tri of the triangulation, cutting off its vertex v.
func (s *Surface) ArcCount(tri, v int) integer.Integer {
	emb := s.tri.Face(2, tri).Front()
	return s.arcs(emb.Simplex.Index(), emb.Vertices.Image(3), emb.Vertices.Image(v))
}

// IsEmpty reports whether the surface has no discs.
func (s *Surface) IsEmpty() bool { return s.vec.IsZero() }

// IsCompact reports whether the surface has finitely many discs.
func (s *Surface) IsCompact() bool { return s.compact }

// EulerChar returns the Euler characteristic of a compact surface, counted
// as edge weights minus arcs plus discs.
func (s *Surface) EulerChar() (integer.Integer, error) {
	if !s.compact {
		return integer.Zero, normalErrorf(opEulerChar, ErrNonCompact, "infinitely many triangles")
	}
	var chi integer.Integer
	for e := 0; e < s.tri.CountFaces(1); e++ {
		chi = chi.Add(s.EdgeWeight(e))
	}
	for f := 0; f < s.tri.CountFaces(2); f++ {
		for v := 0; v < 3; v++ {
			chi = chi.Sub(s.ArcCount(f, v))
		}
	}
	for _, x := range s.std {
		chi = chi.Add(x)
	}
	return chi, nil
}

// HasRealBoundary reports whether the surface meets the boundary of the
// triangulation.
func (s *Surface) HasRealBoundary() bool {
	if !s.tri.HasBoundary() {
		return false
	}
	for _, simp := range s.tri.Simplices() {
		if !simp.HasBoundary() {
			continue
		}
		tet := simp.Index()
		for q := 0; q < 3; q++ {
			if !s.Quads(tet, q).IsZero() || !s.Octs(tet, q).IsZero() {
				return true
			}
		}
		for v := 0; v < 4; v++ {
			if s.Triangles(tet, v).IsZero() {
				continue
			}
			for f := 0; f < 4; f++ {
				if f != v && simp.Adjacent(f) == nil {
					return true
				}
			}
		}
	}
	return false
}

// IsVertexLinking reports whether every disc is a triangle.
func (s *Surface) IsVertexLinking() bool {
	for tet := 0; tet < s.tri.Size(); tet++ {
		for q := 0; q < 3; q++ {
			if !s.Quads(tet, q).IsZero() || !s.Octs(tet, q).IsZero() {
				return false
			}
		}
	}
	return true
}

// IsVertexLink returns the index of the vertex this surface links, a
// positive multiple of that vertex's link, if it is one.
func (s *Surface) IsVertexLink() (int, bool) {
	if !s.IsVertexLinking() {
		return -1, false
	}
	ans := -1
	for _, simp := range s.tri.Simplices() {
		for v := 0; v < 4; v++ {
			if s.Triangles(simp.Index(), v).IsZero() {
				continue
			}
			idx := simp.Vertex(v).Index()
			if ans >= 0 && ans != idx {
				return -1, false
			}
			ans = idx
		}
	}
	return ans, ans >= 0
}

// IsThinEdgeLink returns the edges, at most two, whose thin links are
// positive multiples of this surface.
func (s *Surface) IsThinEdgeLink() []int {
	if !s.compact || s.IsEmpty() || s.IsVertexLinking() {
		return nil
	}
	for tet := 0; tet < s.tri.Size(); tet++ {
		for o := 0; o < 3; o++ {
			if !s.Octs(tet, o).IsZero() {
				return nil
			}
		}
	}
	var out []int
	for e := 0; e < s.tri.CountFaces(1); e++ {
		link, ok := edgeLinkVector(s.tri, e)
		if !ok {
			continue
		}
		if proportional(s.stdNoOcts(), link) {
			out = append(out, e)
			if len(out) == 2 {
				break
			}
		}
	}
	return out
}

// stdNoOcts returns the standard vector without octagon coordinates.
func (s *Surface) stdNoOcts() vector.Vector {
	if !s.coords.HasOctagons() {
		return s.std
	}
	n := s.tri.Size()
	out := vector.New(7 * n)
	for tet := 0; tet < n; tet++ {
		for i := 0; i < 7; i++ {
			out[7*tet+i] = s.std[10*tet+i]
		}
	}
	return out
}

// proportional reports whether v is a positive multiple of w.
func proportional(v, w vector.Vector) bool {
	if len(v) != len(w) || v.IsZero() || w.IsZero() {
		return false
	}
	a, b := v.Clone(), w.Clone()
	a.ScaleDown()
	b.ScaleDown()
	return a.Equal(b)
}

// IsCentral returns the number of tetrahedra holding exactly one disc, or
// zero if some tetrahedron holds more than one.
func (s *Surface) IsCentral() int {
	if !s.compact {
		return 0
	}
	b := s.coords.standardOf().Block()
	central := 0
	for tet := 0; tet < s.tri.Size(); tet++ {
		var total integer.Integer
		for i := 0; i < b; i++ {
			total = total.Add(s.std[b*tet+i])
		}
		switch total.CmpInt64(1) {
		case 1:
			return 0
		case 0:
			central++
		}
	}
	return central
}

// IsSplitting reports whether the surface has exactly one quad in every
// tetrahedron and nothing else.
func (s *Surface) IsSplitting() bool {
	if !s.compact || s.tri.IsEmpty() {
		return false
	}
	one := integer.New(1)
	for tet := 0; tet < s.tri.Size(); tet++ {
		var quads integer.Integer
		for q := 0; q < 3; q++ {
			if !s.Octs(tet, q).IsZero() {
				return false
			}
			quads = quads.Add(s.Quads(tet, q))
		}
		for v := 0; v < 4; v++ {
			if !s.Triangles(tet, v).IsZero() {
				return false
			}
		}
		if !quads.Equal(one) {
			return false
		}
	}
	return true
}

// String returns the standard vector in the form "(a, b, ...)".
func (s *Surface) String() string { return s.std.String() }
