package angle

import (
	"strings"
	"sync"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/vector"
)

// Structure is an angle structure on a triangulation.
type Structure struct {
	tri *triangulation.Triangulation
	vec vector.Vector

	typeOnce sync.Once
	strict   bool
	taut     bool
	veering  bool
}

// NewStructure wraps v, a non-negative vector of length 3n+1 with a
// positive scaling member, as an angle structure on t. The angle equations
// are not checked; see Satisfies.
func NewStructure(t *triangulation.Triangulation, v vector.Vector) (*Structure, error) {
	if err := checkTriangulation("NewStructure", t); err != nil {
		return nil, err
	}
	if want := 3*t.Size() + 1; len(v) != want {
		return nil, angleErrorf("NewStructure", ErrInvalidArgument, "vector has length %d, want %d", len(v), want)
	}
	if !v.IsNonNegative() || v[len(v)-1].Sign() <= 0 {
		return nil, angleErrorf("NewStructure", ErrInvalidArgument, "vector %s is not a scaled angle vector", v)
	}
	return &Structure{tri: t, vec: v.Clone()}, nil
}

// Triangulation returns the triangulation the structure lives on.
func (s *Structure) Triangulation() *triangulation.Triangulation { return s.tri }

// Vector returns a copy of the underlying vector, scaling member last.
func (s *Structure) Vector() vector.Vector { return s.vec.Clone() }

// Angle returns the angle of edge pair p in tetrahedron tet as a multiple
// of π.
func (s *Structure) Angle(tet, p int) integer.Rational {
	q, err := integer.Frac(s.vec[3*tet+p], s.vec[len(s.vec)-1])
	if err != nil {
		// The scaling member is positive by construction.
		panic(err)
	}
	return q
}

// Satisfies reports whether the vector solves the angle equations.
func (s *Structure) Satisfies() bool {
	m, err := Equations(s.tri)
	if err != nil {
		return false
	}
	img, err := m.MulVec(s.vec)
	if err != nil {
		return false
	}
	return vector.Vector(img).IsZero()
}

// IsStrict reports whether every angle lies strictly between 0 and π.
func (s *Structure) IsStrict() bool {
	s.classify()
	return s.strict
}

// IsTaut reports whether every angle is 0 or π. Coorientations of the
// triangles are not checked.
func (s *Structure) IsTaut() bool {
	s.classify()
	return s.taut
}

// IsVeering reports whether the structure is taut and its edges can be
// coloured red and blue so that in each tetrahedron the two pairs of
// zero-angle edges carry opposite colours, in the order fixed by the
// tetrahedron's orientation. Non-orientable triangulations are never
// veering.
func (s *Structure) IsVeering() bool {
	s.classify()
	return s.veering
}

func (s *Structure) classify() {
	s.typeOnce.Do(func() {
		scale := s.vec[len(s.vec)-1]
		s.strict, s.taut = true, true
		for _, x := range s.vec[:len(s.vec)-1] {
			if x.IsZero() || x.Equal(scale) {
				s.strict = false
			}
			if !x.IsZero() && !x.Equal(scale) {
				s.taut = false
			}
		}
		if s.taut && s.tri.IsOrientable() {
			s.veering = s.coloured()
		}
	})
}

// coloured tries to colour the edges of a taut structure. The pair with
// angle π is skipped; of the other two, the one following it cyclically
// takes the tetrahedron's orientation sign as its colour and the last pair
// takes the opposite sign.
func (s *Structure) coloured() bool {
	colour := make([]int, s.tri.CountFaces(1))
	for _, simp := range s.tri.Simplices() {
		tet := simp.Index()
		pi := 0
		for p := 0; p < 3; p++ {
			if !s.vec[3*tet+p].IsZero() {
				pi = p
			}
		}
		orient := simp.Orientation()
		for j := 1; j <= 2; j++ {
			p := (pi + j) % 3
			c := orient
			if j == 2 {
				c = -orient
			}
			for _, e := range [2]int{p, 5 - p} {
				idx := simp.Edge(e).Index()
				if colour[idx] == 0 {
					colour[idx] = c
				} else if colour[idx] != c {
					return false
				}
			}
		}
	}
	return true
}

// String returns the angles as "(a, b, c ; d, e, f ; ...)" in multiples of
// π.
func (s *Structure) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for tet := 0; tet < s.tri.Size(); tet++ {
		if tet > 0 {
			b.WriteString(" ; ")
		}
		for p := 0; p < 3; p++ {
			if p > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.Angle(tet, p).String())
		}
	}
	b.WriteByte(')')
	return b.String()
}
