package enumerate

import (
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/vector"
)

// Cone is { x ≥ 0 : Rows·x = 0 }. A matrix with no rows describes the
// whole orthant; the dimension is Rows.Cols().
type Cone struct {
	Rows *matrix.Dense
}

// NewCone wraps the given equations.
func NewCone(rows *matrix.Dense) (Cone, error) {
	c := Cone{Rows: rows}
	if err := c.validate("NewCone"); err != nil {
		return Cone{}, err
	}
	return c, nil
}

func (c Cone) validate(op string) error {
	if c.Rows == nil {
		return enumErrorf(op, ErrInvalidArgument, "nil equation matrix")
	}
	if c.Rows.Cols() == 0 {
		return enumErrorf(op, ErrInvalidArgument, "cone of dimension 0")
	}
	return nil
}

// Dim returns the ambient dimension.
func (c Cone) Dim() int { return c.Rows.Cols() }

func (c Cone) hyperplane(i int) vector.Vector { return vector.Vector(c.Rows.Row(i)) }

// image returns Rows·v.
func (c Cone) image(v vector.Vector) vector.Vector {
	out, err := c.Rows.MulVec(v)
	if err != nil {
		panic("enumerate: " + err.Error())
	}
	return out
}

// Contains reports whether v lies in the cone.
func (c Cone) Contains(v vector.Vector) bool {
	if len(v) != c.Dim() || !v.IsNonNegative() {
		return false
	}
	return c.image(v).IsZero()
}

// Constraint is a set of coordinates of which at most one may be non-zero.
type Constraint []int

// Constraints is a conjunction of Constraint sets. The empty set admits
// every support.
type Constraints []Constraint

func (cs Constraints) validate(op string, dim int) error {
	for i, c := range cs {
		for _, j := range c {
			if j < 0 || j >= dim {
				return enumErrorf(op, ErrInvalidArgument, "constraint %d names coordinate %d of %d", i, j, dim)
			}
		}
	}
	return nil
}

// Admits reports whether a vector whose non-zero coordinates are exactly
// those marked in support satisfies every constraint.
func (cs Constraints) Admits(support []bool) bool {
	for _, c := range cs {
		seen := false
		for _, j := range c {
			if !support[j] {
				continue
			}
			if seen {
				return false
			}
			seen = true
		}
	}
	return true
}

// AdmitsVector applies Admits to the support of v.
func (cs Constraints) AdmitsVector(v vector.Vector) bool {
	if len(cs) == 0 {
		return true
	}
	return cs.Admits(supportOf(v))
}

func supportOf(v vector.Vector) []bool {
	s := make([]bool, len(v))
	for i, x := range v {
		s[i] = !x.IsZero()
	}
	return s
}

// admitsUnion reports whether the union of the supports of u and v is
// admissible.
func (cs Constraints) admitsUnion(u, v vector.Vector) bool {
	if len(cs) == 0 {
		return true
	}
	s := make([]bool, len(u))
	for i := range u {
		s[i] = !u[i].IsZero() || !v[i].IsZero()
	}
	return cs.Admits(s)
}

func units(c Cone, cons Constraints) []vector.Vector {
	n := c.Dim()
	out := make([]vector.Vector, 0, n)
	for i := 0; i < n; i++ {
		u := vector.Unit(n, i)
		if cons.AdmitsVector(u) {
			out = append(out, u)
		}
	}
	return out
}

// dominated reports whether some element of set is entrywise <= v.
func dominated(v vector.Vector, set []vector.Vector) bool {
	for _, x := range set {
		if v.Dominates(x) {
			return true
		}
	}
	return false
}

// minimal drops every vector that dominates another one in vs.
func minimal(vs []vector.Vector) []vector.Vector {
	out := vs[:0:0]
	for i, v := range vs {
		keep := true
		for j, w := range vs {
			if i != j && v.Dominates(w) && !v.Equal(w) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, v)
		}
	}
	return out
}
