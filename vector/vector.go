// Package vector provides dense integer vectors and the ray operations used
// by the cone enumerators: lexicographic comparison, gcd scaling, and
// intersection of two rays with a hyperplane.
package vector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/trimanifold/integer"
)

// ErrLength reports operands of different lengths.
var ErrLength = errors.New("vector: length mismatch")

// Vector is a dense vector of exact integers.
type Vector []integer.Integer

// New returns the zero vector of length n.
func New(n int) Vector { return make(Vector, n) }

// Unit returns the n-dimensional unit vector e_i.
func Unit(n, i int) Vector {
	v := New(n)
	v[i] = integer.One
	return v
}

// Of builds a vector from native values.
func Of(vals ...int64) Vector {
	v := make(Vector, len(vals))
	for i, x := range vals {
		v[i] = integer.New(x)
	}
	return v
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// IsZero reports whether every entry is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if !x.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports entrywise equality.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if !v[i].Equal(w[i]) {
			return false
		}
	}
	return true
}

// Compare orders vectors lexicographically; shorter prefixes come first.
func (v Vector) Compare(w Vector) int {
	n := min(len(v), len(w))
	for i := 0; i < n; i++ {
		if c := v[i].Cmp(w[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(v) < len(w):
		return -1
	case len(v) > len(w):
		return 1
	}
	return 0
}

// Dot returns v·w.
func (v Vector) Dot(w Vector) (integer.Integer, error) {
	if len(v) != len(w) {
		return integer.Zero, fmt.Errorf("%w: %d vs %d", ErrLength, len(v), len(w))
	}
	acc := integer.Zero
	for i := range v {
		if !v[i].IsZero() && !w[i].IsZero() {
			acc = acc.Add(v[i].Mul(w[i]))
		}
	}
	return acc, nil
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	out := v.Clone()
	for i := range out {
		out[i] = out[i].Add(w[i])
	}
	return out
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	out := v.Clone()
	for i := range out {
		out[i] = out[i].Sub(w[i])
	}
	return out
}

// Scale returns k·v.
func (v Vector) Scale(k integer.Integer) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x.Mul(k)
	}
	return out
}

// AddScaled performs v += k·w in place.
func (v Vector) AddScaled(w Vector, k integer.Integer) {
	for i := range v {
		if !w[i].IsZero() {
			v[i] = v[i].Add(w[i].Mul(k))
		}
	}
}

// SubtractCopies performs v -= k·w in place.
func (v Vector) SubtractCopies(w Vector, k integer.Integer) { v.AddScaled(w, k.Neg()) }

// ScaleDown divides v in place by the gcd of its finite non-zero entries and
// returns that gcd. Infinite entries are left alone. The zero vector is
// unchanged and yields 0.
func (v Vector) ScaleDown() integer.Integer {
	g := integer.Zero
	for _, x := range v {
		if x.IsInfinite() || x.IsZero() {
			continue
		}
		g = integer.GCD(g, x)
		if g.Equal(integer.One) {
			return g
		}
	}
	if g.IsZero() || g.Equal(integer.One) {
		return g
	}
	for i, x := range v {
		if x.IsInfinite() || x.IsZero() {
			continue
		}
		v[i], _ = x.DivExact(g)
	}
	return g
}

// Normalise scales v down and then flips its sign so that the first non-zero
// entry is positive.
func (v Vector) Normalise() {
	v.ScaleDown()
	for _, x := range v {
		if x.IsZero() {
			continue
		}
		if x.Sign() < 0 {
			for i := range v {
				v[i] = v[i].Neg()
			}
		}
		return
	}
}

// Intersect returns the ray (h·u)v − (h·v)u, which lies on the hyperplane
// h·x = 0, scaled down and oriented to be non-negative when u and v lie on
// opposite sides of h.
func Intersect(u, v, h Vector) (Vector, error) {
	hu, err := h.Dot(u)
	if err != nil {
		return nil, err
	}
	hv, err := h.Dot(v)
	if err != nil {
		return nil, err
	}
	out := v.Scale(hu)
	out.SubtractCopies(u, hv)
	if hu.Sign() < 0 {
		for i := range out {
			out[i] = out[i].Neg()
		}
	}
	out.ScaleDown()
	return out, nil
}

// Dominates reports v >= w entrywise.
func (v Vector) Dominates(w Vector) bool {
	for i := range v {
		if v[i].Cmp(w[i]) < 0 {
			return false
		}
	}
	return true
}

// IsNonNegative reports whether every entry is >= 0.
func (v Vector) IsNonNegative() bool {
	for _, x := range v {
		if x.Sign() < 0 {
			return false
		}
	}
	return true
}

// Support returns the indices of non-zero entries.
func (v Vector) Support() []int {
	var out []int
	for i, x := range v {
		if !x.IsZero() {
			out = append(out, i)
		}
	}
	return out
}

// Ints returns v as native values; ok is false if any entry does not fit.
func (v Vector) Ints() (out []int64, ok bool) {
	out = make([]int64, len(v))
	for i, x := range v {
		n, fits := x.Int64()
		if !fits {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// String renders v as "(a, b, c)".
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = x.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
