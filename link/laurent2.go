package link

import (
	"sort"
	"strings"

	"github.com/katalvlaran/trimanifold/integer"
)

// Laurent2 is a Laurent polynomial in two variables with integer
// coefficients. The zero value is the zero polynomial. Values are
// immutable.
type Laurent2 struct {
	terms map[[2]int]integer.Integer // only non-zero coefficients
}

// Monomial2 returns c·x^i·y^j.
func Monomial2(i, j int, c int64) Laurent2 {
	if c == 0 {
		return Laurent2{}
	}
	return Laurent2{terms: map[[2]int]integer.Integer{{i, j}: integer.New(c)}}
}

// IsZero reports whether p is the zero polynomial.
func (p Laurent2) IsZero() bool { return len(p.terms) == 0 }

// Coeff returns the coefficient of x^i·y^j.
func (p Laurent2) Coeff(i, j int) integer.Integer { return p.terms[[2]int{i, j}] }

// Len returns the number of non-zero terms.
func (p Laurent2) Len() int { return len(p.terms) }

func (p Laurent2) addInto(out map[[2]int]integer.Integer, k integer.Integer, di, dj int) {
	for e, c := range p.terms {
		key := [2]int{e[0] + di, e[1] + dj}
		v := out[key].Add(c.Mul(k))
		if v.IsZero() {
			delete(out, key)
		} else {
			out[key] = v
		}
	}
}

// Add returns p + q.
func (p Laurent2) Add(q Laurent2) Laurent2 {
	out := make(map[[2]int]integer.Integer, len(p.terms)+len(q.terms))
	p.addInto(out, integer.One, 0, 0)
	q.addInto(out, integer.One, 0, 0)
	return Laurent2{terms: out}
}

// Sub returns p − q.
func (p Laurent2) Sub(q Laurent2) Laurent2 {
	out := make(map[[2]int]integer.Integer, len(p.terms)+len(q.terms))
	p.addInto(out, integer.One, 0, 0)
	q.addInto(out, integer.New(-1), 0, 0)
	return Laurent2{terms: out}
}

// Mul returns p·q.
func (p Laurent2) Mul(q Laurent2) Laurent2 {
	out := make(map[[2]int]integer.Integer)
	for e, c := range q.terms {
		p.addInto(out, c, e[0], e[1])
	}
	return Laurent2{terms: out}
}

// Scale returns k·p.
func (p Laurent2) Scale(k integer.Integer) Laurent2 {
	out := make(map[[2]int]integer.Integer, len(p.terms))
	p.addInto(out, k, 0, 0)
	return Laurent2{terms: out}
}

// Shift returns x^i·y^j·p.
func (p Laurent2) Shift(i, j int) Laurent2 {
	out := make(map[[2]int]integer.Integer, len(p.terms))
	p.addInto(out, integer.One, i, j)
	return Laurent2{terms: out}
}

// Equal reports whether p and q have the same terms.
func (p Laurent2) Equal(q Laurent2) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for e, c := range p.terms {
		if !c.Equal(q.terms[e]) {
			return false
		}
	}
	return true
}

// String writes p in the variables x and y.
func (p Laurent2) String() string { return p.Format("x", "y") }

// Format writes p in the given variables, ordered by descending power of
// the first variable and then of the second, for example
// "x^-2 y^2 + 2 x^-2 - x^-4".
func (p Laurent2) Format(vx, vy string) string {
	if p.IsZero() {
		return "0"
	}
	keys := make([][2]int, 0, len(p.terms))
	for e := range p.terms {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a][0] != keys[b][0] {
			return keys[a][0] > keys[b][0]
		}
		return keys[a][1] > keys[b][1]
	})
	var b strings.Builder
	for _, e := range keys {
		writeTerm(&b, p.terms[e], func(b *strings.Builder) {
			writeVar(b, vx, e[0])
			if e[0] != 0 && e[1] != 0 {
				b.WriteString(" ")
			}
			writeVar(b, vy, e[1])
		}, e == [2]int{})
	}
	return b.String()
}
