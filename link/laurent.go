package link

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/trimanifold/integer"
)

// Laurent is a Laurent polynomial in one variable with integer
// coefficients. The zero value is the zero polynomial. Values are
// immutable; every operation returns a new polynomial.
type Laurent struct {
	min   int
	coeff []integer.Integer // coeff[i] multiplies x^(min+i); both ends non-zero
}

// NewLaurent returns c₀·x^minExp + c₁·x^(minExp+1) + …
func NewLaurent(minExp int, coeffs ...int64) Laurent {
	c := make([]integer.Integer, len(coeffs))
	for i, v := range coeffs {
		c[i] = integer.New(v)
	}
	return normalise(minExp, c)
}

func normalise(minExp int, c []integer.Integer) Laurent {
	lo, hi := 0, len(c)
	for lo < hi && c[lo].IsZero() {
		lo++
	}
	for hi > lo && c[hi-1].IsZero() {
		hi--
	}
	if lo == hi {
		return Laurent{}
	}
	return Laurent{min: minExp + lo, coeff: c[lo:hi]}
}

// IsZero reports whether p is the zero polynomial.
func (p Laurent) IsZero() bool { return len(p.coeff) == 0 }

// MinExp returns the lowest exponent with a non-zero coefficient, or 0 for
// the zero polynomial.
func (p Laurent) MinExp() int { return p.min }

// MaxExp returns the highest exponent with a non-zero coefficient, or 0
// for the zero polynomial.
func (p Laurent) MaxExp() int {
	if p.IsZero() {
		return 0
	}
	return p.min + len(p.coeff) - 1
}

// Coeff returns the coefficient of x^e.
func (p Laurent) Coeff(e int) integer.Integer {
	if i := e - p.min; i >= 0 && i < len(p.coeff) {
		return p.coeff[i]
	}
	return integer.Zero
}

// Add returns p + q.
func (p Laurent) Add(q Laurent) Laurent {
	switch {
	case p.IsZero():
		return q
	case q.IsZero():
		return p
	}
	lo, hi := min(p.min, q.min), max(p.MaxExp(), q.MaxExp())
	c := make([]integer.Integer, hi-lo+1)
	for e := lo; e <= hi; e++ {
		c[e-lo] = p.Coeff(e).Add(q.Coeff(e))
	}
	return normalise(lo, c)
}

// Sub returns p − q.
func (p Laurent) Sub(q Laurent) Laurent { return p.Add(q.Scale(integer.New(-1))) }

// Mul returns p·q.
func (p Laurent) Mul(q Laurent) Laurent {
	if p.IsZero() || q.IsZero() {
		return Laurent{}
	}
	c := make([]integer.Integer, len(p.coeff)+len(q.coeff)-1)
	for i, a := range p.coeff {
		for j, b := range q.coeff {
			c[i+j] = c[i+j].Add(a.Mul(b))
		}
	}
	return normalise(p.min+q.min, c)
}

// Scale returns k·p.
func (p Laurent) Scale(k integer.Integer) Laurent {
	c := make([]integer.Integer, len(p.coeff))
	for i, a := range p.coeff {
		c[i] = a.Mul(k)
	}
	return normalise(p.min, c)
}

// Shift returns x^k·p.
func (p Laurent) Shift(k int) Laurent {
	if p.IsZero() {
		return p
	}
	return Laurent{min: p.min + k, coeff: p.coeff}
}

// Equal reports whether p and q have the same coefficients.
func (p Laurent) Equal(q Laurent) bool {
	if p.min != q.min || len(p.coeff) != len(q.coeff) {
		return len(p.coeff) == 0 && len(q.coeff) == 0
	}
	for i := range p.coeff {
		if !p.coeff[i].Equal(q.coeff[i]) {
			return false
		}
	}
	return true
}

// String writes p in the variable x, highest power first.
func (p Laurent) String() string { return p.Format("x") }

// Format writes p in the given variable, highest power first, for example
// "-x^8 + x^6 + x^2".
func (p Laurent) Format(v string) string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	for e := p.MaxExp(); e >= p.min; e-- {
		writeTerm(&b, p.Coeff(e), func(b *strings.Builder) { writeVar(b, v, e) }, e == 0)
	}
	return b.String()
}

// writeTerm appends one signed term; vars writes the monomial and constant
// marks a term without variables.
func writeTerm(b *strings.Builder, c integer.Integer, vars func(*strings.Builder), constant bool) {
	if c.IsZero() {
		return
	}
	neg := c.Sign() < 0
	abs := c.Abs()
	switch {
	case b.Len() == 0 && neg:
		b.WriteString("-")
	case b.Len() > 0 && neg:
		b.WriteString(" - ")
	case b.Len() > 0:
		b.WriteString(" + ")
	}
	if constant {
		b.WriteString(abs.String())
		return
	}
	if abs.CmpInt64(1) != 0 {
		b.WriteString(abs.String())
		b.WriteString(" ")
	}
	vars(b)
}

func writeVar(b *strings.Builder, v string, e int) {
	if e == 0 {
		return
	}
	b.WriteString(v)
	if e != 1 {
		b.WriteString("^")
		b.WriteString(strconv.Itoa(e))
	}
}
