package integer

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Integer is an exact signed integer with a word-sized fast path.
//
// The zero value is the finite integer 0. Integers are immutable values:
// every operation returns a fresh Integer and never modifies a shared
// *big.Int.
type Integer struct {
	small int64
	large *big.Int // non-nil once escalated
	inf   bool
}

// Frequently used constants.
var (
	Zero = Integer{}
	One  = Integer{small: 1}
)

// New returns the finite integer v in its native representation.
func New(v int64) Integer { return Integer{small: v} }

// FromBig returns an escalated copy of v. A nil v is treated as zero.
func FromBig(v *big.Int) Integer {
	if v == nil {
		return Integer{large: new(big.Int)}
	}
	return Integer{large: new(big.Int).Set(v)}
}

// Infinity returns the infinite sentinel.
func Infinity() Integer { return Integer{inf: true} }

// Parse reads a decimal integer, or "inf" for infinity.
func Parse(s string) (Integer, error) {
	t := strings.TrimSpace(s)
	if t == "inf" || t == "∞" {
		return Infinity(), nil
	}
	b, ok := new(big.Int).SetString(t, 10)
	if !ok {
		return Zero, fmt.Errorf("%w: %q", ErrParse, s)
	}
	if b.IsInt64() {
		return New(b.Int64()), nil
	}
	return Integer{large: b}, nil
}

// MustParse is Parse that panics on malformed input; for literals only.
func MustParse(s string) Integer {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsInfinite reports whether x is the infinite sentinel.
func (x Integer) IsInfinite() bool { return x.inf }

// IsNative reports whether x is finite and still in word representation.
func (x Integer) IsNative() bool { return !x.inf && x.large == nil }

// IsZero reports whether x is the finite value 0.
func (x Integer) IsZero() bool {
	if x.inf {
		return false
	}
	if x.large != nil {
		return x.large.Sign() == 0
	}
	return x.small == 0
}

// Sign returns -1, 0 or +1. Infinity is positive.
func (x Integer) Sign() int {
	switch {
	case x.inf:
		return 1
	case x.large != nil:
		return x.large.Sign()
	case x.small < 0:
		return -1
	case x.small > 0:
		return 1
	}
	return 0
}

// Int64 returns x as an int64 and whether the conversion was exact.
func (x Integer) Int64() (int64, bool) {
	if x.inf {
		return 0, false
	}
	if x.large != nil {
		if x.large.IsInt64() {
			return x.large.Int64(), true
		}
		return 0, false
	}
	return x.small, true
}

// Big returns a fresh *big.Int holding x, or nil for infinity.
func (x Integer) Big() *big.Int {
	if x.inf {
		return nil
	}
	if x.large != nil {
		return new(big.Int).Set(x.large)
	}
	return big.NewInt(x.small)
}

// bigView returns a read-only big.Int for a finite x; callers must not mutate it.
func (x Integer) bigView() *big.Int {
	if x.large != nil {
		return x.large
	}
	return big.NewInt(x.small)
}

// String renders x in decimal, or "inf".
func (x Integer) String() string {
	if x.inf {
		return "inf"
	}
	if x.large != nil {
		return x.large.String()
	}
	return fmt.Sprintf("%d", x.small)
}

// Cmp compares x and y. Infinity equals only itself and exceeds everything else.
func (x Integer) Cmp(y Integer) int {
	switch {
	case x.inf && y.inf:
		return 0
	case x.inf:
		return 1
	case y.inf:
		return -1
	}
	if x.large == nil && y.large == nil {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return 1
		}
		return 0
	}
	return x.bigView().Cmp(y.bigView())
}

// Equal reports x == y.
func (x Integer) Equal(y Integer) bool { return x.Cmp(y) == 0 }

// CmpInt64 compares x with a native value.
func (x Integer) CmpInt64(v int64) int { return x.Cmp(New(v)) }

// escalated reports whether either operand forces heap arithmetic.
func escalated(x, y Integer) bool { return x.large != nil || y.large != nil }

// Add returns x + y.
func (x Integer) Add(y Integer) Integer {
	if x.inf || y.inf {
		return Infinity()
	}
	if !escalated(x, y) {
		s := x.small + y.small
		if (x.small >= 0) == (y.small >= 0) && (s >= 0) != (x.small >= 0) {
			return Integer{large: new(big.Int).Add(big.NewInt(x.small), big.NewInt(y.small))}
		}
		return Integer{small: s}
	}
	return Integer{large: new(big.Int).Add(x.bigView(), y.bigView())}
}

// Sub returns x - y. Subtracting from or by infinity yields infinity.
func (x Integer) Sub(y Integer) Integer {
	if x.inf || y.inf {
		return Infinity()
	}
	return x.Add(y.Neg())
}

// Neg returns -x.
func (x Integer) Neg() Integer {
	if x.inf {
		return x
	}
	if x.large == nil {
		if x.small == math.MinInt64 {
			return Integer{large: new(big.Int).Neg(big.NewInt(x.small))}
		}
		return Integer{small: -x.small}
	}
	return Integer{large: new(big.Int).Neg(x.large)}
}

// Abs returns |x|.
func (x Integer) Abs() Integer {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x
}

// Mul returns x * y. Any product involving infinity is infinity.
func (x Integer) Mul(y Integer) Integer {
	if x.inf || y.inf {
		return Infinity()
	}
	if !escalated(x, y) {
		a, b := x.small, y.small
		if a == 0 || b == 0 {
			return Zero
		}
		p := a * b
		overflow := p/b != a ||
			(a == -1 && b == math.MinInt64) ||
			(b == -1 && a == math.MinInt64)
		if !overflow {
			return Integer{small: p}
		}
	}
	return Integer{large: new(big.Int).Mul(x.bigView(), y.bigView())}
}

// MulInt64 returns x * v.
func (x Integer) MulInt64(v int64) Integer { return x.Mul(New(v)) }

// AddInt64 returns x + v.
func (x Integer) AddInt64(v int64) Integer { return x.Add(New(v)) }

// Div returns x / y rounded towards zero.
func (x Integer) Div(y Integer) (Integer, error) {
	if err := checkDivision(x, y); err != nil {
		return Zero, err
	}
	if !escalated(x, y) {
		if x.small == math.MinInt64 && y.small == -1 {
			return Integer{large: new(big.Int).Neg(big.NewInt(x.small))}, nil
		}
		return Integer{small: x.small / y.small}, nil
	}
	return Integer{large: new(big.Int).Quo(x.bigView(), y.bigView())}, nil
}

// Mod returns the non-negative remainder of x modulo |y|.
func (x Integer) Mod(y Integer) (Integer, error) {
	if err := checkDivision(x, y); err != nil {
		return Zero, err
	}
	if !escalated(x, y) {
		if y.small == -1 || y.small == 1 {
			return Zero, nil
		}
		r := x.small % y.small
		if r < 0 {
			if y.small < 0 {
				r -= y.small
			} else {
				r += y.small
			}
		}
		return Integer{small: r}, nil
	}
	m := new(big.Int).Abs(y.bigView())
	return Integer{large: new(big.Int).Mod(x.bigView(), m)}, nil
}

// DivExact returns x / y, failing with ErrArithmetic unless y divides x.
func (x Integer) DivExact(y Integer) (Integer, error) {
	r, err := x.Mod(y)
	if err != nil {
		return Zero, err
	}
	if !r.IsZero() {
		return Zero, fmt.Errorf("%w: %s does not divide %s", ErrArithmetic, y, x)
	}
	return x.Div(y)
}

// Divides reports whether d divides x. Zero divides only zero.
func (d Integer) Divides(x Integer) bool {
	if d.inf || x.inf {
		return false
	}
	if d.IsZero() {
		return x.IsZero()
	}
	r, err := x.Mod(d)
	return err == nil && r.IsZero()
}

func checkDivision(x, y Integer) error {
	if x.inf || y.inf {
		return fmt.Errorf("%w: division involving infinity", ErrArithmetic)
	}
	if y.IsZero() {
		return ErrDivisionByZero
	}
	return nil
}

// GCD returns the non-negative greatest common divisor of a and b.
// Infinite operands are ignored, so GCD(inf, b) == |b|.
func GCD(a, b Integer) Integer {
	if a.inf {
		return b.Abs()
	}
	if b.inf {
		return a.Abs()
	}
	if !escalated(a, b) && a.small != math.MinInt64 && b.small != math.MinInt64 {
		x, y := a.small, b.small
		if x < 0 {
			x = -x
		}
		if y < 0 {
			y = -y
		}
		for y != 0 {
			x, y = y, x%y
		}
		return Integer{small: x}
	}
	return Integer{large: new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.bigView()), new(big.Int).Abs(b.bigView()))}
}

// LCM returns the non-negative least common multiple of a and b.
func LCM(a, b Integer) Integer {
	if a.IsZero() || b.IsZero() {
		return Zero
	}
	g := GCD(a, b)
	q, _ := a.Abs().Div(g)
	return q.Mul(b.Abs())
}

// GCDWithCoeffs returns d = gcd(a, b) >= 0 together with u, v such that
// d = u*a + v*b. When both inputs are zero it returns (0, 0, 0).
func GCDWithCoeffs(a, b Integer) (d, u, v Integer) {
	if a.IsZero() && b.IsZero() {
		return Zero, Zero, Zero
	}
	oldR, r := a, b
	oldS, s := One, Zero
	oldT, t := Zero, One
	for !r.IsZero() {
		q, _ := oldR.Div(r)
		oldR, r = r, oldR.Sub(q.Mul(r))
		oldS, s = s, oldS.Sub(q.Mul(s))
		oldT, t = t, oldT.Sub(q.Mul(t))
	}
	if oldR.Sign() < 0 {
		return oldR.Neg(), oldS.Neg(), oldT.Neg()
	}
	return oldR, oldS, oldT
}

// Min returns the smaller of a and b.
func Min(a, b Integer) Integer {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Integer) Integer {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
