package integer

import (
	"fmt"
	"math/big"
)

// Rational is an immutable exact fraction. The zero value is 0.
type Rational struct {
	r *big.Rat
}

// NewRational returns num/den in lowest terms; den must be non-zero.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return Rational{r: big.NewRat(num, den)}, nil
}

// RationalFromInt returns the rational x/1. Infinity is rejected.
func RationalFromInt(x Integer) (Rational, error) {
	if x.IsInfinite() {
		return Rational{}, fmt.Errorf("%w: infinite rational", ErrArithmetic)
	}
	return Rational{r: new(big.Rat).SetInt(x.bigView())}, nil
}

// RationalFromInt64 returns v/1.
func RationalFromInt64(v int64) Rational { return Rational{r: new(big.Rat).SetInt64(v)} }

// Frac returns num/den for Integers, failing on a zero or infinite denominator.
func Frac(num, den Integer) (Rational, error) {
	if num.IsInfinite() || den.IsInfinite() {
		return Rational{}, fmt.Errorf("%w: infinite rational", ErrArithmetic)
	}
	if den.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return Rational{r: new(big.Rat).SetFrac(num.bigView(), den.bigView())}, nil
}

func (q Rational) rat() *big.Rat {
	if q.r == nil {
		return new(big.Rat)
	}
	return q.r
}

// Num returns the numerator in lowest terms.
func (q Rational) Num() Integer { return FromBig(q.rat().Num()) }

// Den returns the positive denominator in lowest terms.
func (q Rational) Den() Integer { return FromBig(q.rat().Denom()) }

// Add returns q + p.
func (q Rational) Add(p Rational) Rational { return Rational{r: new(big.Rat).Add(q.rat(), p.rat())} }

// Sub returns q - p.
func (q Rational) Sub(p Rational) Rational { return Rational{r: new(big.Rat).Sub(q.rat(), p.rat())} }

// Mul returns q * p.
func (q Rational) Mul(p Rational) Rational { return Rational{r: new(big.Rat).Mul(q.rat(), p.rat())} }

// Neg returns -q.
func (q Rational) Neg() Rational { return Rational{r: new(big.Rat).Neg(q.rat())} }

// Div returns q / p, failing with ErrDivisionByZero when p == 0.
func (q Rational) Div(p Rational) (Rational, error) {
	if p.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return Rational{r: new(big.Rat).Quo(q.rat(), p.rat())}, nil
}

// Inverse returns 1/q.
func (q Rational) Inverse() (Rational, error) { return RationalFromInt64(1).Div(q) }

// Sign returns -1, 0 or +1.
func (q Rational) Sign() int { return q.rat().Sign() }

// IsZero reports q == 0.
func (q Rational) IsZero() bool { return q.Sign() == 0 }

// Cmp compares q and p.
func (q Rational) Cmp(p Rational) int { return q.rat().Cmp(p.rat()) }

// Equal reports q == p.
func (q Rational) Equal(p Rational) bool { return q.Cmp(p) == 0 }

// IsInteger reports whether the denominator is 1.
func (q Rational) IsInteger() bool { return q.rat().IsInt() }

// Float64 returns the nearest float64.
func (q Rational) Float64() float64 {
	f, _ := q.rat().Float64()
	return f
}

// String renders q as "n" or "n/d".
func (q Rational) String() string { return q.rat().RatString() }
