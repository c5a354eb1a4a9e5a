package integer

import "fmt"

// ModInverse returns the inverse of a modulo n in [0, n).
// It fails with ErrArithmetic when n <= 0 or gcd(a, n) != 1.
func ModInverse(a, n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: modulus %d", ErrArithmetic, n)
	}
	if n == 1 {
		return 0, nil
	}
	d, u, _ := GCDWithCoeffs(New(a), New(n))
	if !d.Equal(One) {
		return 0, fmt.Errorf("%w: %d is not invertible modulo %d", ErrArithmetic, a, n)
	}
	r, _ := u.Mod(New(n))
	v, _ := r.Int64()
	return v, nil
}

// PowMod returns base^exp mod n for exp >= 0 and n > 0.
func PowMod(base, exp, n int64) (int64, error) {
	if n <= 0 || exp < 0 {
		return 0, fmt.Errorf("%w: PowMod(%d, %d, %d)", ErrArithmetic, base, exp, n)
	}
	b, _ := New(base).Mod(New(n))
	result, acc := One, b
	m := New(n)
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result, _ = result.Mul(acc).Mod(m)
		}
		acc, _ = acc.Mul(acc).Mod(m)
	}
	r, _ := result.Mod(m)
	v, _ := r.Int64()
	return v, nil
}

// Legendre returns the Legendre symbol (a/p) for an odd prime p.
func Legendre(a, p int64) (int, error) {
	if p < 3 || p%2 == 0 {
		return 0, fmt.Errorf("%w: Legendre symbol needs an odd prime, got %d", ErrArithmetic, p)
	}
	r, err := PowMod(a, (p-1)/2, p)
	if err != nil {
		return 0, err
	}
	switch r {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return -1, nil
}

// GCD64 is GCD on native values.
func GCD64(a, b int64) int64 {
	g, _ := GCD(New(a), New(b)).Int64()
	return g
}
