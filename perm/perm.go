package perm

import (
	"fmt"
	"strings"
)

// MaxSize is the largest supported permutation size.
const MaxSize = 16

const digits = "0123456789abcdef"

// Perm is a permutation of {0, ..., n-1}. The zero value is not a valid
// permutation; use Identity or one of the constructors.
type Perm struct {
	code uint64 // image of i in bits [4i, 4i+4)
	n    uint8
}

var factorials = func() [MaxSize + 1]uint64 {
	var f [MaxSize + 1]uint64
	f[0] = 1
	for i := 1; i <= MaxSize; i++ {
		f[i] = f[i-1] * uint64(i)
	}
	return f
}()

// Factorial returns n! for 0 <= n <= 16.
func Factorial(n int) uint64 { return factorials[n] }

func checkSize(n int) error {
	if n < 2 || n > MaxSize {
		return fmt.Errorf("%w: %d", ErrSize, n)
	}
	return nil
}

// Identity returns the identity on n elements. It panics if n is out of range.
func Identity(n int) Perm {
	if err := checkSize(n); err != nil {
		panic(err)
	}
	var c uint64
	for i := 0; i < n; i++ {
		c |= uint64(i) << (4 * i)
	}
	return Perm{code: c, n: uint8(n)}
}

// FromImages builds the permutation sending i to images[i].
func FromImages(images ...int) (Perm, error) {
	n := len(images)
	if err := checkSize(n); err != nil {
		return Perm{}, err
	}
	var seen uint32
	var c uint64
	for i, v := range images {
		if v < 0 || v >= n || seen&(1<<v) != 0 {
			return Perm{}, fmt.Errorf("%w: %v", ErrNotPermutation, images)
		}
		seen |= 1 << v
		c |= uint64(v) << (4 * i)
	}
	return Perm{code: c, n: uint8(n)}, nil
}

// Of is FromImages for literal, known-good image lists. It panics on error.
func Of(images ...int) Perm {
	p, err := FromImages(images...)
	if err != nil {
		panic(err)
	}
	return p
}

// Transposition returns the permutation of n elements swapping a and b.
func Transposition(n, a, b int) Perm {
	p := Identity(n)
	p.set(a, b)
	p.set(b, a)
	return p
}

// Pair returns a permutation of n elements with 0 -> a and 1 -> b, filling
// the remaining images with the unused values in increasing order.
// For n == 4 it is the standard way to name an edge of a tetrahedron.
func Pair(n, a, b int) Perm {
	p := Identity(n)
	p.set(0, a)
	p.set(1, b)
	next := 2
	for v := 0; v < n; v++ {
		if v != a && v != b {
			p.set(next, v)
			next++
		}
	}
	return p
}

func (p *Perm) set(i, v int) {
	p.code &^= 0xf << (4 * i)
	p.code |= uint64(v) << (4 * i)
}

// Size returns n.
func (p Perm) Size() int { return int(p.n) }

// Image returns p(i).
func (p Perm) Image(i int) int { return int(p.code>>(4*i)) & 0xf }

// Pre returns p⁻¹(i).
func (p Perm) Pre(i int) int {
	for j := 0; j < int(p.n); j++ {
		if p.Image(j) == i {
			return j
		}
	}
	return -1
}

// Images returns the image sequence of p.
func (p Perm) Images() []int {
	out := make([]int, p.n)
	for i := range out {
		out[i] = p.Image(i)
	}
	return out
}

// Compose returns p∘q, the permutation i -> p(q(i)). Both must share a size.
func (p Perm) Compose(q Perm) Perm {
	r := Perm{n: p.n}
	for i := 0; i < int(p.n); i++ {
		r.code |= uint64(p.Image(q.Image(i))) << (4 * i)
	}
	return r
}

// Inverse returns p⁻¹.
func (p Perm) Inverse() Perm {
	r := Perm{n: p.n}
	for i := 0; i < int(p.n); i++ {
		r.code |= uint64(i) << (4 * p.Image(i))
	}
	return r
}

// IsIdentity reports whether p fixes every element.
func (p Perm) IsIdentity() bool { return p == Identity(int(p.n)) }

// Sign returns +1 for even and -1 for odd permutations.
func (p Perm) Sign() int {
	inv := 0
	for i := 0; i < int(p.n); i++ {
		for j := i + 1; j < int(p.n); j++ {
			if p.Image(i) > p.Image(j) {
				inv++
			}
		}
	}
	if inv%2 == 0 {
		return 1
	}
	return -1
}

// Index returns the position of p in the lexicographic ordering of Sn.
func (p Perm) Index() int {
	var idx uint64
	var used uint32
	n := int(p.n)
	for i := 0; i < n; i++ {
		v := p.Image(i)
		smaller := 0
		for w := 0; w < v; w++ {
			if used&(1<<w) == 0 {
				smaller++
			}
		}
		used |= 1 << v
		idx += uint64(smaller) * factorials[n-1-i]
	}
	return int(idx)
}

// FromIndex returns the permutation at lexicographic position idx in Sn.
func FromIndex(n, idx int) (Perm, error) {
	if err := checkSize(n); err != nil {
		return Perm{}, err
	}
	if idx < 0 || uint64(idx) >= factorials[n] {
		return Perm{}, fmt.Errorf("%w: %d not in [0, %d!)", ErrIndex, idx, n)
	}
	var used uint32
	p := Perm{n: uint8(n)}
	rest := uint64(idx)
	for i := 0; i < n; i++ {
		f := factorials[n-1-i]
		k := int(rest / f)
		rest %= f
		for v := 0; v < n; v++ {
			if used&(1<<v) != 0 {
				continue
			}
			if k == 0 {
				used |= 1 << v
				p.set(i, v)
				break
			}
			k--
		}
	}
	return p, nil
}

// Compare orders permutations lexicographically by image sequence.
func (p Perm) Compare(q Perm) int {
	for i := 0; i < int(p.n); i++ {
		a, b := p.Image(i), q.Image(i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Extend returns the permutation on m >= n elements that agrees with p on
// {0..n-1} and fixes everything else.
func (p Perm) Extend(m int) Perm {
	r := Identity(m)
	for i := 0; i < int(p.n); i++ {
		r.set(i, p.Image(i))
	}
	return r
}

// Restrict returns p as a permutation of its first m elements. p must map
// {0..m-1} to itself.
func (p Perm) Restrict(m int) (Perm, error) {
	imgs := p.Images()[:m]
	return FromImages(imgs...)
}

// String renders the images as hex digits, e.g. "1023".
func (p Perm) String() string {
	var b strings.Builder
	for i := 0; i < int(p.n); i++ {
		b.WriteByte(digits[p.Image(i)])
	}
	return b.String()
}

// TrimString renders the first k images; for k < n this names a face
// embedding such as the edge "01".
func (p Perm) TrimString(k int) string { return p.String()[:k] }

// Parse reads a permutation string produced by String.
func Parse(s string) (Perm, error) {
	if err := checkSize(len(s)); err != nil {
		return Perm{}, fmt.Errorf("%w: %q", ErrInvalidString, s)
	}
	imgs := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(digits, s[i])
		if d < 0 {
			return Perm{}, fmt.Errorf("%w: %q", ErrInvalidString, s)
		}
		imgs[i] = d
	}
	p, err := FromImages(imgs...)
	if err != nil {
		return Perm{}, fmt.Errorf("%w: %q", ErrInvalidString, s)
	}
	return p, nil
}
