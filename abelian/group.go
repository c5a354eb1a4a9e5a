package abelian

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
)

var (
	// ErrNegativeRank reports a negative free rank.
	ErrNegativeRank = errors.New("abelian: negative rank")

	// ErrNotChainComplex reports a pair of maps whose composite is non-zero
	// or whose shapes do not compose.
	ErrNotChainComplex = errors.New("abelian: maps do not form a chain complex")

	// ErrNotCycle reports a chain that is not in the kernel of the outgoing map.
	ErrNotCycle = errors.New("abelian: chain is not a cycle")

	// ErrBadGenerator reports a generator index out of range.
	ErrBadGenerator = errors.New("abelian: generator index out of range")
)

// Group is a finitely generated abelian group Z^rank ⊕ Z/d1 ⊕ ... ⊕ Z/dk,
// with every di > 1 and di | di+1. The zero value is the trivial group.
type Group struct {
	rank    int
	factors []integer.Integer
}

// Trivial returns the zero group.
func Trivial() Group { return Group{} }

// Free returns Z^rank.
func Free(rank int) Group { return Group{rank: rank} }

// Cyclic returns Z/n for n > 1, Z for n == 0, and the trivial group for n == 1.
func Cyclic(n int64) Group {
	g, _ := New(0, integer.New(n))
	return g
}

// New returns Z^rank ⊕ ⨁ Z/t for the given torsion orders, normalised to
// invariant-factor form. Orders of 0 contribute extra free rank and orders of
// ±1 are dropped.
func New(rank int, torsion ...integer.Integer) (Group, error) {
	if rank < 0 {
		return Group{}, fmt.Errorf("%w: %d", ErrNegativeRank, rank)
	}
	m := matrix.Zeros(len(torsion), len(torsion))
	for i, t := range torsion {
		m.SetEntry(i, i, t)
	}
	g := fromSNF(m, len(torsion))
	g.rank += rank
	return g, nil
}

// MustNew is New for literal arguments.
func MustNew(rank int, torsion ...int64) Group {
	ts := make([]integer.Integer, len(torsion))
	for i, t := range torsion {
		ts[i] = integer.New(t)
	}
	g, err := New(rank, ts...)
	if err != nil {
		panic(err)
	}
	return g
}

// FromPresentation returns the group generated by gens generators subject to
// the relations given as the rows of rel (rel.Cols() must equal gens).
func FromPresentation(gens int, rel *matrix.Dense) (Group, error) {
	if rel.Cols() != gens {
		return Group{}, fmt.Errorf("%w: %d generators, %d relation columns", matrix.ErrDimensionMismatch, gens, rel.Cols())
	}
	m := rel.Clone()
	return fromSNF(m, gens), nil
}

// FromChainComplex returns ker(out) / im(in) for maps
// in: Z^k → Z^n (an n×k matrix) and out: Z^n → Z^m (an m×n matrix).
// Either map may be nil, standing for the zero map.
func FromChainComplex(in, out *matrix.Dense) (Group, error) {
	n := -1
	if in != nil {
		n = in.Rows()
	}
	if out != nil {
		if n >= 0 && out.Cols() != n {
			return Group{}, fmt.Errorf("%w: %d×%d after %d×%d", ErrNotChainComplex, out.Rows(), out.Cols(), in.Rows(), in.Cols())
		}
		n = out.Cols()
	}
	if n < 0 {
		return Group{}, nil
	}
	outRank := 0
	if out != nil {
		outRank = out.Rank()
	}
	if in == nil {
		return Group{rank: n - outRank}, nil
	}
	if out != nil {
		prod, err := out.Mul(in)
		if err != nil || !prod.IsZero() {
			return Group{}, fmt.Errorf("%w: composite is non-zero", ErrNotChainComplex)
		}
	}
	g := fromSNF(in.Transpose(), n)
	// ker(out) is saturated, so all torsion of Z^n/im(in) lives inside it.
	g.rank -= outRank
	if g.rank < 0 {
		return Group{}, fmt.Errorf("%w: negative rank", ErrNotChainComplex)
	}
	return g, nil
}

// fromSNF reduces m in place and reads off Z^gens / rowspace(m).
func fromSNF(m *matrix.Dense, gens int) Group {
	m.SmithNormalForm()
	var g Group
	nonZero := 0
	for _, d := range m.Diagonal() {
		if d.IsZero() {
			continue
		}
		nonZero++
		if d.CmpInt64(1) > 0 {
			g.factors = append(g.factors, d)
		}
	}
	g.rank = gens - nonZero
	return g
}

// Rank returns the free rank.
func (g Group) Rank() int { return g.rank }

// InvariantFactors returns a copy of the torsion orders d1 | d2 | ...
func (g Group) InvariantFactors() []integer.Integer {
	out := make([]integer.Integer, len(g.factors))
	copy(out, g.factors)
	return out
}

// CountInvariantFactors returns the number of torsion summands.
func (g Group) CountInvariantFactors() int { return len(g.factors) }

// IsTrivial reports whether g is the zero group.
func (g Group) IsTrivial() bool { return g.rank == 0 && len(g.factors) == 0 }

// IsZ reports whether g is infinite cyclic.
func (g Group) IsZ() bool { return g.rank == 1 && len(g.factors) == 0 }

// IsZn reports whether g is cyclic of order n (n == 0 means Z, n == 1 trivial).
func (g Group) IsZn(n int64) bool { return g.Equal(Cyclic(n)) }

// Order returns the order of g, or 0 if g is infinite.
func (g Group) Order() integer.Integer {
	if g.rank > 0 {
		return integer.Zero
	}
	o := integer.One
	for _, d := range g.factors {
		o = o.Mul(d)
	}
	return o
}

// Add returns g ⊕ h, renormalised to invariant-factor form.
func (g Group) Add(h Group) Group {
	all := append(g.InvariantFactors(), h.factors...)
	sum, _ := New(g.rank+h.rank, all...)
	return sum
}

// Equal reports isomorphism of g and h.
func (g Group) Equal(h Group) bool {
	if g.rank != h.rank || len(g.factors) != len(h.factors) {
		return false
	}
	for i := range g.factors {
		if !g.factors[i].Equal(h.factors[i]) {
			return false
		}
	}
	return true
}

// TorsionRank returns the number of invariant factors divisible by p, which
// is the Z/p-rank of the p-torsion subgroup.
func (g Group) TorsionRank(p int64) int {
	n := 0
	for _, d := range g.factors {
		if integer.New(p).Divides(d) {
			n++
		}
	}
	return n
}

// PrimeTorsion records, for one prime p, how many cyclic summands have
// p-part exactly p^(i+1) in Ranks[i].
type PrimeTorsion struct {
	Prime int64
	Ranks []int
}

// TorsionRankVector splits the torsion of g into its p-primary parts. The
// primes are returned in increasing order. Factors that do not fit a machine
// word are skipped.
func (g Group) TorsionRankVector() []PrimeTorsion {
	counts := map[int64]map[int]int{}
	for _, d := range g.factors {
		n, ok := d.Int64()
		if !ok {
			continue
		}
		for p := int64(2); p*p <= n; p++ {
			e := 0
			for n%p == 0 {
				n /= p
				e++
			}
			if e > 0 {
				if counts[p] == nil {
					counts[p] = map[int]int{}
				}
				counts[p][e]++
			}
		}
		if n > 1 {
			if counts[n] == nil {
				counts[n] = map[int]int{}
			}
			counts[n][1]++
		}
	}
	primes := make([]int64, 0, len(counts))
	for p := range counts {
		primes = append(primes, p)
	}
	sort.Slice(primes, func(i, j int) bool { return primes[i] < primes[j] })
	out := make([]PrimeTorsion, 0, len(primes))
	for _, p := range primes {
		maxE := 0
		for e := range counts[p] {
			maxE = max(maxE, e)
		}
		ranks := make([]int, maxE)
		for e, c := range counts[p] {
			ranks[e-1] = c
		}
		out = append(out, PrimeTorsion{Prime: p, Ranks: ranks})
	}
	return out
}

// FormatTorsionRankVector renders a vector as "2(0 0 1) 3(1) 5(1)".
func FormatTorsionRankVector(v []PrimeTorsion) string {
	parts := make([]string, len(v))
	for i, pt := range v {
		rs := make([]string, len(pt.Ranks))
		for j, r := range pt.Ranks {
			rs[j] = fmt.Sprint(r)
		}
		parts[i] = fmt.Sprintf("%d(%s)", pt.Prime, strings.Join(rs, " "))
	}
	return strings.Join(parts, " ")
}

// String renders g as, for example, "0", "Z", "2 Z + Z_2 + 3 Z_6".
func (g Group) String() string {
	if g.IsTrivial() {
		return "0"
	}
	var parts []string
	switch {
	case g.rank == 1:
		parts = append(parts, "Z")
	case g.rank > 1:
		parts = append(parts, fmt.Sprintf("%d Z", g.rank))
	}
	for i := 0; i < len(g.factors); {
		j := i
		for j < len(g.factors) && g.factors[j].Equal(g.factors[i]) {
			j++
		}
		if j-i == 1 {
			parts = append(parts, "Z_"+g.factors[i].String())
		} else {
			parts = append(parts, fmt.Sprintf("%d Z_%s", j-i, g.factors[i]))
		}
		i = j
	}
	return strings.Join(parts, " + ")
}
