package triangulation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/trimanifold/bfs"
	"github.com/katalvlaran/trimanifold/integer"
)

// SigmaInfinite marks a vanishing Gauss sum in PrimaryForm.Sigma.
const SigmaInfinite = -1

// maxGaussTerms bounds the order of a 2-primary part whose Gauss sums are
// evaluated.
const maxGaussTerms = 1 << 22

// PrimaryForm is the p-primary part of a torsion linking form. Generator i
// has order Prime^Exponents[i], exponents ascending, and Form[i][j] in [0, 1)
// is the linking number of generators i and j.
type PrimaryForm struct {
	Prime     int64
	Exponents []int
	Form      [][]integer.Rational

	// Ranks[k-1] counts the generators of order Prime^k.
	Ranks []int
	// Sigma is set for Prime 2: the Kawauchi-Kojima sigma invariant for
	// each k from 1 to the largest exponent, or SigmaInfinite.
	Sigma []int
	// Legendre is set for odd Prime: for each exponent k, the Legendre
	// symbol of the determinant of Prime^k times the form restricted to
	// the generators of order Prime^k. An empty block counts as 1.
	Legendre []int
}

// LinkingForm is the torsion linking form of a closed orientable
// 3-manifold, split into primary parts by ascending prime.
type LinkingForm struct {
	Parts []PrimaryForm
}

// torsionGen is one prime-power torsion generator of H1. It is mult times
// column col of the inverse left SNF factor of ∂2, and order times it bounds
// column col of the right factor.
type torsionGen struct {
	prime int64
	exp   int
	order integer.Integer
	mult  integer.Integer
	col   int
}

// TorsionLinkingForm returns the linking form on the torsion of H1 of a
// closed orientable 3-manifold. The basis is arbitrary; the rank, sigma and
// Legendre invariants are not.
//
// A torsion cycle h of order n bounds a 2-chain C with ∂C = n·h. The linking
// of h with a cycle z is C·z'/n mod 1, where z' is a dual 1-cycle parallel
// to z and · counts signed crossings of triangles.
func (t *Triangulation) TorsionLinkingForm() (*LinkingForm, error) {
	switch {
	case t.dim != 3:
		return nil, triErrorf(opLinking, ErrNotApplicable, "dimension %d", t.dim)
	case len(t.simplices) == 0:
		return nil, triErrorf(opLinking, ErrNotApplicable, "empty triangulation")
	case !t.IsValid():
		return nil, triErrorf(opLinking, ErrNotApplicable, "invalid triangulation")
	case !t.IsOrientable():
		return nil, triErrorf(opLinking, ErrNotApplicable, "non-orientable triangulation")
	case !t.IsClosed():
		return nil, triErrorf(opLinking, ErrNotApplicable, "triangulation has boundary")
	}

	snf := t.boundaryMap(2)
	_, leftInv, right, _ := snf.MetricalSmithNormalForm()
	var gens []torsionGen
	for k, d := range snf.Diagonal() {
		if d.IsZero() {
			break
		}
		if d.CmpInt64(1) == 0 {
			continue
		}
		n, ok := d.Int64()
		if !ok {
			return nil, triErrorf(opLinking, ErrNotApplicable, "invariant factor %s out of range", d)
		}
		for _, pp := range primePowers(n) {
			gens = append(gens, torsionGen{
				prime: pp.p, exp: pp.k, order: integer.New(pp.q), mult: integer.New(n / pp.q), col: k,
			})
		}
	}
	sort.SliceStable(gens, func(i, j int) bool {
		if gens[i].prime != gens[j].prime {
			return gens[i].prime < gens[j].prime
		}
		return gens[i].exp < gens[j].exp
	})

	sk := t.skeleton()
	nTri := len(sk.faces[2])
	eps := make([]int, nTri)
	for _, tri := range sk.faces[2] {
		front := tri.emb[0]
		eps[tri.index] = sk.orientation[front.Simplex.index] * front.Vertices.Sign()
	}
	images := t.dualEdgeImages()
	dual := make([][]integer.Integer, len(gens))
	for i, g := range gens {
		z := make([]integer.Integer, nTri)
		for e, img := range images {
			c := leftInv.Entry(e, g.col)
			if c.IsZero() {
				continue
			}
			c = c.Mul(g.mult)
			for tri, v := range img {
				if v != 0 {
					z[tri] = z[tri].Add(c.MulInt64(v))
				}
			}
		}
		dual[i] = z
	}

	lf := &LinkingForm{}
	for lo := 0; lo < len(gens); {
		hi := lo
		for hi < len(gens) && gens[hi].prime == gens[lo].prime {
			hi++
		}
		part := PrimaryForm{Prime: gens[lo].prime}
		for i := lo; i < hi; i++ {
			part.Exponents = append(part.Exponents, gens[i].exp)
			row := make([]integer.Rational, 0, hi-lo)
			for j := lo; j < hi; j++ {
				var num integer.Integer
				for tri := 0; tri < nTri; tri++ {
					if dual[j][tri].IsZero() {
						continue
					}
					c := right.Entry(tri, gens[i].col)
					if c.IsZero() {
						continue
					}
					num = num.Add(c.Mul(dual[j][tri]).MulInt64(int64(eps[tri])))
				}
				r, err := num.Mod(gens[i].order)
				if err != nil {
					return nil, triErrorf(opLinking, err, "linking of generators %d and %d", i, j)
				}
				q, err := integer.Frac(r, gens[i].order)
				if err != nil {
					return nil, triErrorf(opLinking, err, "linking of generators %d and %d", i, j)
				}
				row = append(row, q)
			}
			part.Form = append(part.Form, row)
		}
		if err := part.computeInvariants(); err != nil {
			return nil, triErrorf(opLinking, err, "%d-primary part", part.Prime)
		}
		lf.Parts = append(lf.Parts, part)
		lo = hi
	}
	return lf, nil
}

// dualEdgeImages returns, for each edge, a dual 1-chain running parallel to
// it, as coefficients on triangles. Each vertex roots a tree of the corners
// around it; the image of an edge runs from the root at its tail along the
// tree to the corner holding the edge's front embedding, then back along the
// tree around the head. A dual edge points into the tetrahedron of its
// triangle's front embedding.
func (t *Triangulation) dualEdgeImages() []map[int]int64 {
	sk := t.skeleton()
	_, _, res, err := bfs.Components(cornerGraph{t})
	if err != nil {
		panic(fmt.Sprintf("triangulation: corner graph traversal: %v", err))
	}
	towardRoot := func(c int, coef int64, into map[int]int64) {
		for res.Parent[c] >= 0 {
			p, f := res.Parent[c], res.ParentPort[c]
			x := t.simplices[p/4]
			tri := sk.faceIdx[x.index][2][f]
			front := sk.faces[2][tri].emb[0]
			sign := int64(1)
			if front.Simplex == x && front.Face == f {
				sign = -1
			}
			into[tri] += coef * sign
			c = p
		}
	}
	out := make([]map[int]int64, len(sk.faces[1]))
	for _, e := range sk.faces[1] {
		front := e.emb[0]
		img := make(map[int]int64)
		towardRoot(4*front.Simplex.index+front.Vertices.Image(0), 1, img)
		towardRoot(4*front.Simplex.index+front.Vertices.Image(1), -1, img)
		out[e.index] = img
	}
	return out
}

// cornerGraph has one node 4·s+v for vertex v of tetrahedron s, joined to the
// matching corner across each facet containing v. Its components are the
// vertex stars.
type cornerGraph struct{ t *Triangulation }

func (g cornerGraph) Order() int { return 4 * len(g.t.simplices) }

func (g cornerGraph) Arcs(c int) []bfs.Arc {
	s, v := g.t.simplices[c/4], c%4
	out := make([]bfs.Arc, 0, 3)
	for f, a := range s.adj {
		if f != v && a != nil {
			out = append(out, bfs.Arc{To: 4*a.index + s.gluing[f].Image(v), Port: f})
		}
	}
	return out
}

type primePower struct {
	p, q int64
	k    int
}

// primePowers splits n > 1 into its maximal prime-power factors, ascending.
func primePowers(n int64) []primePower {
	var out []primePower
	for p := int64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		pp := primePower{p: p, q: 1}
		for n%p == 0 {
			n /= p
			pp.k++
			pp.q *= p
		}
		out = append(out, pp)
	}
	if n > 1 {
		out = append(out, primePower{p: n, k: 1, q: n})
	}
	return out
}

func (part *PrimaryForm) computeInvariants() error {
	maxExp := part.Exponents[len(part.Exponents)-1]
	part.Ranks = make([]int, maxExp)
	for _, k := range part.Exponents {
		part.Ranks[k-1]++
	}
	if part.Prime == 2 {
		sigma, err := gaussSigma(part.Exponents, part.Form)
		if err != nil {
			return err
		}
		part.Sigma = sigma
		return nil
	}
	part.Legendre = make([]int, maxExp)
	for k := 1; k <= maxExp; k++ {
		var block [][]int64
		for i, ei := range part.Exponents {
			if ei != k {
				continue
			}
			var row []int64
			for j, ej := range part.Exponents {
				if ej != k {
					continue
				}
				// Prime^k times an entry of order dividing Prime^k is its numerator
				// scaled to that denominator.
				num, _ := part.Form[i][j].Num().Int64()
				den, _ := part.Form[i][j].Den().Int64()
				q := int64(1)
				for e := 0; e < k; e++ {
					q *= part.Prime
				}
				row = append(row, (num*(q/den))%part.Prime)
			}
			block = append(block, row)
		}
		l, err := integer.Legendre(detModPrime(block, part.Prime), part.Prime)
		if err != nil {
			return err
		}
		part.Legendre[k-1] = l
	}
	return nil
}

// detModPrime returns the determinant of m modulo the prime p, in [0, p).
// The empty matrix has determinant 1.
func detModPrime(m [][]int64, p int64) int64 {
	n := len(m)
	a := make([][]int64, n)
	for i := range m {
		a[i] = make([]int64, n)
		for j, v := range m[i] {
			a[i][j] = ((v % p) + p) % p
		}
	}
	det := int64(1)
	for c := 0; c < n; c++ {
		pivot := -1
		for r := c; r < n; r++ {
			if a[r][c] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return 0
		}
		if pivot != c {
			a[pivot], a[c] = a[c], a[pivot]
			det = p - det
		}
		det = det * a[c][c] % p
		inv, _ := integer.ModInverse(a[c][c], p)
		for r := c + 1; r < n; r++ {
			f := a[r][c] * inv % p
			for j := c; j < n; j++ {
				a[r][j] = ((a[r][j]-f*a[c][j])%p + p) % p
			}
		}
	}
	return det % p
}

// gaussSigma evaluates, for k = 1..max exponent, the Gauss sum of
// exp(2^k·π·i·q(x)) over the 2-primary group, q(x) = lk(x, x), and reads off
// its argument in eighths of a turn.
func gaussSigma(exps []int, form [][]integer.Rational) ([]int, error) {
	maxExp := exps[len(exps)-1]
	size := 1
	for _, e := range exps {
		size <<= e
		if size > maxGaussTerms {
			return nil, fmt.Errorf("%w: 2-primary part too large", ErrNotApplicable)
		}
	}
	den := int64(1) << maxExp
	n := len(exps)
	num := make([][]int64, n)
	for i := range form {
		num[i] = make([]int64, n)
		for j := range form[i] {
			v, _ := form[i][j].Mul(integer.RationalFromInt64(den)).Num().Int64()
			num[i][j] = v
		}
	}
	sigma := make([]int, maxExp)
	x := make([]int64, n)
	for k := 1; k <= maxExp; k++ {
		var re, im float64
		for idx := 0; idx < size; idx++ {
			rem := idx
			for i, e := range exps {
				x[i] = int64(rem & (1<<e - 1))
				rem >>= e
			}
			var q int64
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					q = (q + x[i]*x[j]%den*num[i][j]) % den
				}
			}
			turn := (q << k) % (2 * den)
			s, c := math.Sincos(math.Pi * float64(turn) / float64(den))
			re += c
			im += s
		}
		sigma[k-1] = eighthOfTurn(re, im)
	}
	return sigma, nil
}

func eighthOfTurn(re, im float64) int {
	if re*re+im*im < 1e-7 {
		return SigmaInfinite
	}
	e := int(math.Round(math.Atan2(im, re) / (math.Pi / 4)))
	return ((e % 8) + 8) % 8
}

// RankString lists, per prime, the number of generators of each order, as
// in "2(0 1) 3(2)", or "no torsion".
func (l *LinkingForm) RankString() string {
	if len(l.Parts) == 0 {
		return "no torsion"
	}
	var b strings.Builder
	for i, part := range l.Parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d(%s)", part.Prime, joinInts(part.Ranks))
	}
	return b.String()
}

// SigmaString lists the sigma invariants of the 2-primary part, or reports
// "no 2-torsion".
func (l *LinkingForm) SigmaString() string {
	if len(l.Parts) == 0 || l.Parts[0].Prime != 2 {
		return "no 2-torsion"
	}
	words := make([]string, len(l.Parts[0].Sigma))
	for i, s := range l.Parts[0].Sigma {
		if s == SigmaInfinite {
			words[i] = "inf"
		} else {
			words[i] = fmt.Sprint(s)
		}
	}
	return strings.Join(words, " ")
}

// LegendreString lists the Legendre symbols of each odd primary part, or
// reports "no odd p-torsion".
func (l *LinkingForm) LegendreString() string {
	var words []string
	for _, part := range l.Parts {
		if part.Prime != 2 {
			words = append(words, fmt.Sprintf("%d(%s)", part.Prime, joinInts(part.Legendre)))
		}
	}
	if len(words) == 0 {
		return "no odd p-torsion"
	}
	return strings.Join(words, " ")
}

// IsSplit reports whether the form is isomorphic to an orthogonal sum of a
// form and its negative, as for the linking form of M # -M. Every rank is
// then even, and the Legendre and sigma invariants are fixed by the ranks.
func (l *LinkingForm) IsSplit() bool {
	for _, part := range l.Parts {
		for _, r := range part.Ranks {
			if r%2 != 0 {
				return false
			}
		}
		if part.Prime == 2 {
			for _, s := range part.Sigma {
				if s != 0 && s != SigmaInfinite {
					return false
				}
			}
			continue
		}
		for k, r := range part.Ranks {
			want := 1
			if (int64(r)*(part.Prime-1)/4)%2 != 0 {
				want = -1
			}
			if part.Legendre[k] != want {
				return false
			}
		}
	}
	return true
}

// IsHyperbolic reports whether the form is split and every 2-primary sigma
// invariant is 0.
func (l *LinkingForm) IsHyperbolic() bool {
	if !l.IsSplit() {
		return false
	}
	for _, part := range l.Parts {
		for _, s := range part.Sigma {
			if s != 0 {
				return false
			}
		}
	}
	return true
}

// SatisfiesKKTwoTorsion reports whether 2^(k-1)·lk(g, g) vanishes for every
// 2-primary generator g of order 2^k. This is the Kawauchi-Kojima condition
// on the 2-torsion for embedding in the 4-sphere.
func (l *LinkingForm) SatisfiesKKTwoTorsion() bool {
	if len(l.Parts) == 0 || l.Parts[0].Prime != 2 {
		return true
	}
	part := l.Parts[0]
	for i, k := range part.Exponents {
		v := part.Form[i][i].Mul(integer.RationalFromInt64(int64(1) << (k - 1)))
		if !v.IsInteger() {
			return false
		}
	}
	return true
}

func joinInts(v []int) string {
	words := make([]string, len(v))
	for i, x := range v {
		words[i] = fmt.Sprint(x)
	}
	return strings.Join(words, " ")
}
