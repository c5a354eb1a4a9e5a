package recognise

import (
	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// maxSolidTorusSize bounds the layered solid tori tried; their number
// doubles with every tetrahedron.
const maxSolidTorusSize = 10

// Recognise reports which standard triangulation the component c is, if
// any. Only valid 3-dimensional components can match. Candidates are
// tried in a fixed order: the trivial triangulations, layered lens spaces,
// layered loops, then the bounded families.
func Recognise(c *triangulation.Component) (Standard, bool) {
	if c == nil || !c.IsValid() {
		return nil, false
	}
	t := c.Build()
	if t == nil || t.Dim() != 3 {
		return nil, false
	}
	n := t.Size()
	sig := t.IsoSig()
	for _, s := range candidates(c, t) {
		u, err := s.Construct()
		if err != nil || u.Size() != n {
			continue
		}
		if u.IsoSig() == sig {
			return s, true
		}
	}
	return nil, false
}

// RecogniseAll runs Recognise on every component of t, in component
// order. Unrecognised components give nil entries.
func RecogniseAll(t *triangulation.Triangulation) []Standard {
	comps := t.Components()
	out := make([]Standard, len(comps))
	for i, c := range comps {
		if s, ok := Recognise(c); ok {
			out[i] = s
		}
	}
	return out
}

// candidates lists the variants that survive the size, boundary and
// homology filters.
func candidates(c *triangulation.Component, t *triangulation.Triangulation) []Standard {
	n := t.Size()
	var out []Standard
	if c.IsClosed() {
		if !c.IsOrientable() {
			return nil
		}
		h := t.HomologyH1()
		if h.IsTrivial() {
			switch n {
			case 2:
				out = append(out, TrivialTri{Kind: TwoTetrahedronSphere})
			case 5:
				out = append(out, TrivialTri{Kind: PentachoronBoundary})
			}
		}
		if p, ok := cyclicOrder(h); ok {
			out = append(out, lensCandidates(p)...)
		}
		if h.Equal(abelian.Cyclic(int64(n))) {
			out = append(out, LayeredLoop{N: n})
		}
		return append(out, LayeredLoop{N: n, Twisted: true})
	}

	if c.IsIdeal() {
		return nil
	}
	if n == 1 {
		out = append(out, TrivialTri{Kind: Tetrahedron}, SnappedBall{})
	}
	if n <= maxSolidTorusSize && c.CountBoundaryComponents() == 1 && c.IsOrientable() && t.HomologyH1().IsZ() {
		for _, ab := range lstParameters(n) {
			out = append(out, LayeredSolidTorus{A: ab[0], B: ab[1], C: ab[0] + ab[1]})
		}
	}
	return out
}

// cyclicOrder returns p when h is Z/p, with p = 0 for Z and p = 1 for the
// trivial group.
func cyclicOrder(h abelian.Group) (int, bool) {
	switch {
	case h.IsTrivial():
		return 1, true
	case h.IsZ():
		return 0, true
	case h.Rank() != 0 || h.CountInvariantFactors() != 1:
		return 0, false
	}
	p, ok := h.InvariantFactors()[0].Int64()
	return int(p), ok
}

// lensCandidates lists L(p,q) for 1 ≤ q ≤ p/2 with gcd(p,q) = 1, plus the
// degenerate L(1,0) and L(0,1).
func lensCandidates(p int) []Standard {
	switch p {
	case 0:
		return []Standard{LayeredLensSpace{P: 0, Q: 1}}
	case 1:
		return []Standard{LayeredLensSpace{P: 1, Q: 0}}
	}
	var out []Standard
	for q := 1; 2*q <= p; q++ {
		if coprime(p, q) {
			out = append(out, LayeredLensSpace{P: p, Q: q})
		}
	}
	return out
}

// lstParameters returns the pairs (a, b), a ≤ b, for which LST(a, b, a+b)
// has n tetrahedra. LST(1,2,3) has one; layering over an edge turns
// LST(u, v, u+v) into LST(u, u+v, 2u+v) or LST(v, u+v, u+2v), and the
// degenerate LST(1,1,2) and LST(0,1,1) follow LST(1,2,3) in turn.
func lstParameters(n int) [][2]int {
	if n < 1 {
		return nil
	}
	level := [][2]int{{1, 2}}
	for size := 1; size < n; size++ {
		var next [][2]int
		for _, p := range level {
			u, v := p[0], p[1]
			switch {
			case u == 0:
			case u == 1 && v == 1:
				next = append(next, [2]int{0, 1})
			default:
				next = append(next, [2]int{u, u + v}, [2]int{v, u + v})
				if u == 1 && v == 2 {
					next = append(next, [2]int{1, 1})
				}
			}
		}
		level = next
	}
	return level
}
