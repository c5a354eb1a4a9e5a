// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// impl_layered.go - layered solid tori, layered lens spaces and layered loops.
//
// Layering convention:
//   - The last simplex of a layered solid torus carries the boundary torus
//     on its facets 0 and 1. These share the edge 23 (class Z); the edge 12
//     of facet 0 is the edge 03 of facet 1 (class X), and the edge 13 of
//     facet 0 is the edge 02 of facet 1 (class Y).
//   - Layering a new simplex over a boundary class glues its facets 2 and 3
//     onto facets 0 and 1 of the old top, so the convention is preserved.
//   - The weight of a class is the number of times the meridian disc meets
//     the edge. The weights of X, Y, Z are the LST parameters in some order.

package builder

import (
	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Boundary edge classes of a layered solid torus.
const (
	classX = iota
	classY
	classZ
)

// layerGluings[c] holds the gluings of facets 2 and 3 of a new simplex
// layered over class c.
var layerGluings = [3][2]perm.Perm{
	classX: {perm.Of(1, 2, 0, 3), perm.Of(3, 0, 2, 1)},
	classY: {perm.Of(1, 3, 0, 2), perm.Of(2, 0, 3, 1)},
	classZ: {perm.Of(2, 3, 0, 1), perm.Of(2, 3, 0, 1)},
}

// lstTop is the current top of a layered solid torus under construction.
type lstTop struct {
	simp   *triangulation.Simplex
	weight [3]int
}

// lstBase inserts the one-tetrahedron solid torus LST(1,2,3): facet 2
// folded onto facet 3 by the cyclic permutation i ↦ i+1.
func lstBase(t *triangulation.Triangulation) (lstTop, error) {
	s := t.NewSimplex()
	if err := s.Join(2, s, perm.Of(1, 2, 3, 0)); err != nil {
		return lstTop{}, err
	}
	return lstTop{simp: s, weight: [3]int{classX: 1, classY: 2, classZ: 3}}, nil
}

// layer glues a new simplex over boundary class c and returns the new top.
// The layered class disappears from the boundary and the new edge 23 takes
// the other diagonal of the boundary square.
func (l lstTop) layer(t *triangulation.Triangulation, c int) (lstTop, error) {
	s := t.NewSimplex()
	if err := s.Join(2, l.simp, layerGluings[c][0]); err != nil {
		return lstTop{}, err
	}
	if err := s.Join(3, l.simp, layerGluings[c][1]); err != nil {
		return lstTop{}, err
	}

	var a, b int
	switch c {
	case classX:
		a, b = l.weight[classY], l.weight[classZ]
	case classY:
		a, b = l.weight[classX], l.weight[classZ]
	default:
		a, b = l.weight[classX], l.weight[classY]
	}
	diag := a + b
	if l.weight[c] != absDiff(a, b) {
		diag = absDiff(a, b)
	}
	return lstTop{simp: s, weight: [3]int{classX: a, classY: b, classZ: diag}}, nil
}

// class returns the boundary class with weight w, or -1.
func (l lstTop) class(w int) int {
	for c, x := range l.weight {
		if x == w {
			return c
		}
	}
	return -1
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// insertLST builds LST(a, b, a+b) for coprime a, b ≥ 0. The recursion runs
// Euclid backwards: LST(x, y, x+y) is LST(x, y−x, y) with a simplex layered
// over the edge of weight y−x, down to LST(1,2,3). LST(1,1,2) and LST(0,1,1)
// are the two degenerate steps below the base.
func insertLST(t *triangulation.Triangulation, a, b int) (lstTop, error) {
	if a > b {
		a, b = b, a
	}
	type step struct{ x, y int }
	var chain []step
	for x, y := a, b; x != 1 || y != 2; {
		chain = append(chain, step{x, y})
		switch {
		case x == 1 && y == 1:
			x, y = 1, 2
		case x == 0 && y == 1:
			x, y = 1, 1
		default:
			x, y = min(x, y-x), max(x, y-x)
		}
	}

	top, err := lstBase(t)
	if err != nil {
		return lstTop{}, err
	}
	for i := len(chain) - 1; i >= 0; i-- {
		x, y := chain[i].x, chain[i].y
		want := y - x
		switch {
		case x == 1 && y == 1:
			want = 3
		case x == 0 && y == 1:
			want = 2
		}
		c := top.class(want)
		if c < 0 {
			return lstTop{}, builderErrorf(MethodLayeredSolidTorus, ErrConstructFailed,
				"no boundary edge of weight %d in LST%v", want, top.weight)
		}
		if top, err = top.layer(t, c); err != nil {
			return lstTop{}, err
		}
	}
	return top, nil
}

// LayeredSolidTorus inserts the layered solid torus LST(a, b, a+b).
// Requires dim 3 and coprime a, b ≥ 0. The boundary torus lies on facets 0
// and 1 of the last simplex inserted.
// Complexity: O(log(a+b)) layering steps in the best case, O(a+b) in the worst.
func LayeredSolidTorus(a, b int) Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := requireDim(MethodLayeredSolidTorus, t, 3); err != nil {
			return err
		}
		if err := validateCoprime(MethodLayeredSolidTorus, a, b); err != nil {
			return err
		}
		_, err := insertLST(t, a, b)
		return err
	}
}

// lensParameters chooses the solid torus that folds to L(p, q).
// With q' = min(q, p−q), LST(q', p−2q', p−q') folded along the edge of weight
// p−2q' realises L(p, q).
func lensParameters(p, q int) (a, b int) {
	switch p {
	case 0:
		return 1, 1
	case 1:
		return 1, 2
	}
	if 2*q > p {
		q = p - q
	}
	return q, p - 2*q
}

// LayeredLensSpace inserts the layered lens space L(p, q).
// Requires dim 3, p ≥ 0 and gcd(p, q) = 1; q is reduced modulo p. L(0,1) is
// S²×S¹ and L(1,0) is the 3-sphere.
//
// The two boundary facets of the layered solid torus are folded together.
// Of the six candidate folds the first one giving a valid, closed, orientable
// component with H_1 = Z/p is kept.
func LayeredLensSpace(p, q int) Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := requireDim(MethodLayeredLensSpace, t, 3); err != nil {
			return err
		}
		if err := validateMin(MethodLayeredLensSpace, p, 0); err != nil {
			return err
		}
		if p > 0 {
			q = ((q % p) + p) % p
		}
		if err := validateCoprime(MethodLayeredLensSpace, p, q); err != nil {
			return err
		}

		a, b := lensParameters(p, q)
		top, err := insertLST(t, a, b)
		if err != nil {
			return err
		}
		want := abelian.Cyclic(int64(p))
		if p == 0 {
			want = abelian.Free(1)
		}
		for _, g := range perm.MustSn(4) {
			if g.Image(0) != 1 {
				continue
			}
			if err = top.simp.Join(0, top.simp, g); err != nil {
				return err
			}
			if isClosedManifold(top.simp, want) {
				return nil
			}
			if _, err = top.simp.Unjoin(0); err != nil {
				return err
			}
		}
		return builderErrorf(MethodLayeredLensSpace, ErrConstructFailed, "no fold of LST(%d,%d) gives L(%d,%d)", a, b, p, q)
	}
}

// isClosedManifold reports whether the component of s is a valid, closed,
// orientable triangulation with first homology h.
func isClosedManifold(s *triangulation.Simplex, h abelian.Group) bool {
	c := s.Component()
	if !c.IsValid() || !c.IsClosed() || !c.IsOrientable() || c.IsIdeal() {
		return false
	}
	return c.Build().HomologyH1().Equal(h)
}

// Gluings of a layered loop: facets 0 and 3 of each tetrahedron meet facets
// 1 and 2 of the next.
var (
	loopStep    = [2]perm.Perm{perm.Of(1, 0, 2, 3), perm.Of(0, 1, 3, 2)}
	loopTwisted = [2]perm.Perm{perm.Of(2, 3, 1, 0), perm.Of(3, 2, 0, 1)}
)

// LayeredLoop inserts the layered loop C_n of n ≥ 1 tetrahedra. The untwisted
// loop has two vertices, the twisted loop has one.
// Complexity: O(n).
func LayeredLoop(n int, twisted bool) Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := requireDim(MethodLayeredLoop, t, 3); err != nil {
			return err
		}
		if err := validateMin(MethodLayeredLoop, n, MinLoopLength); err != nil {
			return err
		}
		simps := t.NewSimplices(n)
		for i := 0; i+1 < n; i++ {
			if err := joinLoop(simps[i], simps[i+1], loopStep); err != nil {
				return err
			}
		}
		closing := loopStep
		if twisted {
			closing = loopTwisted
		}
		return joinLoop(simps[n-1], simps[0], closing)
	}
}

func joinLoop(from, to *triangulation.Simplex, g [2]perm.Perm) error {
	if err := from.Join(0, to, g[0]); err != nil {
		return err
	}
	return from.Join(3, to, g[1])
}
