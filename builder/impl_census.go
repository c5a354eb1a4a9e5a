// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// impl_census.go - fixed triangulations and decoded input.

package builder

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// FigureEight inserts the two-tetrahedron ideal triangulation of the
// figure-eight knot complement. Requires dim 3.
func FigureEight() Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := requireDim(MethodFigureEight, t, 3); err != nil {
			return err
		}
		return insertSig(MethodFigureEight, t, FigureEightSig)
	}
}

// SnappedBall inserts the snapped 3-ball: one tetrahedron with facet 2
// folded onto facet 3 around the edge 01. Its boundary is a two-triangle
// sphere on facets 0 and 1. Requires dim 3.
func SnappedBall() Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := requireDim(MethodSnappedBall, t, 3); err != nil {
			return err
		}
		s := t.NewSimplex()
		return s.Join(2, s, perm.Of(0, 1, 3, 2))
	}
}

// FromIsoSig inserts the triangulation encoded by sig, decoded in the
// dimension of the target.
func FromIsoSig(sig string) Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		return insertSig(MethodFromIsoSig, t, sig)
	}
}

func insertSig(method string, t *triangulation.Triangulation, sig string) error {
	src, err := triangulation.FromIsoSig(t.Dim(), sig)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", method, ErrConstructFailed, err)
	}
	return t.InsertTriangulation(src)
}

// FromGluings inserts n new simplices glued as listed. Simplex indices in
// the list are relative to the inserted block.
func FromGluings(n int, gluings []triangulation.Gluing) Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := validateMin(MethodFromGluings, n, 0); err != nil {
			return err
		}
		src, err := triangulation.FromGluings(t.Dim(), n, gluings)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", MethodFromGluings, ErrConstructFailed, err)
		}
		return t.InsertTriangulation(src)
	}
}
