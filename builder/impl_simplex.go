// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// impl_simplex.go - balls and spheres in every dimension.

package builder

import (
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Ball inserts a single simplex with every facet on the boundary.
// Complexity: O(1).
func Ball() Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		t.NewSimplex()
		return nil
	}
}

// Sphere inserts the two-simplex sphere: every facet of one simplex glued to
// the same facet of the other by the identity.
// Complexity: O(dim).
func Sphere() Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		s := t.NewSimplices(2)
		id := perm.Identity(t.Dim() + 1)
		for f := 0; f <= t.Dim(); f++ {
			if err := s[0].Join(f, s[1], id); err != nil {
				return err
			}
		}
		return nil
	}
}

// SimplexBoundary inserts the boundary of the (dim+1)-simplex, with dim+2
// simplices. Simplex i is the facet opposite vertex i; its local vertex j is
// global vertex j for j < i and j+1 otherwise.
// Complexity: O(dim²).
func SimplexBoundary() Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		d := t.Dim()
		simps := t.NewSimplices(d + 2)
		global := func(i, j int) int {
			if j < i {
				return j
			}
			return j + 1
		}
		local := func(i, v int) int {
			if v < i {
				return v
			}
			return v - 1
		}
		images := make([]int, d+1)
		for i := range simps {
			for f := 0; f <= d; f++ {
				u := global(i, f)
				if u < i {
					continue
				}
				for j := 0; j <= d; j++ {
					if j == f {
						images[j] = local(u, i)
					} else {
						images[j] = local(u, global(i, j))
					}
				}
				g, err := perm.FromImages(images...)
				if err != nil {
					return err
				}
				if err = simps[i].Join(f, simps[u], g); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
