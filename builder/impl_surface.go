// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// impl_surface.go - two-triangle closed surfaces.
//
// Every surface here is a pair of triangles with edge i of the first glued
// to edge i of the second. Edge i is glued either by the identity or by the
// transposition of its endpoints, which decides the topology:
//   - all three transposed:       torus (one vertex, orientable)
//   - one identity, two swapped:  Klein bottle (one vertex)
//   - two identities, one swap:   projective plane (two vertices)

package builder

import (
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// edgeSwap[i] fixes vertex i of a triangle and swaps the other two.
var edgeSwap = [3]perm.Perm{perm.Of(0, 2, 1), perm.Of(2, 1, 0), perm.Of(1, 0, 2)}

func twoTriangleSurface(swapped [3]bool) Constructor {
	return func(t *triangulation.Triangulation, _ builderConfig) error {
		if err := requireDim(MethodSurface, t, 2); err != nil {
			return err
		}
		s := t.NewSimplices(2)
		for f := 0; f < 3; f++ {
			g := perm.Identity(3)
			if swapped[f] {
				g = edgeSwap[f]
			}
			if err := s[0].Join(f, s[1], g); err != nil {
				return err
			}
		}
		return nil
	}
}

// Torus inserts the one-vertex torus with two triangles. Requires dim 2.
func Torus() Constructor { return twoTriangleSurface([3]bool{true, true, true}) }

// KleinBottle inserts the one-vertex Klein bottle with two triangles.
// Requires dim 2.
func KleinBottle() Constructor { return twoTriangleSurface([3]bool{false, true, true}) }

// ProjectivePlane inserts the two-vertex projective plane with two
// triangles. Requires dim 2.
func ProjectivePlane() Constructor { return twoTriangleSurface([3]bool{false, false, true}) }
