// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// api.go - public entry point for the builder package.
//
// Design contract:
//   - One orchestrator: Build(dim, opts, cons...). Creates t, resolves cfg, runs cons in order.
//   - Every constructor inserts new simplices only; simplices added by earlier
//     constructors are never modified, so pieces compose as disjoint components.
//   - Determinism: same inputs, options, seed and constructor order give identical triangulations.
//   - Safety: constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/triangulation"
)

// Constructor inserts one standard piece into t using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Refuse dimensions they do not support with ErrUnsupportedDimension.
//   - Leave existing simplices of t untouched.
type Constructor func(t *triangulation.Triangulation, cfg builderConfig) error

// Build creates an empty triangulation of the given dimension, resolves the
// builder configuration from opts, and applies all constructors in order.
// Any constructor error is wrapped with the context "Build: %w" and returned
// immediately.
//
// After the constructors have run, the label from WithLabel is applied and,
// if WithRandomRelabel was given, the simplices are shuffled by a random
// isomorphism drawn from a stream derived from the seed.
//
// Complexity: Σ cost of each constructor, plus O(n) for the relabelling.
func Build(dim int, opts []BuilderOption, cons ...Constructor) (*triangulation.Triangulation, error) {
	t, err := triangulation.New(dim)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	cfg := newBuilderConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err = fn(t, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	if cfg.label != "" {
		t.SetLabel(cfg.label)
	}
	if cfg.relabel {
		if err = t.Relabel(seededIsomorphism(dim, t.Size(), cfg)); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	return t, nil
}

// MustBuild is Build for fixtures whose parameters are known to be valid.
// It panics on error.
func MustBuild(dim int, opts []BuilderOption, cons ...Constructor) *triangulation.Triangulation {
	t, err := Build(dim, opts, cons...)
	if err != nil {
		panic(err)
	}
	return t
}

// =============================================================================
// Constructors (implemented in impl_*.go)
// =============================================================================
//
// Layered families (dim 3), impl_layered.go:
//   - LayeredSolidTorus(a, b)   LST(a, b, a+b), boundary on facets 0 and 1 of the last simplex.
//   - LayeredLensSpace(p, q)    L(p, q) as a folded layered solid torus.
//   - LayeredLoop(n, twisted)   C_n or its twisted variant.
//
// Simplicial spheres and balls (any dim), impl_simplex.go:
//   - Ball()             a single simplex.
//   - Sphere()           two simplices glued by the identity.
//   - SimplexBoundary()  the boundary of the (dim+1)-simplex.
//
// Closed surfaces (dim 2), impl_surface.go:
//   - Torus(), KleinBottle(), ProjectivePlane().
//
// Fixed and decoded triangulations, impl_census.go:
//   - FigureEight(), SnappedBall(), FromIsoSig(sig), FromGluings(n, list).
