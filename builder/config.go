// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   - builderConfig is the single source of truth for all builder knobs.
//   - Defaults are deterministic; no globals.
//   - newBuilderConfig applies options in order (later overrides earlier).
//
// Deterministic defaults:
//   - label   = ""     (the triangulation keeps no label)
//   - relabel = false  (simplices stay in construction order)
//   - seed    = random.DefaultSeed

package builder

import (
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/random"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// builderConfig aggregates all knobs used by Build and the constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// Label applied to the finished triangulation; empty means none.
	label string
	// Whether to shuffle simplices and vertices once construction is done.
	relabel bool
	// Seed of the relabelling stream.
	seed int64
	// Restrict the relabelling to even vertex permutations.
	even bool
}

// relabelStream is the random.Derive stream reserved for WithRandomRelabel.
const relabelStream uint64 = 1

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{seed: random.DefaultSeed}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// seededIsomorphism draws an isomorphism on n simplices from the stream
// derived from cfg.seed. The shared engine is not touched.
func seededIsomorphism(dim, n int, cfg builderConfig) triangulation.Isomorphism {
	r := random.Derive(cfg.seed, relabelStream)
	sn := perm.MustSn(dim + 1)
	iso := triangulation.Isomorphism{SimpImage: r.Perm(n), FacetPerm: make([]perm.Perm, n)}
	for i := range iso.FacetPerm {
		p := sn[r.Intn(len(sn))]
		for cfg.even && p.Sign() != 1 {
			p = sn[r.Intn(len(sn))]
		}
		iso.FacetPerm[i] = p
	}
	return iso
}
