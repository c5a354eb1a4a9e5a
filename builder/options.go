// SPDX-License-Identifier: MIT
// Package: trimanifold/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   - Determinism is explicit: relabelling is seeded through WithRandomRelabel.

package builder

import "strings"

// BuilderOption customizes Build by mutating a builderConfig before any
// constructor runs.
// Complexity: applying N options costs O(N) time, O(1) space.
type BuilderOption func(*builderConfig)

// WithLabel names the finished triangulation (the SnapPea name, for example).
// Panics on a label containing a line break, since labels are written on a
// single line by the file formats.
func WithLabel(label string) BuilderOption {
	if strings.ContainsAny(label, "\r\n") {
		panic("builder: WithLabel(label with line break)")
	}
	return func(c *builderConfig) {
		c.label = label
	}
}

// WithRandomRelabel shuffles simplices and their vertices once all
// constructors have run. The isomorphism is drawn from a private stream
// derived from seed, so the result depends only on the seed and the
// constructors.
func WithRandomRelabel(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.relabel = true
		c.seed = seed
	}
}

// WithOrientationPreserved restricts WithRandomRelabel to even vertex
// permutations, so an oriented triangulation stays oriented.
func WithOrientationPreserved() BuilderOption {
	return func(c *builderConfig) {
		c.even = true
	}
}
