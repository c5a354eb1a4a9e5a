package perm

import "errors"

var (
	// ErrSize reports a permutation size outside 2..16.
	ErrSize = errors.New("perm: size out of range")

	// ErrNotPermutation reports an image list that is not a bijection.
	ErrNotPermutation = errors.New("perm: images do not form a permutation")

	// ErrInvalidString reports a malformed permutation string, such as one
	// with a repeated digit.
	ErrInvalidString = errors.New("perm: invalid permutation string")

	// ErrIndex reports an index outside [0, n!).
	ErrIndex = errors.New("perm: index out of range")
)
