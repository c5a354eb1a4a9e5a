package normal

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/triangulation"
)

// IsIncompressible reports whether s is an incompressible surface in its
// closed triangulation: no compressing disc meets it. Spheres and projective
// planes always answer false. The surface is cut out and each piece of the
// cut is searched for a compressing disc of its boundary.
//
// s must be compact, connected and without boundary, in a closed valid
// triangulation, which must be orientable when s is one-sided. If ctx is
// cancelled before the answer is known the error wraps ErrCancelled.
func (s *Surface) IsIncompressible(ctx context.Context, opts ...Option) (bool, error) {
	if !s.compact {
		return false, normalErrorf(opIncompress, ErrNonCompact, "infinitely many triangles")
	}
	t := s.tri
	if !t.IsValid() || !t.IsClosed() || t.IsIdeal() {
		return false, normalErrorf(opIncompress, ErrInvalidArgument, "triangulation must be closed and valid")
	}
	if s.IsEmpty() || s.HasRealBoundary() {
		return false, normalErrorf(opIncompress, ErrInvalidArgument, "surface must be non-empty and closed")
	}
	connected, err := s.IsConnected()
	if err != nil {
		return false, err
	}
	if !connected {
		return false, normalErrorf(opIncompress, ErrInvalidArgument, "surface is not connected")
	}
	twoSided, err := s.IsTwoSided()
	if err != nil {
		return false, err
	}
	if !twoSided && !t.IsOrientable() {
		return false, normalErrorf(opIncompress, ErrNotImplemented, "one-sided surface in a non-orientable triangulation")
	}
	chi, err := s.EulerChar()
	if err != nil {
		return false, err
	}
	if chi.Sign() > 0 {
		return false, nil
	}
	// A connected thin edge link bounds a regular neighbourhood of a loop.
	if len(s.IsThinEdgeLink()) > 0 {
		return false, nil
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cut, err := s.Cut()
	if err != nil {
		return false, err
	}
	comps := cut.Components()
	o.Logger.Debug("incompressibility test",
		zap.Int("tetrahedra", t.Size()), zap.Int("cut", cut.Size()), zap.Int("pieces", len(comps)))
	for _, comp := range comps {
		if err := ctx.Err(); err != nil {
			return false, normalErrorf(opIncompress, ErrCancelled, "%v", err)
		}
		piece := comp.Build()
		if piece == nil || !piece.HasBoundary() {
			continue
		}
		piece.Simplify()
		if !compressibleBoundary(piece) {
			continue
		}
		found, decided, err := searchCompressingDisc(ctx, piece, WithLogger(o.Logger))
		if err != nil {
			return false, err
		}
		if found {
			return false, nil
		}
		if !decided {
			return false, normalErrorf(opIncompress, ErrCancelled, "search over %d tetrahedra stopped", piece.Size())
		}
	}
	return true, nil
}

// compressibleBoundary reports whether t has a real boundary component that
// is not a sphere.
func compressibleBoundary(t *triangulation.Triangulation) bool {
	for _, bc := range t.BoundaryComponents() {
		if bc.IsReal() && bc.EulerChar() < 2 {
			return true
		}
	}
	return false
}
