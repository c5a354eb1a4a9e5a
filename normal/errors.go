package normal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a wrong dimension, an invalid
	// triangulation, or a vector of the wrong length.
	ErrInvalidArgument = errors.New("normal: invalid argument")

	// ErrNonCompact reports a query that needs finitely many discs.
	ErrNonCompact = errors.New("normal: surface is not compact")

	// ErrNotImplemented reports a disc-level query on a surface that
	// contains octagons.
	ErrNotImplemented = errors.New("normal: not implemented for octagons")

	// ErrNotApplicable reports a construction that does not yield a normal
	// surface, such as the frontier of a non-thin edge.
	ErrNotApplicable = errors.New("normal: not applicable")

	// ErrTooLarge reports a disc count that does not fit in memory.
	ErrTooLarge = errors.New("normal: too many discs")

	// ErrCancelled reports a search stopped by its context before it
	// could decide the answer.
	ErrCancelled = errors.New("normal: search cancelled")
)

const (
	opNewSurface = "NewSurface"
	opEnumerate  = "Enumerate"
	opMatching   = "MatchingEquations"
	opToStandard = "ToStandard"
	opToQuad     = "ToQuad"
	opEulerChar  = "EulerChar"
	opDiscs      = "discGraph"
	opTriangul   = "Triangulate"
	opVertexLink = "VertexLinkSurface"
	opEdgeLink   = "ThinEdgeLinkSurface"
	opCompress   = "HasCompressingDisc"
	opCut        = "Cut"
	opIncompress = "IsIncompressible"
)

func normalErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("normal.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
