package triangulation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension reports a dimension outside 2..4.
	ErrInvalidDimension = errors.New("triangulation: dimension must be 2, 3 or 4")

	// ErrInvalidArgument reports a precondition failure: a facet out of
	// range, a facet already glued, a malformed signature and so on.
	ErrInvalidArgument = errors.New("triangulation: invalid argument")

	// ErrLocked reports an operation that would change a locked simplex or
	// facet.
	ErrLocked = errors.New("triangulation: simplex or facet is locked")

	// ErrNotApplicable reports a move or query that does not apply to this
	// triangulation (wrong dimension, invalid face, degenerate position).
	ErrNotApplicable = errors.New("triangulation: operation not applicable")
)

// Operation tags used in wrapped errors.
const (
	opJoin       = "Join"
	opUnjoin     = "Unjoin"
	opRemove     = "RemoveSimplex"
	opInsert     = "InsertTriangulation"
	opLock       = "LockFacet"
	opOneToMany  = "OneToMany"
	opTwoToMany  = "TwoToMany"
	opThreeTwo   = "ThreeTwo"
	opShell      = "ShellBoundary"
	opRelabel    = "Relabel"
	opIsoSig     = "FromIsoSig"
	opHomology   = "Homology"
	opBoundary   = "BoundaryHomologyMap"
	opBuildLink  = "FaceLink"
	opBuildBound = "BoundaryComponent.Build"
	opIntersect  = "IntersectionForm"
	opLinking    = "TorsionLinkingForm"
)

// triErrorf wraps err with an operation tag and formatted detail.
func triErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("triangulation.%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
