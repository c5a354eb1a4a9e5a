package recognise

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Standard is a recognised parametric triangulation.
type Standard interface {
	// Name is a plain-text name such as "L(5,2)" or "LST(1,2,3)".
	Name() string
	// TeXName is the name in TeX notation.
	TeXName() string
	// Manifold names the underlying 3-manifold.
	Manifold() (string, error)
	// Homology returns the first homology group of the manifold.
	Homology() (abelian.Group, error)
	// Construct builds a fresh copy of the triangulation.
	Construct() (*triangulation.Triangulation, error)
}

func construct(op string, c builder.Constructor) (*triangulation.Triangulation, error) {
	t, err := builder.Build(3, nil, c)
	if err != nil {
		return nil, recogniseErrorf(op, ErrInvalidArgument, "%v", err)
	}
	return t, nil
}

// LayeredLensSpace is the layered lens space L(P,Q).
type LayeredLensSpace struct {
	P, Q int
}

func (l LayeredLensSpace) Name() string    { return fmt.Sprintf("L(%d,%d)", l.P, l.Q) }
func (l LayeredLensSpace) TeXName() string { return fmt.Sprintf("L_{%d,%d}", l.P, l.Q) }

func (l LayeredLensSpace) Manifold() (string, error) {
	switch l.P {
	case 0:
		return "S2 x S1", nil
	case 1:
		return "S3", nil
	case 2:
		return "RP3", nil
	}
	return l.Name(), nil
}

func (l LayeredLensSpace) Homology() (abelian.Group, error) {
	return abelian.Cyclic(int64(l.P)), nil
}

func (l LayeredLensSpace) Construct() (*triangulation.Triangulation, error) {
	return construct("LayeredLensSpace.Construct", builder.LayeredLensSpace(l.P, l.Q))
}

// LayeredSolidTorus is the layered solid torus LST(A,B,C) with
// A ≤ B ≤ C = A+B.
type LayeredSolidTorus struct {
	A, B, C int
}

func (l LayeredSolidTorus) Name() string { return fmt.Sprintf("LST(%d,%d,%d)", l.A, l.B, l.C) }
func (l LayeredSolidTorus) TeXName() string {
	return fmt.Sprintf("\\mathit{LST}(%d,%d,%d)", l.A, l.B, l.C)
}

func (l LayeredSolidTorus) Manifold() (string, error)        { return "B2 x S1", nil }
func (l LayeredSolidTorus) Homology() (abelian.Group, error) { return abelian.Free(1), nil }

func (l LayeredSolidTorus) Construct() (*triangulation.Triangulation, error) {
	if l.C != l.A+l.B {
		return nil, recogniseErrorf("LayeredSolidTorus.Construct", ErrInvalidArgument, "%s: %d ≠ %d + %d", l.Name(), l.C, l.A, l.B)
	}
	return construct("LayeredSolidTorus.Construct", builder.LayeredSolidTorus(l.A, l.B))
}

// LayeredLoop is the layered loop C(N), or its twisted form C~(N).
type LayeredLoop struct {
	N       int
	Twisted bool
}

func (l LayeredLoop) Name() string {
	if l.Twisted {
		return fmt.Sprintf("C~(%d)", l.N)
	}
	return fmt.Sprintf("C(%d)", l.N)
}

func (l LayeredLoop) TeXName() string {
	if l.Twisted {
		return fmt.Sprintf("\\tilde{C}_{%d}", l.N)
	}
	return fmt.Sprintf("C_{%d}", l.N)
}

// Manifold names the lens space L(N,1) for an untwisted loop. Twisted
// loops give prism manifolds, which are not named here.
func (l LayeredLoop) Manifold() (string, error) {
	if l.Twisted {
		return "", recogniseErrorf("LayeredLoop.Manifold", ErrNotImplemented, "%s", l.Name())
	}
	return LayeredLensSpace{P: l.N, Q: 1}.Manifold()
}

// Homology is Z/N for an untwisted loop. A twisted loop is rebuilt and
// its homology computed.
func (l LayeredLoop) Homology() (abelian.Group, error) {
	if !l.Twisted {
		return abelian.Cyclic(int64(l.N)), nil
	}
	t, err := l.Construct()
	if err != nil {
		return abelian.Group{}, err
	}
	return t.HomologyH1(), nil
}

func (l LayeredLoop) Construct() (*triangulation.Triangulation, error) {
	return construct("LayeredLoop.Construct", builder.LayeredLoop(l.N, l.Twisted))
}

// SnappedBall is the one-tetrahedron ball with two facets folded together
// around an edge.
type SnappedBall struct{}

func (SnappedBall) Name() string                     { return "Snap" }
func (SnappedBall) TeXName() string                  { return "\\mathit{Snap}" }
func (SnappedBall) Manifold() (string, error)        { return "B3", nil }
func (SnappedBall) Homology() (abelian.Group, error) { return abelian.Trivial(), nil }

func (SnappedBall) Construct() (*triangulation.Triangulation, error) {
	return construct("SnappedBall.Construct", builder.SnappedBall())
}

// TrivialKind selects one of the small fixed triangulations.
type TrivialKind int

const (
	// Tetrahedron is a single tetrahedron with no gluings.
	Tetrahedron TrivialKind = iota
	// TwoTetrahedronSphere is two tetrahedra glued along all four facets.
	TwoTetrahedronSphere
	// PentachoronBoundary is the boundary of the 4-simplex.
	PentachoronBoundary
)

// TrivialTri is one of the small fixed triangulations.
type TrivialTri struct {
	Kind TrivialKind
}

func (t TrivialTri) Name() string {
	switch t.Kind {
	case Tetrahedron:
		return "B3 (1)"
	case TwoTetrahedronSphere:
		return "S3 (2)"
	case PentachoronBoundary:
		return "S3 (5)"
	}
	return fmt.Sprintf("TrivialTri(%d)", int(t.Kind))
}

func (t TrivialTri) TeXName() string {
	switch t.Kind {
	case Tetrahedron:
		return "B^3_{1}"
	case TwoTetrahedronSphere:
		return "S^3_{2}"
	case PentachoronBoundary:
		return "S^3_{5}"
	}
	return fmt.Sprintf("\\mathrm{Trivial}_{%d}", int(t.Kind))
}

func (t TrivialTri) Manifold() (string, error) {
	switch t.Kind {
	case Tetrahedron:
		return "B3", nil
	case TwoTetrahedronSphere, PentachoronBoundary:
		return "S3", nil
	}
	return "", recogniseErrorf("TrivialTri.Manifold", ErrNotImplemented, "kind %d", int(t.Kind))
}

func (t TrivialTri) Homology() (abelian.Group, error) {
	switch t.Kind {
	case Tetrahedron, TwoTetrahedronSphere, PentachoronBoundary:
		return abelian.Trivial(), nil
	}
	return abelian.Group{}, recogniseErrorf("TrivialTri.Homology", ErrNotImplemented, "kind %d", int(t.Kind))
}

func (t TrivialTri) Construct() (*triangulation.Triangulation, error) {
	switch t.Kind {
	case Tetrahedron:
		return construct("TrivialTri.Construct", builder.Ball())
	case TwoTetrahedronSphere:
		return construct("TrivialTri.Construct", builder.Sphere())
	case PentachoronBoundary:
		return construct("TrivialTri.Construct", builder.SimplexBoundary())
	}
	return nil, recogniseErrorf("TrivialTri.Construct", ErrInvalidArgument, "kind %d", int(t.Kind))
}

// coprime reports gcd(a, b) = 1.
func coprime(a, b int) bool { return integer.GCD64(int64(a), int64(b)) == 1 }
