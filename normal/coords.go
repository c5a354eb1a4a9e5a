package normal

import "strings"

// Coords selects a coordinate system. The values are distinct bits so that
// callers may test membership in a set of systems with a mask.
type Coords uint8

const (
	// Standard stores 4 triangle and 3 quad coordinates per tetrahedron.
	Standard Coords = 1 << iota
	// Quad stores 3 quad coordinates per tetrahedron.
	Quad
	// AlmostNormal stores 4 triangle, 3 quad and 3 octagon coordinates per
	// tetrahedron.
	AlmostNormal
	// QuadOct stores 3 quad and 3 octagon coordinates per tetrahedron.
	QuadOct
)

func (c Coords) String() string {
	switch c {
	case Standard:
		return "standard"
	case Quad:
		return "quad"
	case AlmostNormal:
		return "almost normal"
	case QuadOct:
		return "quad-oct"
	}
	return "unknown"
}

func (c Coords) valid() bool {
	return c == Standard || c == Quad || c == AlmostNormal || c == QuadOct
}

// Block returns the number of coordinates per tetrahedron.
func (c Coords) Block() int {
	switch c {
	case Standard:
		return 7
	case Quad:
		return 3
	case AlmostNormal:
		return 10
	case QuadOct:
		return 6
	}
	return 0
}

// HasTriangles reports whether triangle coordinates are stored.
func (c Coords) HasTriangles() bool { return c == Standard || c == AlmostNormal }

// HasOctagons reports whether octagon coordinates are stored.
func (c Coords) HasOctagons() bool { return c == AlmostNormal || c == QuadOct }

// standardOf is the coordinate system with triangles that c converts to.
func (c Coords) standardOf() Coords {
	if c.HasOctagons() {
		return AlmostNormal
	}
	return Standard
}

// quadOf is the triangle-free coordinate system for c.
func (c Coords) quadOf() Coords {
	if c.HasOctagons() {
		return QuadOct
	}
	return Quad
}

// triPos returns the index of triangle v in tetrahedron tet, or -1.
func (c Coords) triPos(tet, v int) int {
	if !c.HasTriangles() {
		return -1
	}
	return c.Block()*tet + v
}

func (c Coords) quadPos(tet, q int) int {
	if c.HasTriangles() {
		return c.Block()*tet + 4 + q
	}
	return c.Block()*tet + q
}

// octPos returns the index of octagon o in tetrahedron tet, or -1.
func (c Coords) octPos(tet, o int) int {
	if !c.HasOctagons() {
		return -1
	}
	return c.quadPos(tet, 0) + 3 + o
}

// ListType selects what Enumerate produces.
type ListType uint8

const (
	// Vertex lists the surfaces on extreme rays of the solution cone.
	Vertex ListType = 1 << iota
	// Fundamental lists the Hilbert basis of the solution cone.
	Fundamental
	// EmbeddedOnly applies the quadrilateral and octagon constraints.
	EmbeddedOnly
	// ImmersedSingular drops the constraints.
	ImmersedSingular
)

func (l ListType) String() string {
	var parts []string
	if l&Vertex != 0 {
		parts = append(parts, "vertex")
	}
	if l&Fundamental != 0 {
		parts = append(parts, "fundamental")
	}
	if l&EmbeddedOnly != 0 {
		parts = append(parts, "embedded")
	}
	if l&ImmersedSingular != 0 {
		parts = append(parts, "immersed/singular")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// embedded reports whether the validity constraints apply.
func (l ListType) embedded() bool { return l&ImmersedSingular == 0 }

// Algorithm selects the enumeration back end.
type Algorithm uint8

const (
	// AlgDefault picks double description for vertex lists and the primal
	// Hilbert method for fundamental lists.
	AlgDefault Algorithm = iota
	// AlgDD uses double description.
	AlgDD
	// AlgTree uses tree traversal.
	AlgTree
	// AlgHilbertDual uses the dual Hilbert completion.
	AlgHilbertDual
	// AlgHilbertCD uses the Contejean–Devie method.
	AlgHilbertCD
	// AlgHilbertPrimal uses the primal Hilbert method.
	AlgHilbertPrimal
)

var algNames = [...]string{"default", "double description", "tree traversal",
	"hilbert dual", "hilbert contejean-devie", "hilbert primal"}

func (a Algorithm) String() string {
	if int(a) >= len(algNames) {
		return "unknown"
	}
	return algNames[a]
}

func (a Algorithm) forVertex() bool { return a == AlgDD || a == AlgTree }

func (a Algorithm) forFundamental() bool {
	return a == AlgHilbertDual || a == AlgHilbertCD || a == AlgHilbertPrimal
}
