// Package builder defines shared constants used by the constructors, so that
// error contexts and fixed signatures live in one place.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodLayeredSolidTorus is the canonical name for the LayeredSolidTorus constructor.
	MethodLayeredSolidTorus = "LayeredSolidTorus"
	// MethodLayeredLensSpace is the canonical name for the LayeredLensSpace constructor.
	MethodLayeredLensSpace = "LayeredLensSpace"
	// MethodLayeredLoop is the canonical name for the LayeredLoop constructor.
	MethodLayeredLoop = "LayeredLoop"
	// MethodSurface is the canonical name shared by the closed surface constructors.
	MethodSurface = "Surface"
	// MethodFigureEight is the canonical name for the FigureEight constructor.
	MethodFigureEight = "FigureEight"
	// MethodSnappedBall is the canonical name for the SnappedBall constructor.
	MethodSnappedBall = "SnappedBall"
	// MethodFromIsoSig is the canonical name for the FromIsoSig constructor.
	MethodFromIsoSig = "FromIsoSig"
	// MethodFromGluings is the canonical name for the FromGluings constructor.
	MethodFromGluings = "FromGluings"
)

//-----------------------------------------------------------------------------
// Fixed signatures
//-----------------------------------------------------------------------------

// FigureEightSig is the isomorphism signature of the two-tetrahedron ideal
// triangulation of the figure-eight knot complement.
const FigureEightSig = "cPcbbbiht"

//-----------------------------------------------------------------------------
// Minimum parameters
//-----------------------------------------------------------------------------

// MinLoopLength is the smallest layered loop (one tetrahedron glued to itself).
const MinLoopLength = 1
