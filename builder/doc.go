// Package builder assembles standard triangulations from composable
// constructors, in the "functional options" style used across trimanifold.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – Build(dim, opts, cons...): fresh triangulation, constructors applied in order.
//     – Constructor:               a function inserting one piece into a triangulation.
//   - Options (BuilderOption):
//     – WithLabel:                 names the result.
//     – WithRandomRelabel:         seeded shuffle through a derived random stream.
//     – WithOrientationPreserved:  restricts the shuffle to even permutations.
//   - Layered families (dim 3):
//     – LayeredSolidTorus(a, b), LayeredLensSpace(p, q), LayeredLoop(n, twisted).
//   - Spheres and balls (dim 2..4):
//     – Ball, Sphere, SimplexBoundary.
//   - Closed surfaces (dim 2):
//     – Torus, KleinBottle, ProjectivePlane.
//   - Fixed and decoded triangulations:
//     – FigureEight, SnappedBall, FromIsoSig, FromGluings.
//
// Guarantees:
//
//   - Constructors only add simplices, so several of them in one Build give a
//     disconnected triangulation with one component per piece.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Structured runtime errors (ErrBadParameter, ErrUnsupportedDimension,
//     ErrConstructFailed) wrapped with the constructor name.
//
// Example:
//
//	l71, err := builder.Build(3, nil, builder.LayeredLensSpace(7, 1))
//	if err != nil { ... }
//	fmt.Println(l71.HomologyH1()) // Z_7
package builder
