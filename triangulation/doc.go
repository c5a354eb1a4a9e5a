// Package triangulation implements triangulations of dimension 2, 3 and 4
// built from simplices whose facets are glued in pairs by permutations.
//
// A Triangulation owns its simplices. Gluings are always stored on both
// sides: if facet f of A is glued to B by π, then facet π(f) of B is glued to
// A by π⁻¹. Every mutation runs inside a change span (see BeginChange), which
// invalidates the lazily computed skeleton and, unless a topology lock is
// held, the cached topological invariants.
//
// The skeleton (faces of every dimension, components, boundary components,
// validity, orientability and links) is computed on first query after a
// change and reused until the next one.
//
// Mutation is not safe for concurrent use. Read-only queries on a
// triangulation that is not being modified may run concurrently.
package triangulation
