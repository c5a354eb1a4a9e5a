// Package turaevviro evaluates Turaev–Viro state sum invariants of
// 3-dimensional triangulations.
//
// For an integer r ≥ 3 and a root 1 ≤ root < 2r coprime to r, the
// invariant uses q = exp(iπ·root/r). Edges are coloured by spins
// 0, 1/2, ..., (r−2)/2 (stored doubled, 0..r−2); a colouring is admissible
// when the three colours around every triangle satisfy the triangle
// inequalities, have an even sum and sum to at most 2(r−2). The
// invariant sums, over admissible colourings, the product of the vertex,
// edge, triangle and tetrahedron weights of Turaev and Viro.
//
// Evaluate walks the colourings by backtracking with high-degree edges
// first, so that triangles close early and prune the search. The running
// time is exponential in the number of edges.
package turaevviro
