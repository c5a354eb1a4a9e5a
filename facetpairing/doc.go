// Package facetpairing models the dual graph of a triangulation: which
// facet of which simplex is glued to which, forgetting the gluing
// permutations.
//
// What
//
//   - FacetPairing stores, for every facet (s, f), its partner or the
//     boundary marker FacetSpec{Simp: Size(), Facet: 0}.
//   - Canonical, IsCanonical and Automorphisms compare pairings under
//     relabelling of simplices and of the facets of each simplex. The
//     canonical form is the relabelling whose destination sequence, read in
//     (simplex, facet) order with boundary last, is lexicographically
//     smallest.
//   - Enumerate lists the closed connected canonical pairings of a given
//     size by orderly generation. In dimension 3 these are the connected
//     4-valent multigraphs: 1, 2, 4, 10, 28, 97, 359, 1635 for n = 1..8.
//   - The Has* detectors recognise the dimension-3 subgraphs that census
//     generation uses to discard pairings that cannot give minimal
//     triangulations.
//
// Text form
//
//	TextRep writes each destination as "simp facet", space separated, in
//	(simplex, facet) order; FromTextRep reads it back. Dot writes a graphviz
//	description of the underlying multigraph.
package facetpairing
