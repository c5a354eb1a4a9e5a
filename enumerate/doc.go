// Package enumerate lists the extreme rays and the Hilbert basis of a
// polyhedral cone
//
//	C = { x ∈ Zⁿ : x ≥ 0, A·x = 0 }
//
// restricted to supports admitted by a set of validity constraints, each of
// which allows at most one non-zero coordinate among a group of coordinates.
// Normal surface and angle structure enumeration are built on top of it.
//
// Algorithms:
//
//   - DoubleDescription: extreme rays, one hyperplane at a time from the
//     unit rays of the orthant, with the combinatorial adjacency test.
//   - TreeTraversal: extreme rays by depth-first search over zero/non-zero
//     decisions per coordinate, pruned with an exact rational LP and a
//     TypeTrie of supports already found.
//   - HilbertDual: Hilbert basis by completion, one hyperplane at a time.
//   - HilbertCD: Hilbert basis by the Contejean–Devie depth-first search.
//   - HilbertPrimal: Hilbert basis from the extreme rays, face by face,
//     through lattice points of fundamental parallelepipeds.
//
// Every algorithm takes a context, honours a progress.Tracker, logs debug
// records through zap, and may stream results through WithEmit.
// Cancellation is not an error: the result carries Cancelled instead.
package enumerate
