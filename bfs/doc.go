// Package bfs provides breadth-first search over integer-labelled port
// graphs, returning unweighted distances, parent links with the port each
// vertex was discovered through, and the visit order.
//
// What
//
//   - A Graph has vertices 0..Order()-1; Arcs(v) lists the arcs leaving v,
//     each carrying its destination and the port (local slot) it leaves from.
//     The dual graph of a triangulation is the motivating example: vertices
//     are top-dimensional simplices and ports are facet numbers.
//   - BFS explores from one start vertex; Components labels every vertex by
//     a multi-source sweep in increasing vertex order.
//   - Hooks: OnEnqueue, OnDequeue, OnVisit (may abort with an error) and
//     FilterArc (skip individual arcs).
//   - MaxDepth limits exploration (d > 0) or disables the limit (d == 0).
//
// Determinism
//
//	Arcs are followed in the order Arcs returns them, so the visit sequence
//	and the parent tree are reproducible. Canonical labelling code relies on
//	this.
//
// Complexity (V = Order(), E = total arcs)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation.
//   - Context cancellation surfaces as ctx.Err().
//   - Errors returned by OnVisit are wrapped with the offending vertex.
package bfs
