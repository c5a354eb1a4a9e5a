// Package trimanifold is the core engine of a 3- and 4-manifold topology
// calculator.
//
// The module is a set of flat packages, layered bottom-up:
//
//	integer, perm        exact integers with big escalation; packed permutations
//	matrix, vector       integer matrices (echelon and Smith normal form); rays
//	bfs                  breadth-first walks over port graphs
//	abelian              finitely generated abelian groups and marked maps
//	triangulation        triangulations of dimension 2-4: skeleton, moves,
//	                     isomorphism signatures, homology
//	facetpairing         dual graphs and census enumeration of closed pairings
//	builder              standard triangulations (lens spaces, layered tori, ...)
//	progress, random     cancellation and progress; the shared random engine
//	enumerate            extreme rays and Hilbert bases of polyhedral cones
//	normal, angle        normal surfaces and angle structures
//	turaevviro, forms    Turaev-Viro invariants; intersection forms
//	link                 knots and links from PD codes: Jones and HOMFLY-PT
//	recognise            standard triangulation recognition
//	snappea, census      SnapPea files; census lookup by signature
//
// Command-line tools live under cmd/: distinguish compares invariants of
// triangulations grouped by claimed manifold, and censusdb builds, queries
// and serves census databases.
package trimanifold
