package angle

import (
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Pair returns the edge pair (0, 1 or 2) holding the tetrahedron edge
// joining vertices a and b. Pair p is edges p and 5−p.
func Pair(a, b int) int {
	e := triangulation.FaceNumber(3, 1, a, b)
	if e > 2 {
		return 5 - e
	}
	return e
}

func checkTriangulation(op string, t *triangulation.Triangulation) error {
	switch {
	case t == nil:
		return angleErrorf(op, ErrInvalidArgument, "nil triangulation")
	case t.Dim() != 3:
		return angleErrorf(op, ErrInvalidArgument, "dimension %d, want 3", t.Dim())
	case !t.IsValid():
		return angleErrorf(op, ErrInvalidArgument, "triangulation is not valid")
	}
	return nil
}

// Equations returns the homogeneous angle equations of t: one row per
// tetrahedron, α₀+α₁+α₂−s = 0, then one row per internal edge, the angles
// around it minus 2s. The last column is the scaling member s.
func Equations(t *triangulation.Triangulation) (*matrix.Dense, error) {
	if err := checkTriangulation("Equations", t); err != nil {
		return nil, err
	}
	n := t.Size()
	var internal []*triangulation.Face
	for _, e := range t.Edges() {
		if !e.IsBoundary() {
			internal = append(internal, e)
		}
	}
	m := matrix.Zeros(n+len(internal), 3*n+1)
	for tet := 0; tet < n; tet++ {
		for p := 0; p < 3; p++ {
			m.SetInt64(tet, 3*tet+p, 1)
		}
		m.SetInt64(tet, 3*n, -1)
	}
	for i, e := range internal {
		row := n + i
		counts := make(map[int]int64)
		for _, emb := range e.Embeddings() {
			col := 3*emb.Simplex.Index() + Pair(emb.Vertices.Image(0), emb.Vertices.Image(1))
			counts[col]++
		}
		for col, k := range counts {
			m.SetInt64(row, col, k)
		}
		m.SetInt64(row, 3*n, -2)
	}
	return m, nil
}
