package normal

import (
	"github.com/katalvlaran/trimanifold/enumerate"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// checkTriangulation enforces the common preconditions.
func checkTriangulation(op string, t *triangulation.Triangulation, c Coords) error {
	switch {
	case t == nil:
		return normalErrorf(op, ErrInvalidArgument, "nil triangulation")
	case t.Dim() != 3:
		return normalErrorf(op, ErrInvalidArgument, "dimension %d, want 3", t.Dim())
	case !c.valid():
		return normalErrorf(op, ErrInvalidArgument, "unknown coordinate system %d", c)
	}
	return nil
}

// arcPositions lists the coordinates whose discs meet face f of tet in an
// arc cutting off corner w. Only meaningful in coordinates with triangles.
func arcPositions(c Coords, tet, f, w int) []int {
	out := []int{c.triPos(tet, w), c.quadPos(tet, quadSeparating[w][f])}
	if c.HasOctagons() {
		m := quadMeeting[w][f]
		out = append(out, c.octPos(tet, m[0]), c.octPos(tet, m[1]))
	}
	return out
}

// MatchingEquations returns the matrix whose kernel, intersected with the
// non-negative orthant, holds the normal surfaces of t in coordinates c.
//
// In Standard and AlmostNormal coordinates there are three rows per
// internal triangle, one per corner: the arcs cutting off that corner must
// agree on both sides. In Quad and QuadOct coordinates there is one row per
// internal edge, summed over the ordered embeddings around it. Rows that
// come out identically zero are dropped.
func MatchingEquations(t *triangulation.Triangulation, c Coords) (*matrix.Dense, error) {
	if err := checkTriangulation(opMatching, t, c); err != nil {
		return nil, err
	}
	cols := c.Block() * t.Size()
	var rows [][]int64
	if c.HasTriangles() {
		rows = standardRows(t, c, cols)
	} else {
		rows = quadRows(t, c, cols)
	}
	m := matrix.Zeros(len(rows), cols)
	for i, r := range rows {
		for j, v := range r {
			if v != 0 {
				m.SetInt64(i, j, v)
			}
		}
	}
	return m, nil
}

func standardRows(t *triangulation.Triangulation, c Coords, cols int) [][]int64 {
	var rows [][]int64
	for _, s := range t.Simplices() {
		for f := 0; f < 4; f++ {
			adj := s.Adjacent(f)
			if adj == nil {
				continue
			}
			g := s.Gluing(f)
			gf := g.Image(f)
			if adj.Index() < s.Index() || (adj == s && gf < f) {
				continue
			}
			for w := 0; w < 4; w++ {
				if w == f {
					continue
				}
				row := make([]int64, cols)
				for _, p := range arcPositions(c, s.Index(), f, w) {
					row[p]++
				}
				for _, p := range arcPositions(c, adj.Index(), gf, g.Image(w)) {
					row[p]--
				}
				if !allZero(row) {
					rows = append(rows, row)
				}
			}
		}
	}
	return rows
}

func quadRows(t *triangulation.Triangulation, c Coords, cols int) [][]int64 {
	var rows [][]int64
	for _, e := range t.Edges() {
		walk, closed := e.Cycle()
		if !closed || e.IsBoundary() {
			continue
		}
		row := make([]int64, cols)
		for _, emb := range walk {
			tet := emb.Simplex.Index()
			p := emb.Vertices
			up := quadSeparating[p.Image(0)][p.Image(2)]
			down := quadSeparating[p.Image(0)][p.Image(3)]
			row[c.quadPos(tet, up)]++
			row[c.quadPos(tet, down)]--
			if c.HasOctagons() {
				row[c.octPos(tet, up)]--
				row[c.octPos(tet, down)]++
			}
		}
		if !allZero(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func allZero(row []int64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// ValidityConstraints returns the embeddedness constraints in coordinates
// c: at most one quad type per tetrahedron, or at most one quad or octagon
// type per tetrahedron together with at most one octagon type overall.
func ValidityConstraints(t *triangulation.Triangulation, c Coords) (enumerate.Constraints, error) {
	if err := checkTriangulation(opMatching, t, c); err != nil {
		return nil, err
	}
	var cons enumerate.Constraints
	var octs enumerate.Constraint
	for tet := 0; tet < t.Size(); tet++ {
		var local enumerate.Constraint
		for q := 0; q < 3; q++ {
			local = append(local, c.quadPos(tet, q))
		}
		if c.HasOctagons() {
			for o := 0; o < 3; o++ {
				local = append(local, c.octPos(tet, o))
				octs = append(octs, c.octPos(tet, o))
			}
		}
		cons = append(cons, local)
	}
	if len(octs) > 0 {
		cons = append(cons, octs)
	}
	return cons, nil
}
