package triangulation

import (
	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/perm"
)

// headParity returns the sign of the permutation taking the vertex list l
// to the order in which q lists the same vertices.
func headParity(l []int, q perm.Perm) int {
	sign := 1
	for a := 0; a < len(l); a++ {
		for b := a + 1; b < len(l); b++ {
			if q.Pre(l[a]) > q.Pre(l[b]) {
				sign = -sign
			}
		}
	}
	return sign
}

// faceBoundary returns the signed (k−1)-faces of the k-face seen in simplex
// s through the vertex map p. For k == dim, p is the identity.
func (sk *skeleton) faceBoundary(d, k int, s *Simplex, p perm.Perm, emit func(row, sign int)) {
	l := make([]int, 0, k)
	for i := 0; i <= k; i++ {
		l = l[:0]
		for j := 0; j <= k; j++ {
			if j != i {
				l = append(l, p.Image(j))
			}
		}
		num := FaceNumber(d, k-1, l...)
		sign := headParity(l, sk.facePerm[s.index][k-1][num])
		if i%2 == 1 {
			sign = -sign
		}
		emit(sk.faceIdx[s.index][k-1][num], sign)
	}
}

// boundaryMap returns ∂_k as a CountFaces(k−1) × CountFaces(k) matrix,
// 1 ≤ k ≤ dim.
func (t *Triangulation) boundaryMap(k int) *matrix.Dense {
	sk, d := t.skeleton(), t.dim
	m := matrix.Zeros(t.CountFaces(k-1), t.CountFaces(k))
	add := func(col int) func(row, sign int) {
		return func(row, sign int) { m.AddEntry(row, col, integer.New(int64(sign))) }
	}
	if k == d {
		id := perm.Identity(d + 1)
		for _, s := range t.simplices {
			sk.faceBoundary(d, k, s, id, add(s.index))
		}
		return m
	}
	for _, f := range sk.faces[k] {
		e := f.emb[0]
		sk.faceBoundary(d, k, e.Simplex, e.Vertices, add(f.index))
	}
	return m
}

// Homology returns H_k of the cell complex formed by the faces of t,
// 0 ≤ k ≤ dim. Ideal vertices are treated as ordinary points; use
// HomologyH1 for the first homology of the underlying manifold.
func (t *Triangulation) Homology(k int) (abelian.Group, error) {
	if k < 0 || k > t.dim {
		return abelian.Group{}, triErrorf(opHomology, ErrInvalidArgument, "degree %d in dimension %d", k, t.dim)
	}
	if len(t.simplices) == 0 {
		return abelian.Trivial(), nil
	}
	t.topoMu.Lock()
	if g, ok := t.topo.homology[k]; ok {
		t.topoMu.Unlock()
		return g, nil
	}
	t.topoMu.Unlock()

	var in, out *matrix.Dense
	if k > 0 {
		out = t.boundaryMap(k)
	}
	if k < t.dim {
		in = t.boundaryMap(k + 1)
	}
	g, err := abelian.FromChainComplex(in, out)
	if err != nil {
		return abelian.Group{}, triErrorf(opHomology, err, "degree %d", k)
	}

	t.topoMu.Lock()
	if t.topo.homology == nil {
		t.topo.homology = make(map[int]abelian.Group)
	}
	t.topo.homology[k] = g
	t.topoMu.Unlock()
	return g, nil
}

// dualGenerators numbers the internal facets that lie outside the spanning
// forest of the dual graph. Both sides of a gluing share a number; forest
// facets and boundary facets get -1.
func (t *Triangulation) dualGenerators(all bool) ([][]int, int) {
	sk := t.skeleton()
	gen := make([][]int, len(t.simplices))
	for i := range gen {
		gen[i] = make([]int, t.dim+1)
		for f := range gen[i] {
			gen[i][f] = -1
		}
	}
	n := 0
	for _, s := range t.simplices {
		for f, a := range s.adj {
			if a == nil || gen[s.index][f] >= 0 || (!all && sk.tree[s.index][f]) {
				continue
			}
			gen[s.index][f] = n
			gen[a.index][s.gluing[f].Image(f)] = n
			n++
		}
	}
	return gen, n
}

// lowerSide reports whether facet f of s is the smaller end of its gluing.
func lowerSide(s *Simplex, f int) bool {
	a := s.adj[f]
	return s.index < a.index || (a == s && f < s.gluing[f].Image(f))
}

// dualRelations walks around every internal (dim−2)-face and records, for
// each, the signed count of crossings of each numbered facet.
func (t *Triangulation) dualRelations(gen [][]int, n int) [][]int64 {
	var rels [][]int64
	d := t.dim
	for _, f := range t.skeleton().faces[d-2] {
		if f.boundary {
			continue
		}
		walk, _ := f.Cycle()
		row := make([]int64, n)
		for _, e := range walk {
			j := e.Vertices.Image(d - 1)
			g := gen[e.Simplex.index][j]
			if g < 0 {
				continue
			}
			if lowerSide(e.Simplex, j) {
				row[g]++
			} else {
				row[g]--
			}
		}
		rels = append(rels, row)
	}
	return rels
}

// HomologyH1 returns the first homology of the underlying manifold,
// computed from the dual 1-skeleton: one generator per internal facet
// outside a spanning forest, one relation per internal (dim−2)-face. Ideal
// vertices are effectively truncated.
func (t *Triangulation) HomologyH1() abelian.Group {
	t.topoMu.Lock()
	defer t.topoMu.Unlock()
	if t.topo.h1 != nil {
		return *t.topo.h1
	}
	g := t.computeH1()
	t.topo.h1 = &g
	return g
}

func (t *Triangulation) computeH1() abelian.Group {
	if len(t.simplices) == 0 {
		return abelian.Trivial()
	}
	gen, n := t.dualGenerators(false)
	if n == 0 {
		return abelian.Trivial()
	}
	rels := t.dualRelations(gen, n)
	if len(rels) == 0 {
		return abelian.Free(n)
	}
	m := matrix.Zeros(len(rels), n)
	for i, row := range rels {
		for j, v := range row {
			if v != 0 {
				m.SetInt64(i, j, v)
			}
		}
	}
	g, err := abelian.FromPresentation(n, m)
	if err != nil {
		panic("triangulation: H1 presentation: " + err.Error())
	}
	return g
}

// HomologyH2Z2 returns the rank of H_2 of the underlying manifold with
// Z/2 coefficients, computed on the dual cell structure.
func (t *Triangulation) HomologyH2Z2() int {
	t.topoMu.Lock()
	defer t.topoMu.Unlock()
	if t.topo.h2z2 != nil {
		return *t.topo.h2z2
	}
	r := t.computeH2Z2()
	t.topo.h2z2 = &r
	return r
}

func (t *Triangulation) computeH2Z2() int {
	if len(t.simplices) == 0 {
		return 0
	}
	sk, d := t.skeleton(), t.dim

	// Dual 2-cells are internal (dim−2)-faces.
	cells := make(map[*Face]int)
	for _, f := range sk.faces[d-2] {
		if !f.boundary {
			cells[f] = len(cells)
		}
	}
	if len(cells) == 0 {
		return 0
	}

	gen, n := t.dualGenerators(true)
	d2 := matrix.Zeros(n, len(cells))
	for col, row := range t.dualRelations(gen, n) {
		for j, v := range row {
			if v%2 != 0 {
				d2.SetInt64(j, col, 1)
			}
		}
	}
	rank2, err := d2.RankModP(2)
	if err != nil {
		panic("triangulation: H2 rank: " + err.Error())
	}

	rank3 := 0
	if d >= 3 {
		var cols []*Face
		for _, v := range sk.faces[d-3] {
			if !v.IsBoundary() {
				cols = append(cols, v)
			}
		}
		colIdx := make(map[*Face]int, len(cols))
		for i, v := range cols {
			colIdx[v] = i
		}
		d3 := matrix.Zeros(len(cells), len(cols))
		for f, row := range cells {
			e := f.emb[0]
			sk.faceBoundary(d, d-2, e.Simplex, e.Vertices, func(sub, _ int) {
				if col, ok := colIdx[sk.faces[d-3][sub]]; ok {
					d3.AddEntry(row, col, integer.New(1))
				}
			})
		}
		if rank3, err = d3.RankModP(2); err != nil {
			panic("triangulation: H2 rank: " + err.Error())
		}
	}
	return len(cells) - rank2 - rank3
}

// BoundaryHomologyMap returns the map H_1(b) → H_1(t) induced by including
// a real boundary component of a 3-dimensional triangulation. Both groups
// are computed from the face complexes.
func (t *Triangulation) BoundaryHomologyMap(b *BoundaryComponent) (*abelian.HomMarked, error) {
	if t.dim != 3 {
		return nil, triErrorf(opHomology, ErrNotApplicable, "boundary map in dimension %d", t.dim)
	}
	if b == nil || b.tri != t {
		return nil, triErrorf(opHomology, ErrInvalidArgument, "boundary component does not belong to this triangulation")
	}
	if b.IsIdeal() {
		return nil, triErrorf(opHomology, ErrNotApplicable, "boundary component %d is ideal", b.index)
	}
	bt, bmap, err := b.Build()
	if err != nil {
		return nil, err
	}
	dom, err := abelian.NewMarked(bt.boundaryMap(1), bt.boundaryMap(2))
	if err != nil {
		return nil, triErrorf(opHomology, err, "boundary H1")
	}
	ran, err := abelian.NewMarked(t.boundaryMap(1), t.boundaryMap(2))
	if err != nil {
		return nil, triErrorf(opHomology, err, "H1")
	}

	sk := t.skeleton()
	chain := matrix.Zeros(t.CountFaces(1), bt.CountFaces(1))
	for _, e := range bt.Edges() {
		be := e.emb[0]
		bf := bmap[be.Simplex.index]
		u := bf.Vertices.Image(be.Vertices.Image(0))
		v := bf.Vertices.Image(be.Vertices.Image(1))
		num := FaceNumber(3, 1, u, v)
		sign := headParity([]int{u, v}, sk.facePerm[bf.Simplex.index][1][num])
		chain.AddEntry(sk.faceIdx[bf.Simplex.index][1][num], e.index, integer.New(int64(sign)))
	}
	h, err := abelian.NewHomMarked(dom, ran, chain)
	if err != nil {
		return nil, triErrorf(opHomology, err, "boundary inclusion")
	}
	return h, nil
}
