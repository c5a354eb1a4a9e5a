package triangulation

import (
	"github.com/katalvlaran/trimanifold/perm"
)

// facetTarget says where an external facet of a simplex being replaced ends
// up: facet facet of simp, with conv translating old vertex labels to new.
type facetTarget struct {
	simp  *Simplex
	facet int
	conv  perm.Perm
}

type externalGluing struct {
	from     facetTarget
	adj      *Simplex
	adjFacet int
	g        perm.Perm
	locked   bool
}

// rewire moves every external gluing of old onto the new simplices named by
// target and then deletes old. Internal facets (those for which target
// reports false) are dropped.
func (t *Triangulation) rewire(old []*Simplex, target func(s *Simplex, f int) (facetTarget, bool)) {
	isOld := make(map[*Simplex]bool, len(old))
	for _, s := range old {
		isOld[s] = true
	}
	var ext []externalGluing
	for _, s := range old {
		for f := range s.adj {
			tg, ok := target(s, f)
			if !ok {
				continue
			}
			e := externalGluing{from: tg, adj: s.adj[f], g: s.gluing[f], locked: s.IsFacetLocked(f)}
			if e.adj != nil {
				e.adjFacet = e.g.Image(f)
			}
			ext = append(ext, e)
		}
	}
	for _, s := range old {
		for f := range s.adj {
			s.unjoin(f)
		}
	}
	for _, e := range ext {
		n, nf := e.from.simp, e.from.facet
		if e.locked {
			n.locks |= 1 << (nf + 1)
		}
		if e.adj == nil || n.adj[nf] != nil {
			continue
		}
		if isOld[e.adj] {
			tg2, _ := target(e.adj, e.adjFacet)
			n.join(nf, tg2.simp, tg2.conv.Compose(e.g).Compose(e.from.conv.Inverse()))
		} else {
			n.join(nf, e.adj, e.g.Compose(e.from.conv.Inverse()))
		}
	}
	for _, s := range old {
		t.removeSimplex(s)
	}
}

// OneToMany performs the 1-(dim+1) Pachner move on s, replacing it with
// dim+1 simplices meeting at a new interior vertex. The move is always
// legal unless s is locked. If perform is false nothing changes.
func (t *Triangulation) OneToMany(s *Simplex, check, perform bool) (bool, error) {
	if s == nil || s.tri != t {
		return false, triErrorf(opOneToMany, ErrInvalidArgument, "simplex does not belong to this triangulation")
	}
	if s.IsLocked() {
		return false, triErrorf(opOneToMany, ErrLocked, "simplex %d", s.index)
	}
	if !perform {
		return true, nil
	}
	defer t.BeginChange(TopologyPreserved).End()
	d := t.dim
	id := perm.Identity(d + 1)
	nu := make([]*Simplex, d+1)
	for i := range nu {
		nu[i] = t.newSimplex()
	}
	for i := 0; i <= d; i++ {
		for j := i + 1; j <= d; j++ {
			nu[i].join(j, nu[j], perm.Transposition(d+1, i, j))
		}
	}
	t.rewire([]*Simplex{s}, func(_ *Simplex, f int) (facetTarget, bool) {
		return facetTarget{simp: nu[f], facet: f, conv: id}, true
	})
	return true, nil
}

// TwoToMany performs the 2-dim Pachner move across facet f of s: the two
// distinct simplices sharing that facet are replaced by dim simplices
// surrounding the new edge joining their apexes. This is the 2-2 move in
// dimension 2, 2-3 in dimension 3 and 2-4 in dimension 4.
func (t *Triangulation) TwoToMany(s *Simplex, f int, check, perform bool) (bool, error) {
	if s == nil || s.tri != t {
		return false, triErrorf(opTwoToMany, ErrInvalidArgument, "simplex does not belong to this triangulation")
	}
	if err := s.checkFacet(opTwoToMany, f); err != nil {
		return false, err
	}
	b := s.adj[f]
	if b == nil || b == s {
		if check {
			return false, nil
		}
		return false, triErrorf(opTwoToMany, ErrNotApplicable, "facet %d of simplex %d is not shared by two distinct simplices", f, s.index)
	}
	if s.IsLocked() || b.IsLocked() || s.IsFacetLocked(f) {
		return false, triErrorf(opTwoToMany, ErrLocked, "simplices %d and %d", s.index, b.index)
	}
	if !perform {
		return true, nil
	}
	defer t.BeginChange(TopologyPreserved).End()
	d, a := t.dim, f
	g := s.gluing[f]
	apexB := g.Image(a)
	nu := make([]*Simplex, d+1) // indexed by the vertex of the shared facet they omit
	for v := 0; v <= d; v++ {
		if v != a {
			nu[v] = t.newSimplex()
		}
	}
	for v := 0; v <= d; v++ {
		for w := v + 1; w <= d; w++ {
			if v != a && w != a {
				nu[v].join(w, nu[w], perm.Transposition(d+1, v, w))
			}
		}
	}
	id := perm.Identity(d + 1)
	gInv := g.Inverse()
	t.rewire([]*Simplex{s, b}, func(x *Simplex, y int) (facetTarget, bool) {
		if x == s && y != a {
			return facetTarget{simp: nu[y], facet: y, conv: id}, true
		}
		if x == b && y != apexB {
			v := gInv.Image(y)
			return facetTarget{simp: nu[v], facet: a, conv: perm.Transposition(d+1, a, v).Compose(gInv)}, true
		}
		return facetTarget{}, false
	})
	return true, nil
}

// ThreeTwo performs the 3-2 move about edge e of a 3-dimensional
// triangulation: the three distinct tetrahedra around a valid internal edge
// of degree three are replaced by two tetrahedra sharing a triangle.
func (t *Triangulation) ThreeTwo(e *Face, check, perform bool) (bool, error) {
	if t.dim != 3 {
		return false, triErrorf(opThreeTwo, ErrNotApplicable, "dimension %d", t.dim)
	}
	if e == nil || e.tri != t || e.subdim != 1 {
		return false, triErrorf(opThreeTwo, ErrInvalidArgument, "not an edge of this triangulation")
	}
	cyc, closed := e.Cycle()
	if !closed || len(cyc) != 3 || !e.IsValid() || e.IsBoundary() ||
		cyc[0].Simplex == cyc[1].Simplex || cyc[1].Simplex == cyc[2].Simplex || cyc[0].Simplex == cyc[2].Simplex {
		if check {
			return false, nil
		}
		return false, triErrorf(opThreeTwo, ErrNotApplicable, "edge %d is not a valid internal edge of degree 3 in distinct tetrahedra", e.index)
	}
	for _, c := range cyc {
		if c.Simplex.IsLocked() || c.Simplex.IsFacetLocked(c.Vertices.Image(2)) || c.Simplex.IsFacetLocked(c.Vertices.Image(3)) {
			return false, triErrorf(opThreeTwo, ErrLocked, "simplex %d", c.Simplex.index)
		}
	}
	if !perform {
		return true, nil
	}
	defer t.BeginChange(TopologyPreserved).End()
	u, w := t.newSimplex(), t.newSimplex()
	u.join(3, w, perm.Identity(4))
	old := []*Simplex{cyc[0].Simplex, cyc[1].Simplex, cyc[2].Simplex}
	t.rewire(old, func(x *Simplex, y int) (facetTarget, bool) {
		for i, c := range cyc {
			if c.Simplex != x {
				continue
			}
			p := c.Vertices
			pInv := p.Inverse()
			switch y {
			case p.Image(1):
				return facetTarget{simp: u, facet: (i + 2) % 3, conv: perm.Of(3, (i+2)%3, i, (i+1)%3).Compose(pInv)}, true
			case p.Image(0):
				return facetTarget{simp: w, facet: (i + 2) % 3, conv: perm.Of((i+2)%3, 3, i, (i+1)%3).Compose(pInv)}, true
			}
		}
		return facetTarget{}, false
	})
	return true, nil
}

// Cycle walks around a (dim−2)-face. Consecutive embeddings share the facet
// opposite Vertices(dim−1) of the first, and each embedding's Vertices(dim)
// becomes the next one's Vertices(dim−1). For an internal face the walk
// starts at the front embedding and closed is true; for a boundary face it
// runs from one boundary end to the other.
func (f *Face) Cycle() (walk []Embedding, closed bool) {
	d := f.tri.dim
	if f.subdim != d-2 {
		return nil, false
	}
	swap := perm.Transposition(d+1, d-1, d)
	step := func(e Embedding, exitSlot int) (Embedding, bool) {
		j := e.Vertices.Image(exitSlot)
		next := e.Simplex.adj[j]
		if next == nil {
			return Embedding{}, false
		}
		p := e.Simplex.gluing[j].Compose(e.Vertices).Compose(swap)
		return Embedding{Simplex: next, Face: faceOfHead(d, d-2, p), Vertices: p}, true
	}
	start := f.emb[0]
	limit := 2*len(f.emb) + 2
	if f.boundary {
		// Rewind to one end first.
		for i := 0; i < limit; i++ {
			prev, ok := step(start, d)
			if !ok {
				break
			}
			start = prev
		}
	}
	walk = append(walk, start)
	cur := start
	for i := 0; i < limit; i++ {
		next, ok := step(cur, d-1)
		if !ok {
			return walk, false
		}
		if next.Simplex == start.Simplex && next.Vertices == start.Vertices {
			return walk, true
		}
		walk = append(walk, next)
		cur = next
	}
	return walk, false
}

// ShellBoundary removes a tetrahedron of a 3-dimensional triangulation that
// has one, two or three boundary facets, when doing so keeps the manifold:
//   - one boundary facet: the opposite vertex is internal and its three
//     edges are distinct and valid;
//   - two boundary facets: the other two facets are not glued to each
//     other and their common edge is internal and valid;
//   - three boundary facets: always.
func (t *Triangulation) ShellBoundary(s *Simplex, check, perform bool) (bool, error) {
	if t.dim != 3 {
		return false, triErrorf(opShell, ErrNotApplicable, "dimension %d", t.dim)
	}
	if s == nil || s.tri != t {
		return false, triErrorf(opShell, ErrInvalidArgument, "simplex does not belong to this triangulation")
	}
	var bdry, inner []int
	for f := 0; f < 4; f++ {
		if s.adj[f] == nil {
			bdry = append(bdry, f)
		} else {
			inner = append(inner, f)
		}
	}
	if !t.canShell(s, bdry, inner) {
		if check {
			return false, nil
		}
		return false, triErrorf(opShell, ErrNotApplicable, "simplex %d cannot be shelled", s.index)
	}
	if s.IsLocked() {
		return false, triErrorf(opShell, ErrLocked, "simplex %d", s.index)
	}
	for _, f := range bdry {
		if s.IsFacetLocked(f) {
			return false, triErrorf(opShell, ErrLocked, "boundary facet %d of simplex %d", f, s.index)
		}
	}
	if !perform {
		return true, nil
	}
	defer t.BeginChange(TopologyPreserved).End()
	t.removeSimplex(s)
	return true, nil
}

func (t *Triangulation) canShell(s *Simplex, bdry, inner []int) bool {
	switch len(bdry) {
	case 3:
		return true
	case 2:
		if s.adj[inner[0]] == s {
			return false
		}
		e := s.Edge(FaceNumber(3, 1, bdry[0], bdry[1]))
		return !e.IsBoundary() && e.IsValid()
	case 1:
		v := bdry[0]
		if s.Vertex(v).IsBoundary() {
			return false
		}
		var edges []*Face
		for w := 0; w < 4; w++ {
			if w != v {
				edges = append(edges, s.Edge(FaceNumber(3, 1, v, w)))
			}
		}
		for i, e := range edges {
			if !e.IsValid() {
				return false
			}
			for _, o := range edges[i+1:] {
				if e == o {
					return false
				}
			}
		}
		return true
	}
	return false
}

// Simplify greedily applies boundary shellings and 3-2 moves to a
// 3-dimensional triangulation until neither applies. It reports whether
// anything changed. The result is a local minimum for these two moves only.
func (t *Triangulation) Simplify() bool {
	if t.dim != 3 {
		return false
	}
	changed := false
	for {
		if t.shellOnce() || t.threeTwoOnce() {
			changed = true
			continue
		}
		return changed
	}
}

func (t *Triangulation) shellOnce() bool {
	for _, s := range t.simplices {
		if ok, _ := t.ShellBoundary(s, true, false); ok {
			_, err := t.ShellBoundary(s, false, true)
			return err == nil
		}
	}
	return false
}

func (t *Triangulation) threeTwoOnce() bool {
	for _, e := range t.Edges() {
		if ok, _ := t.ThreeTwo(e, true, false); ok {
			_, err := t.ThreeTwo(e, false, true)
			return err == nil
		}
	}
	return false
}
