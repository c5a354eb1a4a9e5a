package normal

import (
	"sort"

	"github.com/katalvlaran/trimanifold/bfs"
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// diagonalGluing joins the two halves of a quad along their diagonal.
var diagonalGluing = perm.Of(0, 2, 1)

// maxDiscs bounds the number of individual discs materialised for the
// disc-level queries.
const maxDiscs = 1 << 22

// discGraph has one node per individual disc of a compact surface without
// octagons. Nodes of one disc type are consecutive, copy 0 first. Copies of
// a triangle are numbered outwards from its vertex; copies of a quad are
// numbered from the side holding vertex 0. Port i of a node is the i-th
// arc of arcsOf.
type discGraph struct {
	s      *Surface
	types  []discType
	starts []int // starts[i] is the first node of types[i]; one extra entry
}

func newDiscGraph(s *Surface) (*discGraph, error) {
	if !s.compact {
		return nil, normalErrorf(opDiscs, ErrNonCompact, "infinitely many triangles")
	}
	if s.coords.HasOctagons() {
		for tet := 0; tet < s.tri.Size(); tet++ {
			for o := 0; o < 3; o++ {
				if !s.Octs(tet, o).IsZero() {
					return nil, normalErrorf(opDiscs, ErrNotImplemented, "octagon in tetrahedron %d", tet)
				}
			}
		}
	}
	g := &discGraph{s: s}
	total := 0
	add := func(d discType, n int64) error {
		if n == 0 {
			return nil
		}
		if n > maxDiscs || total+int(n) > maxDiscs {
			return normalErrorf(opDiscs, ErrTooLarge, "more than %d discs", maxDiscs)
		}
		g.types = append(g.types, d)
		g.starts = append(g.starts, total)
		total += int(n)
		return nil
	}
	for tet := 0; tet < s.tri.Size(); tet++ {
		for v := 0; v < 4; v++ {
			n, ok := s.Triangles(tet, v).Int64()
			if !ok {
				return nil, normalErrorf(opDiscs, ErrTooLarge, "triangle count %s", s.Triangles(tet, v))
			}
			if err := add(discType{tet: tet, kind: triangleDisc, typ: v}, n); err != nil {
				return nil, err
			}
		}
		for q := 0; q < 3; q++ {
			n, ok := s.Quads(tet, q).Int64()
			if !ok {
				return nil, normalErrorf(opDiscs, ErrTooLarge, "quad count %s", s.Quads(tet, q))
			}
			if err := add(discType{tet: tet, kind: quadDisc, typ: q}, n); err != nil {
				return nil, err
			}
		}
	}
	g.starts = append(g.starts, total)
	return g, nil
}

func (g *discGraph) Order() int { return g.starts[len(g.starts)-1] }

// decode returns the disc type and copy number of node v.
func (g *discGraph) decode(v int) (discType, int) {
	i := sort.Search(len(g.types), func(i int) bool { return g.starts[i+1] > v })
	return g.types[i], v - g.starts[i]
}

// node returns the node of the given copy of a disc type.
func (g *discGraph) node(d discType, copyNum int) int {
	i := sort.Search(len(g.types), func(i int) bool { return !typeLess(g.types[i], d) })
	if i == len(g.types) || g.types[i] != d {
		panic("normal: disc type missing from graph")
	}
	return g.starts[i] + copyNum
}

func typeLess(a, b discType) bool {
	if a.tet != b.tet {
		return a.tet < b.tet
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.typ < b.typ
}

func (g *discGraph) count(tet int, kind discKind, typ int) int {
	var x int64
	if kind == triangleDisc {
		x, _ = g.s.Triangles(tet, typ).Int64()
	} else {
		x, _ = g.s.Quads(tet, typ).Int64()
	}
	return int(x)
}

// position returns how far out from corner a.w the given disc copy meets
// face a.f, counting from zero.
func (g *discGraph) position(d discType, copyNum int, a arc) int {
	if d.kind == triangleDisc {
		return copyNum
	}
	t := g.count(d.tet, triangleDisc, a.w)
	if onVertexZeroSide(d.typ, a.w) {
		return t + copyNum
	}
	return t + g.count(d.tet, quadDisc, d.typ) - 1 - copyNum
}

// discAt returns the disc meeting face f of tet at position p from corner w.
func (g *discGraph) discAt(tet, f, w, p int) (discType, int) {
	t := g.count(tet, triangleDisc, w)
	if p < t {
		return discType{tet: tet, kind: triangleDisc, typ: w}, p
	}
	q := quadSeparating[w][f]
	n := g.count(tet, quadDisc, q)
	k := p - t
	if k >= n {
		panic("normal: arcs do not match across a face")
	}
	if onVertexZeroSide(q, w) {
		return discType{tet: tet, kind: quadDisc, typ: q}, k
	}
	return discType{tet: tet, kind: quadDisc, typ: q}, n - 1 - k
}

// across returns the disc and arc on the other side of arc a of the given
// disc copy, or ok=false if a lies on the boundary.
func (g *discGraph) across(d discType, copyNum int, a arc) (od discType, ocopy int, oa arc, gl perm.Perm, ok bool) {
	s := g.s.tri.Simplex(d.tet)
	adj := s.Adjacent(a.f)
	if adj == nil {
		return discType{}, 0, arc{}, perm.Perm{}, false
	}
	gl = s.Gluing(a.f)
	oa = arc{f: gl.Image(a.f), w: gl.Image(a.w)}
	od, ocopy = g.discAt(adj.Index(), oa.f, oa.w, g.position(d, copyNum, a))
	return od, ocopy, oa, gl, true
}

func (g *discGraph) Arcs(v int) []bfs.Arc {
	d, c := g.decode(v)
	as := arcsOf(d.kind, d.typ)
	out := make([]bfs.Arc, 0, len(as))
	for i, a := range as {
		od, oc, _, _, ok := g.across(d, c, a)
		if !ok {
			continue
		}
		out = append(out, bfs.Arc{To: g.node(od, oc), Port: i})
	}
	return out
}

// discProps caches the disc-level properties of a surface.
type discProps struct {
	components int
	twoSided   bool
	orientable bool
	err        error
}

// discProperties walks the disc graph once, propagating a transverse
// direction and a local orientation from each component's first disc
// along a spanning forest, then checks every arc for consistency.
func (s *Surface) discProperties() discProps {
	s.discOnce.Do(func() {
		g, err := newDiscGraph(s)
		if err != nil {
			s.disc.err = err
			return
		}
		if g.Order() == 0 {
			s.disc = discProps{twoSided: true, orientable: true}
			return
		}
		_, count, res, err := bfs.Components(g)
		if err != nil {
			s.disc.err = err
			return
		}
		side := make([]int8, g.Order())
		orient := make([]int8, g.Order())
		for _, v := range res.Order {
			p := res.Parent[v]
			if p < 0 {
				side[v], orient[v] = 1, 1
				continue
			}
			ds, do := arcSigns(g, p, res.ParentPort[v])
			side[v], orient[v] = side[p]*ds, orient[p]*do
		}
		props := discProps{components: count, twoSided: true, orientable: true}
		for v := 0; v < g.Order(); v++ {
			for _, a := range g.Arcs(v) {
				ds, do := arcSigns(g, v, a.Port)
				if side[a.To] != side[v]*ds {
					props.twoSided = false
				}
				if orient[a.To] != orient[v]*do {
					props.orientable = false
				}
			}
		}
		s.disc = props
	})
	return s.disc
}

// arcSigns compares the canonical choices of the discs on either side of
// port i of node v. ds is +1 when their canonical normals agree across the
// arc; do is +1 when their canonical orientations induce opposite
// directions on it, as an orientation of the surface requires.
func arcSigns(g *discGraph, v, i int) (ds, do int8) {
	d, c := g.decode(v)
	a := arcsOf(d.kind, d.typ)[i]
	od, _, oa, gl, ok := g.across(d, c, a)
	if !ok {
		panic("normal: boundary arc has no neighbour")
	}
	ds, do = 1, 1
	if normalTowardsCorner(d.kind, d.typ, a) != normalTowardsCorner(od.kind, od.typ, oa) {
		ds = -1
	}
	x, _ := canonicalArc(d.kind, d.typ, a)
	ox, _ := canonicalArc(od.kind, od.typ, oa)
	if ox == gl.Image(x) {
		do = -1
	}
	return ds, do
}

// CountComponents returns the number of connected components.
func (s *Surface) CountComponents() (int, error) {
	p := s.discProperties()
	return p.components, p.err
}

// IsConnected reports whether the surface has exactly one component.
func (s *Surface) IsConnected() (bool, error) {
	p := s.discProperties()
	return p.components == 1, p.err
}

// IsTwoSided reports whether every component has a consistent transverse
// direction.
func (s *Surface) IsTwoSided() (bool, error) {
	p := s.discProperties()
	return p.twoSided, p.err
}

// IsOrientable reports whether every component is orientable.
func (s *Surface) IsOrientable() (bool, error) {
	p := s.discProperties()
	return p.orientable, p.err
}

// Triangulate returns the surface as a 2-dimensional triangulation: one
// triangle per triangular disc and two per quad. A quad keeping {a,b} and
// {c,d} together is split along the diagonal from its corner on edge ac to
// its corner on edge bd.
func (s *Surface) Triangulate() (*triangulation.Triangulation, error) {
	g, err := newDiscGraph(s)
	if err != nil {
		return nil, err
	}
	out, err := triangulation.New(2)
	if err != nil {
		return nil, err
	}
	type piece struct {
		simp    *triangulation.Simplex
		corners [3][2]int
	}
	pieces := make([][]piece, g.Order())
	for v := 0; v < g.Order(); v++ {
		d, _ := g.decode(v)
		ce := cornerEdges(d.kind, d.typ)
		if d.kind == triangleDisc {
			pieces[v] = []piece{{out.NewSimplex(), [3][2]int{ce[0], ce[1], ce[2]}}}
			continue
		}
		a := piece{out.NewSimplex(), [3][2]int{ce[0], ce[1], ce[2]}}
		b := piece{out.NewSimplex(), [3][2]int{ce[0], ce[2], ce[3]}}
		if err := a.simp.Join(1, b.simp, diagonalGluing); err != nil {
			return nil, normalErrorf(opTriangul, err, "quad diagonal")
		}
		pieces[v] = []piece{a, b}
	}

	label := func(p piece, u, w int) int {
		for i, c := range p.corners {
			if (c[0] == u && c[1] == w) || (c[0] == w && c[1] == u) {
				return i
			}
		}
		return -1
	}
	find := func(v, w, x, y int) (piece, int, int) {
		for _, p := range pieces[v] {
			lx, ly := label(p, w, x), label(p, w, y)
			if lx >= 0 && ly >= 0 {
				return p, lx, ly
			}
		}
		panic("normal: arc missing from disc pieces")
	}

	for v := 0; v < g.Order(); v++ {
		d, c := g.decode(v)
		for _, a := range arcsOf(d.kind, d.typ) {
			od, oc, oa, gl, ok := g.across(d, c, a)
			if !ok {
				continue
			}
			x, y := faceOthers(a.f, a.w)
			p, lx, ly := find(v, a.w, x, y)
			facet := 3 - lx - ly
			if p.simp.Adjacent(facet) != nil {
				continue
			}
			q, qx, qy := find(g.node(od, oc), oa.w, gl.Image(x), gl.Image(y))
			img := make([]int, 3)
			img[lx], img[ly], img[facet] = qx, qy, 3-qx-qy
			if err := p.simp.Join(facet, q.simp, perm.Of(img...)); err != nil {
				return nil, normalErrorf(opTriangul, err, "arc on face %d of tetrahedron %d", a.f, d.tet)
			}
		}
	}
	return out, nil
}
