package normal

import (
	"slices"

	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

const (
	cutApex   = -2
	cutCorner = -1
)

// cutPoint is a vertex of the cut triangulation as seen from one
// tetrahedron: a corner (edge cutCorner, pos the vertex), a point on an edge
// (pos counted from the lower numbered end), or the apex of a coned region
// (edge cutApex, pos the region).
type cutPoint struct{ edge, pos int }

func cmpPoint(a, b cutPoint) int {
	if a.edge != b.edge {
		return a.edge - b.edge
	}
	return a.pos - b.pos
}

type keyKind uint8

const (
	keyDisc keyKind = iota
	keyFace
	keyInner
)

// cutKey names a triangle of the cut triangulation. Face keys use the
// labelling of the original triangle, so both tetrahedra on either side of
// it produce the same key.
type cutKey struct {
	kind keyKind
	idx  int
	pts  [3]cutPoint
}

// cutPolygon is a face of a region: part of tetrahedron face face, or a
// normal disc when face is -1. Points are in cyclic order.
type cutPolygon struct {
	face int
	pts  []cutPoint
}

type cutPiece struct {
	simp   *triangulation.Simplex
	keys   [4]cutKey
	labels [4][4]cutPoint // labels[f][v] names vertex v in the frame of keys[f]
}

type facetRef struct{ piece, facet int }

// cutTet describes the discs of one tetrahedron: n[v] triangles at each
// vertex and m quads of type quad.
type cutTet struct {
	simp *triangulation.Simplex
	n    [4]int
	quad int
	m    int
}

func (ct *cutTet) onSideA(v int) bool {
	return v == quadDefn[ct.quad][0] || v == quadDefn[ct.quad][1]
}

func (ct *cutTet) crosses(v, u int) bool {
	return ct.m > 0 && quadPartner[ct.quad][v] != u
}

func (ct *cutTet) weight(v, u int) int {
	w := ct.n[v] + ct.n[u]
	if ct.crosses(v, u) {
		w += ct.m
	}
	return w
}

// point is the k-th disc point on edge vu counting from v.
func (ct *cutTet) point(v, u, k int) cutPoint {
	e := triangulation.FaceNumber(3, 1, v, u)
	if v < u {
		return cutPoint{e, k}
	}
	return cutPoint{e, ct.weight(v, u) - 1 - k}
}

func (ct *cutTet) corner(v int) cutPoint { return cutPoint{cutCorner, v} }

// cornerRun is the stretch of a face polygon near corner x, walking from
// edge x-from to edge x-to.
func (ct *cutTet) cornerRun(x, from, to int) []cutPoint {
	if ct.n[x] == 0 {
		return []cutPoint{ct.corner(x)}
	}
	return []cutPoint{ct.point(x, from, ct.n[x]-1), ct.point(x, to, ct.n[x]-1)}
}

// quadPoint is where quad j, counted from side A, meets edge xy.
func (ct *cutTet) quadPoint(j, x, y int) cutPoint {
	if !ct.onSideA(x) {
		x, y = y, x
	}
	return ct.point(x, y, ct.n[x]+j)
}

func (ct *cutTet) triDisc(v, k int) cutPolygon {
	var pts []cutPoint
	for u := 0; u < 4; u++ {
		if u != v {
			pts = append(pts, ct.point(v, u, k))
		}
	}
	return cutPolygon{face: -1, pts: pts}
}

func (ct *cutTet) quadDisc(j int) cutPolygon {
	d := quadDefn[ct.quad]
	return cutPolygon{face: -1, pts: []cutPoint{
		ct.quadPoint(j, d[0], d[2]), ct.quadPoint(j, d[0], d[3]),
		ct.quadPoint(j, d[1], d[3]), ct.quadPoint(j, d[1], d[2]),
	}}
}

// regions lists the pieces the discs cut the tetrahedron into, each as the
// polygons bounding it.
func (ct *cutTet) regions() [][]cutPolygon {
	var out [][]cutPolygon
	for v := 0; v < 4; v++ {
		if ct.n[v] == 0 {
			continue
		}
		tip := []cutPolygon{ct.triDisc(v, 0)}
		for f := 0; f < 4; f++ {
			if f == v {
				continue
			}
			u, w := faceOthers(f, v)
			tip = append(tip, cutPolygon{face: f, pts: []cutPoint{ct.corner(v), ct.point(v, u, 0), ct.point(v, w, 0)}})
		}
		out = append(out, tip)
		for k := 1; k < ct.n[v]; k++ {
			layer := []cutPolygon{ct.triDisc(v, k-1), ct.triDisc(v, k)}
			for f := 0; f < 4; f++ {
				if f == v {
					continue
				}
				u, w := faceOthers(f, v)
				layer = append(layer, cutPolygon{face: f, pts: []cutPoint{
					ct.point(v, u, k-1), ct.point(v, u, k), ct.point(v, w, k), ct.point(v, w, k-1),
				}})
			}
			out = append(out, layer)
		}
	}
	if ct.m == 0 {
		var mid []cutPolygon
		for v := 0; v < 4; v++ {
			if ct.n[v] > 0 {
				mid = append(mid, ct.triDisc(v, ct.n[v]-1))
			}
		}
		for f := 0; f < 4; f++ {
			var xs []int
			for v := 0; v < 4; v++ {
				if v != f {
					xs = append(xs, v)
				}
			}
			var pts []cutPoint
			for i := 0; i < 3; i++ {
				pts = append(pts, ct.cornerRun(xs[i], xs[(i+2)%3], xs[(i+1)%3])...)
			}
			mid = append(mid, cutPolygon{face: f, pts: pts})
		}
		return append(out, mid)
	}
	d := quadDefn[ct.quad]
	out = append(out, ct.side(d[0], d[1], d[2], d[3], 0), ct.side(d[2], d[3], d[0], d[1], ct.m-1))
	for j := 1; j < ct.m; j++ {
		layer := []cutPolygon{ct.quadDisc(j - 1), ct.quadDisc(j)}
		for i, c := range []int{d[2], d[3]} {
			y := d[3-i]
			layer = append(layer, cutPolygon{face: c, pts: []cutPoint{
				ct.quadPoint(j-1, d[0], y), ct.quadPoint(j, d[0], y), ct.quadPoint(j, d[1], y), ct.quadPoint(j-1, d[1], y),
			}})
		}
		for i, a := range []int{d[0], d[1]} {
			x := d[1-i]
			layer = append(layer, cutPolygon{face: a, pts: []cutPoint{
				ct.quadPoint(j-1, x, d[2]), ct.quadPoint(j, x, d[2]), ct.quadPoint(j, x, d[3]), ct.quadPoint(j-1, x, d[3]),
			}})
		}
		out = append(out, layer)
	}
	return out
}

// side is the region between the pair s0,s1 and the nearest quad j.
func (ct *cutTet) side(s0, s1, o0, o1, j int) []cutPolygon {
	polys := []cutPolygon{ct.quadDisc(j)}
	for _, s := range []int{s0, s1} {
		if ct.n[s] > 0 {
			polys = append(polys, ct.triDisc(s, ct.n[s]-1))
		}
	}
	for _, o := range []int{o0, o1} {
		y := o0 + o1 - o
		pts := append(ct.cornerRun(s0, y, s1), ct.cornerRun(s1, s0, y)...)
		pts = append(pts, ct.quadPoint(j, s1, y), ct.quadPoint(j, s0, y))
		polys = append(polys, cutPolygon{face: o, pts: pts})
	}
	for _, s := range []int{s0, s1} {
		x := s0 + s1 - s
		pts := append(ct.cornerRun(x, o1, o0), ct.quadPoint(j, x, o0), ct.quadPoint(j, x, o1))
		polys = append(polys, cutPolygon{face: s, pts: pts})
	}
	return polys
}

// intrinsic renames a point of face f in the labelling of that triangle.
func (ct *cutTet) intrinsic(f int, p cutPoint) cutPoint {
	m := ct.simp.FaceMapping(2, f)
	if p.edge == cutCorner {
		return cutPoint{cutCorner, m.Pre(p.pos)}
	}
	ends := triangulation.FaceVertices(3, 1, p.edge)
	i, j := m.Pre(ends[0]), m.Pre(ends[1])
	pos := p.pos
	if i > j {
		pos = ct.weight(ends[0], ends[1]) - 1 - pos
		i, j = j, i
	}
	return cutPoint{triangulation.FaceNumber(2, 1, i, j), pos}
}

type cutter struct {
	tet     *cutTet
	out     *triangulation.Triangulation
	pieces  []cutPiece
	regions int
	open    map[cutKey]facetRef
	closed  map[cutKey]bool
}

// frame returns the labels a polygon's points carry in its key.
func (c *cutter) frame(poly cutPolygon) []cutPoint {
	if poly.face < 0 {
		return poly.pts
	}
	out := make([]cutPoint, len(poly.pts))
	for i, p := range poly.pts {
		out[i] = c.tet.intrinsic(poly.face, p)
	}
	return out
}

func (c *cutter) polyKey(poly cutPolygon, labels []cutPoint) cutKey {
	k := cutKey{kind: keyDisc}
	if poly.face >= 0 {
		k = cutKey{kind: keyFace, idx: c.tet.simp.FaceIndex(2, poly.face)}
	}
	copy(k.pts[:], labels)
	slices.SortFunc(k.pts[:], cmpPoint)
	return k
}

func (c *cutter) addRegion(polys []cutPolygon) error {
	tetrahedral := len(polys) == 4
	for _, p := range polys {
		tetrahedral = tetrahedral && len(p.pts) == 3
	}
	if tetrahedral {
		return c.addTetrahedron(polys)
	}
	region := c.regions
	c.regions++
	apex := cutPoint{cutApex, region}
	for _, poly := range polys {
		labels := c.frame(poly)
		start := 0
		for i := range labels {
			if cmpPoint(labels[i], labels[start]) < 0 {
				start = i
			}
		}
		pts := append(slices.Clone(poly.pts[start:]), poly.pts[:start]...)
		labels = append(slices.Clone(labels[start:]), labels[:start]...)
		for i := 1; i+1 < len(pts); i++ {
			var pc cutPiece
			verts := [4]cutPoint{apex, pts[0], pts[i], pts[i+1]}
			pc.keys[0] = c.polyKey(poly, []cutPoint{labels[0], labels[i], labels[i+1]})
			pc.labels[0] = [4]cutPoint{{}, labels[0], labels[i], labels[i+1]}
			for f := 1; f < 4; f++ {
				pc.labels[f] = verts
				k := cutKey{kind: keyInner, idx: region}
				n := 0
				for v := 0; v < 4; v++ {
					if v != f {
						k.pts[n] = verts[v]
						n++
					}
				}
				slices.SortFunc(k.pts[:], cmpPoint)
				pc.keys[f] = k
			}
			if err := c.place(pc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *cutter) addTetrahedron(polys []cutPolygon) error {
	var verts []cutPoint
	for _, p := range polys {
		for _, x := range p.pts {
			if !slices.Contains(verts, x) {
				verts = append(verts, x)
			}
		}
	}
	if len(verts) != 4 {
		return normalErrorf(opCut, ErrInvalidArgument, "tetrahedron %d: region with %d corners", c.tet.simp.Index(), len(verts))
	}
	var pc cutPiece
	for _, poly := range polys {
		f := -1
		for v, x := range verts {
			if !slices.Contains(poly.pts, x) {
				f = v
			}
		}
		labels := c.frame(poly)
		var frame []cutPoint
		for v, x := range verts {
			if v == f {
				continue
			}
			l := labels[slices.Index(poly.pts, x)]
			pc.labels[f][v] = l
			frame = append(frame, l)
		}
		pc.keys[f] = c.polyKey(poly, frame)
	}
	return c.place(pc)
}

// place adds the piece and glues each facet whose key has been seen once.
func (c *cutter) place(pc cutPiece) error {
	pc.simp = c.out.NewSimplex()
	c.pieces = append(c.pieces, pc)
	idx := len(c.pieces) - 1
	for f := 0; f < 4; f++ {
		k := pc.keys[f]
		if k.kind == keyDisc {
			continue
		}
		if c.closed[k] {
			return normalErrorf(opCut, ErrInvalidArgument, "triangle %v met three times", k)
		}
		prev, ok := c.open[k]
		if !ok {
			c.open[k] = facetRef{idx, f}
			continue
		}
		delete(c.open, k)
		c.closed[k] = true
		a := c.pieces[prev.piece]
		var img [4]int
		img[prev.facet] = f
		for v := 0; v < 4; v++ {
			if v == prev.facet {
				continue
			}
			w := -1
			for x := 0; x < 4; x++ {
				if x != f && pc.labels[f][x] == a.labels[prev.facet][v] {
					w = x
				}
			}
			if w < 0 {
				return normalErrorf(opCut, ErrInvalidArgument, "triangle %v has mismatched corners", k)
			}
			img[v] = w
		}
		if err := a.simp.Join(prev.facet, pc.simp, perm.Of(img[:]...)); err != nil {
			return err
		}
	}
	return nil
}

// Cut returns the triangulation obtained by cutting along the surface. Each
// tetrahedron is divided into the regions between its discs, each region
// is triangulated by coning its boundary from a new interior point, and
// the regions are glued back across the faces of the original
// triangulation but not across the surface.
func (s *Surface) Cut() (*triangulation.Triangulation, error) {
	if !s.compact {
		return nil, normalErrorf(opCut, ErrNonCompact, "infinitely many triangles")
	}
	out := triangulation.MustNew(3)
	c := &cutter{out: out, open: make(map[cutKey]facetRef), closed: make(map[cutKey]bool)}
	total := int64(0)
	for _, simp := range s.tri.Simplices() {
		tet := simp.Index()
		ct := &cutTet{simp: simp, quad: -1}
		for o := 0; o < 3; o++ {
			if !s.Octs(tet, o).IsZero() {
				return nil, normalErrorf(opCut, ErrNotImplemented, "octagon in tetrahedron %d", tet)
			}
		}
		for v := 0; v < 4; v++ {
			n, ok := s.Triangles(tet, v).Int64()
			total += n
			if !ok || total > maxDiscs {
				return nil, normalErrorf(opCut, ErrTooLarge, "more than %d discs", maxDiscs)
			}
			ct.n[v] = int(n)
		}
		for q := 0; q < 3; q++ {
			n, ok := s.Quads(tet, q).Int64()
			if ok && n == 0 {
				continue
			}
			total += n
			if !ok || total > maxDiscs {
				return nil, normalErrorf(opCut, ErrTooLarge, "more than %d discs", maxDiscs)
			}
			if ct.quad >= 0 {
				return nil, normalErrorf(opCut, ErrInvalidArgument, "two quad types in tetrahedron %d", tet)
			}
			ct.quad, ct.m = q, int(n)
		}
		c.tet = ct
		for _, r := range ct.regions() {
			if err := c.addRegion(r); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
