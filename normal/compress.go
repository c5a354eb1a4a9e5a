package normal

import (
	"context"

	"github.com/katalvlaran/trimanifold/triangulation"
)

// IsCompressingDisc reports whether s is a properly embedded disc whose
// boundary does not bound a disc in the boundary of the triangulation.
func (s *Surface) IsCompressingDisc() (bool, error) {
	if !s.compact {
		return false, normalErrorf(opCompress, ErrNonCompact, "infinitely many triangles")
	}
	if !s.HasRealBoundary() {
		return false, nil
	}
	chi, err := s.EulerChar()
	if err != nil {
		return false, err
	}
	if chi.CmpInt64(1) != 0 {
		return false, nil
	}
	connected, err := s.IsConnected()
	if err != nil || !connected {
		return false, err
	}
	return boundaryCurveEssential(s)
}

// HasCompressingDisc reports whether the real boundary of t compresses. The
// standard vertex surfaces are searched for a compressing disc; one exists
// among them whenever the boundary compresses at all. Triangulations with
// only sphere boundary components answer false at once. A cancelled search
// answers false.
func HasCompressingDisc(ctx context.Context, t *triangulation.Triangulation, opts ...Option) (bool, error) {
	if err := checkTriangulation(opCompress, t, Standard); err != nil {
		return false, err
	}
	if !t.IsValid() {
		return false, normalErrorf(opCompress, ErrInvalidArgument, "triangulation is not valid")
	}
	if !compressibleBoundary(t) {
		return false, nil
	}
	found, _, err := searchCompressingDisc(ctx, t, opts...)
	return found, err
}

// searchCompressingDisc enumerates the standard vertex surfaces of t and
// looks for a compressing disc among them. decided is false when the
// enumeration was cancelled before finding one.
func searchCompressingDisc(ctx context.Context, t *triangulation.Triangulation, opts ...Option) (found, decided bool, err error) {
	list, err := Enumerate(ctx, t, Standard, Vertex|EmbeddedOnly, AlgDD, opts...)
	if err != nil {
		return false, false, err
	}
	for _, s := range list.surfaces {
		ok, err := s.IsCompressingDisc()
		if err != nil {
			return false, false, err
		}
		if ok {
			return true, true, nil
		}
	}
	return false, !list.cancelled, nil
}

// boundaryCurveEssential cuts the real boundary of the triangulation along
// the boundary curve of the disc s and inspects the pieces. The curve is
// trivial exactly when it separates its boundary component and one side
// is a disc.
//
// Each boundary facet is cut by the arcs of s into regions: near corner w
// a tip followed by bands between consecutive arcs, and one central region.
// Regions are merged across boundary edges segment by segment, and each
// piece gets χ = V − E + F from its boundary vertices, edge segments and
// regions.
func boundaryCurveEssential(s *Surface) (bool, error) {
	t := s.tri
	type facet struct {
		simp *triangulation.Simplex
		f    int
		arcs [4]int
		base int
		off  [4]int
	}
	var facets []facet
	index := make(map[[2]int]int)
	regions := 0
	for _, simp := range t.Simplices() {
		for f := 0; f < 4; f++ {
			if simp.Adjacent(f) != nil {
				continue
			}
			fc := facet{simp: simp, f: f, base: regions}
			regions++
			for w := 0; w < 4; w++ {
				if w == f {
					continue
				}
				n, ok := s.arcs(simp.Index(), f, w).Int64()
				if !ok || n > maxDiscs {
					return false, normalErrorf(opCompress, ErrTooLarge, "arc count at tetrahedron %d", simp.Index())
				}
				fc.arcs[w] = int(n)
				fc.off[w] = regions
				regions += int(n)
			}
			index[[2]int{simp.Index(), f}] = len(facets)
			facets = append(facets, fc)
		}
	}

	// regionAt is the region j steps out from corner w: the tip at j = 0,
	// bands after it, and the centre once the arcs run out.
	regionAt := func(fc *facet, w, j int) int {
		if j < fc.arcs[w] {
			return fc.off[w] + j
		}
		return fc.base
	}
	segment := func(fc *facet, u, w, k int) int {
		if k <= fc.arcs[u] {
			return regionAt(fc, u, k)
		}
		return regionAt(fc, w, fc.arcs[u]+fc.arcs[w]-k)
	}

	uf := newUnionFind(regions)
	limit := 6*t.Size() + 2
	for i := range facets {
		fc := &facets[i]
		for u := 0; u < 4; u++ {
			for w := u + 1; w < 4; w++ {
				if u == fc.f || w == fc.f {
					continue
				}
				simp, f, pu, pw := boundaryNeighbour(fc.simp, fc.f, u, w, limit)
				other := &facets[index[[2]int{simp.Index(), f}]]
				for k := 0; k <= fc.arcs[u]+fc.arcs[w]; k++ {
					uf.union(segment(fc, u, w, k), segment(other, pu, pw, k))
				}
			}
		}
	}

	type piece struct {
		v, e2, f int
		touched  bool
	}
	pieces := make(map[int]*piece)
	get := func(r int) *piece {
		root := uf.find(r)
		p, ok := pieces[root]
		if !ok {
			p = &piece{}
			pieces[root] = p
		}
		return p
	}
	for r := 0; r < regions; r++ {
		get(r).f++
	}
	seenVertex := make(map[int]bool)
	for i := range facets {
		fc := &facets[i]
		cut := false
		for w := 0; w < 4; w++ {
			if w == fc.f {
				continue
			}
			if fc.arcs[w] > 0 {
				cut = true
				for j := 0; j < fc.arcs[w]; j++ {
					get(fc.off[w] + j).touched = true
				}
			}
			if vi := fc.simp.Vertex(w).Index(); !seenVertex[vi] {
				seenVertex[vi] = true
				get(regionAt(fc, w, 0)).v++
			}
			for u := 0; u < w; u++ {
				if u == fc.f {
					continue
				}
				for k := 0; k <= fc.arcs[u]+fc.arcs[w]; k++ {
					get(segment(fc, u, w, k)).e2++
				}
			}
		}
		if cut {
			get(fc.base).touched = true
		}
	}

	realComponents := 0
	for _, bc := range t.BoundaryComponents() {
		if bc.IsReal() {
			realComponents++
		}
	}
	if len(pieces) == realComponents {
		return true, nil
	}
	for _, p := range pieces {
		if p.touched && 2*(p.v+p.f)-p.e2 == 2 {
			return false, nil
		}
	}
	return true, nil
}

// boundaryNeighbour walks around the edge uw of boundary facet f of simp,
// through the interior, to the other boundary facet containing it. It
// returns that facet and the images of u and w.
func boundaryNeighbour(simp *triangulation.Simplex, f, u, w, limit int) (*triangulation.Simplex, int, int, int) {
	x := 6 - f - u - w
	cur, cu, cw, exit, in := simp, u, w, x, f
	for i := 0; i < limit; i++ {
		next := cur.Adjacent(exit)
		if next == nil {
			return cur, exit, cu, cw
		}
		g := cur.Gluing(exit)
		cur, cu, cw, exit, in = next, g.Image(cu), g.Image(cw), g.Image(in), g.Image(exit)
	}
	panic("normal: boundary edge walk did not terminate")
}

// unionFind is a disjoint-set forest with path halving.
type unionFind []int

func newUnionFind(n int) unionFind {
	uf := make(unionFind, n)
	for i := range uf {
		uf[i] = i
	}
	return uf
}

func (uf unionFind) find(x int) int {
	for uf[x] != x {
		uf[x] = uf[uf[x]]
		x = uf[x]
	}
	return x
}

func (uf unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf[ra] = rb
	}
}
