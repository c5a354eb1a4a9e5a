package triangulation

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/trimanifold/bfs"
	"github.com/katalvlaran/trimanifold/perm"
)

// skeleton is everything derived from the gluings. It is rebuilt from
// scratch after any change.
type skeleton struct {
	faces    [][]*Face
	faceIdx  [][][]int       // [simplex][k][face number]
	facePerm [][][]perm.Perm // [simplex][k][face number]

	components  []*Component
	simpComp    []int
	orientation []int
	tree        [][]bool // facet belongs to the spanning forest of the dual graph

	bfacets  []BoundaryFacet
	bfIdx    [][]int // [simplex][facet] -> index into bfacets, or -1
	badj     [][]bArc
	boundary []*BoundaryComponent

	valid      bool
	orientable bool
	ideal      bool
}

// bArc glues facet i of boundary facet b (numbered by b.Vertices) to facet
// g(i) of boundary facet to.
type bArc struct {
	to int
	g  perm.Perm
}

// skeleton returns the current skeleton, computing it if needed.
func (t *Triangulation) skeleton() *skeleton {
	t.skelMu.Lock()
	defer t.skelMu.Unlock()
	if t.skel == nil {
		t.skel = computeSkeleton(t)
	}
	return t.skel
}

func computeSkeleton(t *Triangulation) *skeleton {
	sk := &skeleton{valid: true, orientable: true}
	sk.computeComponents(t)
	for k := 0; k < t.dim; k++ {
		sk.computeFaces(t, k)
	}
	sk.computeBoundary(t)
	sk.computeLinks(t)
	return sk
}

func (sk *skeleton) computeComponents(t *Triangulation) {
	n := len(t.simplices)
	labels, count, res, err := bfs.Components(dualGraph{t})
	if err != nil {
		panic(fmt.Sprintf("triangulation: dual graph traversal: %v", err))
	}
	sk.simpComp = labels
	sk.components = make([]*Component, count)
	for i := range sk.components {
		sk.components[i] = &Component{index: i, orientable: true, valid: true, faces: make([][]*Face, t.dim)}
	}
	for _, s := range t.simplices {
		c := sk.components[labels[s.index]]
		c.simplices = append(c.simplices, s)
		for _, a := range s.adj {
			if a == nil {
				c.bdryFacets++
			}
		}
	}

	sk.orientation = make([]int, n)
	sk.tree = make([][]bool, n)
	for i := range sk.tree {
		sk.tree[i] = make([]bool, t.dim+1)
	}
	for _, v := range res.Order {
		p := res.Parent[v]
		if p < 0 {
			sk.orientation[v] = 1
			continue
		}
		f := res.ParentPort[v]
		g := t.simplices[p].gluing[f]
		sk.orientation[v] = -g.Sign() * sk.orientation[p]
		sk.tree[p][f] = true
		sk.tree[v][g.Image(f)] = true
	}
	for _, s := range t.simplices {
		for f, a := range s.adj {
			if a == nil {
				continue
			}
			if sk.orientation[a.index] != -s.gluing[f].Sign()*sk.orientation[s.index] {
				sk.orientable = false
				sk.components[labels[s.index]].orientable = false
			}
		}
	}
}

// computeFaces identifies the k-faces of all simplices by breadth-first
// search across gluings, carrying the vertex labelling of each face along.
func (sk *skeleton) computeFaces(t *Triangulation, k int) {
	d, n := t.dim, len(t.simplices)
	nf := FaceCount(d, k)
	if sk.faceIdx == nil {
		sk.faceIdx = make([][][]int, n)
		sk.facePerm = make([][][]perm.Perm, n)
		for i := 0; i < n; i++ {
			sk.faceIdx[i] = make([][]int, d)
			sk.facePerm[i] = make([][]perm.Perm, d)
		}
		sk.faces = make([][]*Face, d)
	}
	for i := 0; i < n; i++ {
		sk.faceIdx[i][k] = make([]int, nf)
		sk.facePerm[i][k] = make([]perm.Perm, nf)
		for j := range sk.faceIdx[i][k] {
			sk.faceIdx[i][k][j] = -1
		}
	}
	for _, s := range t.simplices {
		for num := 0; num < nf; num++ {
			if sk.faceIdx[s.index][k][num] >= 0 {
				continue
			}
			face := &Face{tri: t, subdim: k, index: len(sk.faces[k]), linkOrientable: true}
			start := Embedding{Simplex: s, Face: num, Vertices: FaceOrdering(d, k, num)}
			sk.faceIdx[s.index][k][num] = face.index
			sk.facePerm[s.index][k][num] = start.Vertices
			face.emb = append(face.emb, start)
			for q := 0; q < len(face.emb); q++ {
				e := face.emb[q]
				for j := 0; j <= d; j++ {
					if inHead(e.Vertices, k, j) {
						continue
					}
					a := e.Simplex.adj[j]
					if a == nil {
						face.boundary = true
						continue
					}
					p := e.Simplex.gluing[j].Compose(e.Vertices)
					num2 := faceOfHead(d, k, p)
					if sk.faceIdx[a.index][k][num2] >= 0 {
						if !sameHead(sk.facePerm[a.index][k][num2], p, k) {
							face.badIdent = true
						}
						continue
					}
					sk.faceIdx[a.index][k][num2] = face.index
					sk.facePerm[a.index][k][num2] = p
					face.emb = append(face.emb, Embedding{Simplex: a, Face: num2, Vertices: p})
				}
			}
			sort.Slice(face.emb, func(x, y int) bool {
				ex, ey := face.emb[x], face.emb[y]
				if ex.Simplex.index != ey.Simplex.index {
					return ex.Simplex.index < ey.Simplex.index
				}
				return ex.Face < ey.Face
			})
			face.comp = sk.components[sk.simpComp[s.index]]
			face.comp.faces[k] = append(face.comp.faces[k], face)
			if face.badIdent {
				sk.valid = false
				face.comp.valid = false
			}
			sk.faces[k] = append(sk.faces[k], face)
		}
	}
}

func (sk *skeleton) computeBoundary(t *Triangulation) {
	d := t.dim
	sk.bfIdx = make([][]int, len(t.simplices))
	for _, s := range t.simplices {
		sk.bfIdx[s.index] = make([]int, d+1)
		for f, a := range s.adj {
			sk.bfIdx[s.index][f] = -1
			if a == nil {
				sk.bfIdx[s.index][f] = len(sk.bfacets)
				sk.bfacets = append(sk.bfacets, BoundaryFacet{Simplex: s, Facet: f, Vertices: FaceOrdering(d, d-1, f)})
			}
		}
	}
	sk.badj = make([][]bArc, len(sk.bfacets))
	for b := range sk.bfacets {
		sk.badj[b] = make([]bArc, d)
		for i := 0; i < d; i++ {
			sk.badj[b][i] = sk.walkRidge(t, b, i)
		}
	}
	labels, count, _, err := bfs.Components(boundaryGraph{sk})
	if err != nil {
		panic(fmt.Sprintf("triangulation: boundary traversal: %v", err))
	}
	for c := 0; c < count; c++ {
		sk.boundary = append(sk.boundary, &BoundaryComponent{tri: t, index: c, faces: make([][]*Face, d), orientable: true})
	}
	for b, l := range labels {
		sk.boundary[l].facets = append(sk.boundary[l].facets, b)
	}
	for _, bc := range sk.boundary {
		first := sk.bfacets[bc.facets[0]]
		bc.comp = sk.components[sk.simpComp[first.Simplex.index]]
		bc.comp.boundary = append(bc.comp.boundary, bc)
		seen := make(map[*Face]bool)
		for _, b := range bc.facets {
			bf := sk.bfacets[b]
			for k := 0; k < d; k++ {
				for num := 0; num < FaceCount(d, k); num++ {
					if !faceInFacet(d, k, num, bf.Facet) {
						continue
					}
					face := sk.faces[k][sk.faceIdx[bf.Simplex.index][k][num]]
					if seen[face] {
						continue
					}
					seen[face] = true
					if face.bc == nil {
						face.bc = bc
					}
					bc.faces[k] = append(bc.faces[k], face)
				}
			}
		}
		if d >= 3 {
			bc.built, bc.builtMap = sk.buildBoundary(t, bc.facets)
			bc.euler = bc.built.EulerCharTri()
			bc.orientable = bc.built.IsOrientable()
		} else {
			bc.builtErr = triErrorf(opBuildBound, ErrNotApplicable, "the boundary of a 2-manifold is 1-dimensional")
		}
	}
}

// walkRidge follows the ridge of boundary facet b opposite its vertex i
// through the interior until it emerges on another boundary facet.
func (sk *skeleton) walkRidge(t *Triangulation, b, i int) bArc {
	d := t.dim
	bf := sk.bfacets[b]
	x, y := bf.Facet, bf.Vertices.Image(i)
	cur, acc := bf.Simplex, perm.Identity(d+1)
	limit := len(t.simplices)*(d+1)*(d+1) + 1
	for step := 0; step < limit; step++ {
		exit := acc.Image(y)
		next := cur.adj[exit]
		if next == nil {
			j := sk.bfIdx[cur.index][exit]
			other := sk.bfacets[j].Vertices
			img := make([]int, d)
			for a := 0; a < d; a++ {
				v := acc.Image(x)
				if a != i {
					v = acc.Image(bf.Vertices.Image(a))
				}
				img[a] = other.Pre(v)
			}
			g, err := perm.FromImages(img...)
			if err != nil {
				panic(fmt.Sprintf("triangulation: ridge walk produced %v: %v", img, err))
			}
			return bArc{to: j, g: g}
		}
		acc = cur.gluing[exit].Compose(acc)
		cur = next
		x, y = y, x
	}
	panic("triangulation: ridge walk did not terminate")
}

// boundaryGraph views boundary facets as a port graph for package bfs.
type boundaryGraph struct{ sk *skeleton }

func (g boundaryGraph) Order() int { return len(g.sk.bfacets) }

func (g boundaryGraph) Arcs(v int) []bfs.Arc {
	out := make([]bfs.Arc, len(g.sk.badj[v]))
	for i, a := range g.sk.badj[v] {
		out[i] = bfs.Arc{To: a.to, Port: i}
	}
	return out
}

// buildBoundary triangulates the given boundary facets as a closed
// (dim−1)-manifold. Simplex i of the result is facets[i], with vertex a
// corresponding to vertex Vertices(a) of the original simplex.
func (sk *skeleton) buildBoundary(t *Triangulation, facets []int) (*Triangulation, []BoundaryFacet) {
	u := &Triangulation{dim: t.dim - 1}
	pos := make(map[int]int, len(facets))
	for i, b := range facets {
		pos[b] = i
		u.newSimplex()
	}
	m := make([]BoundaryFacet, len(facets))
	for i, b := range facets {
		m[i] = sk.bfacets[b]
		for a, arc := range sk.badj[b] {
			if u.simplices[i].adj[a] != nil {
				continue
			}
			u.simplices[i].join(a, u.simplices[pos[arc.to]], arc.g)
		}
	}
	return u, m
}

func (sk *skeleton) computeLinks(t *Triangulation) {
	d := t.dim
	for k := 0; k < d; k++ {
		if d-k-1 < 2 {
			continue
		}
		for _, f := range sk.faces[k] {
			sk.classifyLink(t, f)
			if !f.IsValid() {
				sk.valid = false
				f.comp.valid = false
			}
			if f.ideal {
				sk.ideal = true
				f.comp.ideal = true
				bc := &BoundaryComponent{
					tri:        t,
					index:      len(sk.boundary),
					comp:       f.comp,
					vertex:     f,
					faces:      make([][]*Face, d),
					euler:      f.linkEuler,
					orientable: f.linkOrientable,
				}
				bc.faces[0] = []*Face{f}
				bc.built = f.linkTri
				f.bc = bc
				f.comp.boundary = append(f.comp.boundary, bc)
				sk.boundary = append(sk.boundary, bc)
			}
		}
	}
}

// classifyLink builds the link of f and decides whether it is a sphere, a
// ball, or something that makes f ideal or invalid. Links of dim-4 vertices
// are recognised up to homology: a valid, non-ideal link with trivial H1 and
// no boundary, or one sphere boundary component, counts as a sphere or ball.
func (sk *skeleton) classifyLink(t *Triangulation, f *Face) {
	link := sk.buildLink(t, f)
	f.linkTri = link
	f.linkOrientable = link.IsOrientable()
	closed := !link.HasBoundaryFacets()
	chi := link.EulerCharTri()
	f.linkEuler = chi

	if link.dim == 2 {
		sphere := closed && chi == 2
		disc := !closed && chi == 1
		if t.dim == 4 {
			f.badLink = !sphere && !disc
			return
		}
		switch {
		case sphere:
			f.link = LinkSphere
		case disc:
			f.link = LinkDisc
		case closed && chi == 0 && f.linkOrientable:
			f.link = LinkTorus
		case closed && chi == 0:
			f.link = LinkKleinBottle
		case closed:
			f.link = LinkNonStandardCusp
		default:
			f.link = LinkInvalid
		}
		f.ideal = closed && !sphere
		f.badLink = f.link == LinkInvalid
		return
	}

	// A 3-dimensional vertex link in a 4-manifold. Spheres and balls are
	// recognised up to homology.
	if !link.IsValid() || link.IsIdeal() {
		f.badLink = true
		return
	}
	h1 := link.HomologyH1()
	if closed {
		f.ideal = !h1.IsTrivial()
		return
	}
	bcs := link.BoundaryComponents()
	ball := len(bcs) == 1 && bcs[0].EulerChar() == 2 && h1.IsTrivial()
	f.badLink = !ball
}

// buildLink returns the link of f as a (dim−k−1)-dimensional triangulation
// with one simplex per embedding of f, in embedding order. Vertex a of link
// simplex i corresponds to vertex Vertices(k+1+a) of embedding i.
func (sk *skeleton) buildLink(t *Triangulation, f *Face) *Triangulation {
	d, k := t.dim, f.subdim
	ld := d - k - 1
	link := &Triangulation{dim: ld}
	pos := make(map[[2]int]int, len(f.emb))
	for i, e := range f.emb {
		pos[[2]int{e.Simplex.index, e.Face}] = i
		link.newSimplex()
	}
	img := make([]int, ld+1)
	for i, e := range f.emb {
		for a := 0; a <= ld; a++ {
			if link.simplices[i].adj[a] != nil {
				continue
			}
			j := e.Vertices.Image(k + 1 + a)
			next := e.Simplex.adj[j]
			if next == nil {
				continue
			}
			p := e.Simplex.gluing[j].Compose(e.Vertices)
			i2 := pos[[2]int{next.index, faceOfHead(d, k, p)}]
			h := f.emb[i2].Vertices.Inverse().Compose(p)
			for b := 0; b <= ld; b++ {
				img[b] = h.Image(b+k+1) - (k + 1)
			}
			g, err := perm.FromImages(img...)
			if err != nil {
				panic(fmt.Sprintf("triangulation: link gluing %v: %v", img, err))
			}
			link.simplices[i].join(a, link.simplices[i2], g)
		}
	}
	return link
}

// CountFaces returns the number of k-faces, 0 ≤ k ≤ dim. For k == dim this
// is Size.
func (t *Triangulation) CountFaces(k int) int {
	if k == t.dim {
		return len(t.simplices)
	}
	return len(t.skeleton().faces[k])
}

// Faces returns the k-faces for 0 ≤ k < dim.
func (t *Triangulation) Faces(k int) []*Face { return append([]*Face(nil), t.skeleton().faces[k]...) }

// Face returns k-face i.
func (t *Triangulation) Face(k, i int) *Face { return t.skeleton().faces[k][i] }

// Vertices returns the vertices.
func (t *Triangulation) Vertices() []*Face { return t.Faces(0) }

// Edges returns the edges.
func (t *Triangulation) Edges() []*Face { return t.Faces(1) }

// Triangles returns the triangles. The triangulation must have dimension
// at least 3.
func (t *Triangulation) Triangles() []*Face { return t.Faces(2) }

// FVector returns the number of faces of each dimension 0..dim.
func (t *Triangulation) FVector() []int {
	out := make([]int, t.dim+1)
	for k := range out {
		out[k] = t.CountFaces(k)
	}
	return out
}

// EulerCharTri returns the alternating sum of the f-vector, treating ideal
// vertices as ordinary vertices.
func (t *Triangulation) EulerCharTri() int {
	chi := 0
	for k, c := range t.FVector() {
		if k%2 == 0 {
			chi += c
		} else {
			chi -= c
		}
	}
	return chi
}

// EulerCharManifold returns the Euler characteristic of the compact
// manifold obtained by truncating every ideal vertex.
func (t *Triangulation) EulerCharManifold() int {
	chi := t.EulerCharTri()
	for _, v := range t.skeleton().faces[0] {
		if v.ideal {
			chi += v.linkEuler - 1
		}
	}
	return chi
}

// CountComponents returns the number of connected components.
func (t *Triangulation) CountComponents() int { return len(t.skeleton().components) }

// Components returns the connected components, numbered by smallest simplex.
func (t *Triangulation) Components() []*Component {
	return append([]*Component(nil), t.skeleton().components...)
}

// Component returns component i.
func (t *Triangulation) Component(i int) *Component { return t.skeleton().components[i] }

// IsConnected reports whether there is at most one component.
func (t *Triangulation) IsConnected() bool { return t.CountComponents() <= 1 }

// CountBoundaryComponents returns the number of boundary components, real
// and ideal.
func (t *Triangulation) CountBoundaryComponents() int { return len(t.skeleton().boundary) }

// BoundaryComponents returns the real boundary components followed by the
// ideal ones.
func (t *Triangulation) BoundaryComponents() []*BoundaryComponent {
	return append([]*BoundaryComponent(nil), t.skeleton().boundary...)
}

// BoundaryComponent returns boundary component i.
func (t *Triangulation) BoundaryComponent(i int) *BoundaryComponent {
	return t.skeleton().boundary[i]
}

// IsValid reports whether every face is valid.
func (t *Triangulation) IsValid() bool { return t.skeleton().valid }

// IsOrientable reports whether every component is orientable.
func (t *Triangulation) IsOrientable() bool { return t.skeleton().orientable }

// IsIdeal reports whether some vertex is ideal.
func (t *Triangulation) IsIdeal() bool { return t.skeleton().ideal }

// IsClosed reports whether there are no boundary components, real or ideal.
func (t *Triangulation) IsClosed() bool { return len(t.skeleton().boundary) == 0 }

// HasBoundary reports whether there is a boundary component, real or
// ideal.
func (t *Triangulation) HasBoundary() bool { return !t.IsClosed() }

// IsStandard reports, for dimension 3, whether the triangulation is valid
// and every ideal vertex has a torus or Klein bottle link.
func (t *Triangulation) IsStandard() bool {
	if t.dim != 3 || !t.IsValid() {
		return false
	}
	for _, v := range t.skeleton().faces[0] {
		if v.ideal && v.link != LinkTorus && v.link != LinkKleinBottle {
			return false
		}
	}
	return true
}

// IsOriented reports whether every simplex has orientation +1, so that
// the labelling itself is consistently oriented.
func (t *Triangulation) IsOriented() bool {
	sk := t.skeleton()
	if !sk.orientable {
		return false
	}
	for _, o := range sk.orientation {
		if o != 1 {
			return false
		}
	}
	return true
}

// FaceLink returns a copy of the link of f, which must have dimension at
// least 2.
func (t *Triangulation) FaceLink(f *Face) (*Triangulation, error) {
	if f == nil || f.tri != t {
		return nil, triErrorf(opBuildLink, ErrInvalidArgument, "face does not belong to this triangulation")
	}
	if t.dim-f.subdim-1 < 2 {
		return nil, triErrorf(opBuildLink, ErrNotApplicable, "link of a %d-face in dimension %d", f.subdim, t.dim)
	}
	t.skeleton()
	return f.linkTri.Clone(), nil
}

// VertexLink returns the link of vertex i (dimension 3 or 4).
func (t *Triangulation) VertexLink(i int) (*Triangulation, error) {
	if i < 0 || i >= t.CountFaces(0) {
		return nil, triErrorf(opBuildLink, ErrInvalidArgument, "vertex %d out of range", i)
	}
	return t.FaceLink(t.Face(0, i))
}

// Build returns the boundary component as a standalone triangulation of
// dimension dim−1. For a real component, simplex i of the result is
// Facets()[i] and the returned map records that correspondence. For an
// ideal component the result is the vertex link and the map is nil.
func (b *BoundaryComponent) Build() (*Triangulation, []BoundaryFacet, error) {
	b.tri.skeleton()
	if b.builtErr != nil {
		return nil, nil, b.builtErr
	}
	var m []BoundaryFacet
	if b.builtMap != nil {
		m = append(m, b.builtMap...)
	}
	return b.built.Clone(), m, nil
}
