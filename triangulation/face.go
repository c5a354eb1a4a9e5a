package triangulation

import (
	"github.com/katalvlaran/trimanifold/perm"
)

// Embedding places a face inside a top-dimensional simplex: it is face
// number Face of Simplex, and Vertices sends 0..k (the face's own vertex
// labels) to the corresponding vertices of Simplex. The images of k+1..dim
// are the remaining vertices.
type Embedding struct {
	Simplex  *Simplex
	Face     int
	Vertices perm.Perm
}

// LinkType classifies the link of a vertex in a 3-dimensional triangulation.
type LinkType int

const (
	// LinkUnknown is used for faces whose link is not classified.
	LinkUnknown LinkType = iota
	// LinkSphere is an internal vertex.
	LinkSphere
	// LinkDisc is a vertex on the real boundary.
	LinkDisc
	// LinkTorus is an ideal vertex with torus link.
	LinkTorus
	// LinkKleinBottle is an ideal vertex with Klein bottle link.
	LinkKleinBottle
	// LinkNonStandardCusp is any other closed link.
	LinkNonStandardCusp
	// LinkInvalid is a bounded link other than a disc.
	LinkInvalid
)

var linkNames = [...]string{"unknown", "sphere", "disc", "torus", "Klein bottle", "non-standard cusp", "invalid"}

func (l LinkType) String() string {
	if l < 0 || int(l) >= len(linkNames) {
		return "unknown"
	}
	return linkNames[l]
}

// Face is an equivalence class of k-faces of simplices, 0 ≤ k < dim.
type Face struct {
	tri    *Triangulation
	subdim int
	index  int
	emb    []Embedding

	comp     *Component
	bc       *BoundaryComponent
	boundary bool

	badIdent       bool
	badLink        bool
	linkOrientable bool
	link           LinkType
	linkEuler      int
	linkTri        *Triangulation
	ideal          bool
}

// Subdim returns k.
func (f *Face) Subdim() int { return f.subdim }

// Index returns the position of f among the k-faces of its triangulation.
func (f *Face) Index() int { return f.index }

// Triangulation returns the owning triangulation.
func (f *Face) Triangulation() *Triangulation { return f.tri }

// Degree returns the number of embeddings.
func (f *Face) Degree() int { return len(f.emb) }

// Embeddings returns the embeddings sorted by (simplex, face number).
func (f *Face) Embeddings() []Embedding {
	out := make([]Embedding, len(f.emb))
	copy(out, f.emb)
	return out
}

// Embedding returns embedding i.
func (f *Face) Embedding(i int) Embedding { return f.emb[i] }

// Front returns the first embedding.
func (f *Face) Front() Embedding { return f.emb[0] }

// Component returns the component containing f.
func (f *Face) Component() *Component { return f.comp }

// BoundaryComponent returns the boundary component containing f, or nil.
func (f *Face) BoundaryComponent() *BoundaryComponent { return f.bc }

// IsBoundary reports whether f lies on the real boundary or is an ideal
// vertex.
func (f *Face) IsBoundary() bool { return f.boundary || f.ideal }

// IsValid reports whether f has neither a bad identification nor a bad link.
func (f *Face) IsValid() bool { return !f.badIdent && !f.badLink }

// HasBadIdentification reports whether f is identified with itself under a
// non-identity map of its own vertices.
func (f *Face) HasBadIdentification() bool { return f.badIdent }

// HasBadLink reports whether the link of f is not a sphere or ball.
func (f *Face) HasBadLink() bool { return f.badLink }

// IsLinkOrientable reports whether the link of f is orientable.
func (f *Face) IsLinkOrientable() bool { return f.linkOrientable }

// Link returns the link type of a vertex of a 3-dimensional triangulation,
// and LinkUnknown for every other face.
func (f *Face) Link() LinkType { return f.link }

// LinkEulerChar returns the Euler characteristic of the link when it has
// dimension 2, and 0 otherwise.
func (f *Face) LinkEulerChar() int { return f.linkEuler }

// IsIdeal reports whether f is a vertex whose link is closed but not a
// sphere.
func (f *Face) IsIdeal() bool { return f.ideal }

// Vertex returns vertex i of f, in f's own labelling.
func (f *Face) Vertex(i int) *Face {
	e := f.emb[0]
	return e.Simplex.Vertex(e.Vertices.Image(i))
}

// Component is a connected component of a triangulation.
type Component struct {
	index      int
	simplices  []*Simplex
	faces      [][]*Face
	boundary   []*BoundaryComponent
	orientable bool
	valid      bool
	ideal      bool
	bdryFacets int
}

// Index returns the position of c among the components.
func (c *Component) Index() int { return c.index }

// Size returns the number of simplices in c.
func (c *Component) Size() int { return len(c.simplices) }

// Simplices returns the simplices of c in increasing index order.
func (c *Component) Simplices() []*Simplex {
	out := make([]*Simplex, len(c.simplices))
	copy(out, c.simplices)
	return out
}

// Simplex returns the i-th simplex of c.
func (c *Component) Simplex(i int) *Simplex { return c.simplices[i] }

// CountFaces returns the number of k-faces in c.
func (c *Component) CountFaces(k int) int { return len(c.faces[k]) }

// Faces returns the k-faces in c.
func (c *Component) Faces(k int) []*Face { return append([]*Face(nil), c.faces[k]...) }

// BoundaryComponents returns the boundary components of c.
func (c *Component) BoundaryComponents() []*BoundaryComponent {
	return append([]*BoundaryComponent(nil), c.boundary...)
}

// CountBoundaryComponents returns the number of boundary components.
func (c *Component) CountBoundaryComponents() int { return len(c.boundary) }

// IsOrientable reports whether c is orientable.
func (c *Component) IsOrientable() bool { return c.orientable }

// IsValid reports whether every face of c is valid.
func (c *Component) IsValid() bool { return c.valid }

// IsIdeal reports whether c has an ideal vertex.
func (c *Component) IsIdeal() bool { return c.ideal }

// IsClosed reports whether c has no boundary components, real or ideal.
func (c *Component) IsClosed() bool { return len(c.boundary) == 0 }

// CountBoundaryFacets returns the number of unglued facets in c.
func (c *Component) CountBoundaryFacets() int { return c.bdryFacets }

// Build returns a copy of c as a standalone triangulation. Simplices keep
// their relative order.
func (c *Component) Build() *Triangulation {
	if len(c.simplices) == 0 {
		return nil
	}
	src := c.simplices[0].tri
	u := &Triangulation{dim: src.dim}
	pos := make(map[*Simplex]int, len(c.simplices))
	for i, s := range c.simplices {
		pos[s] = i
		u.newSimplex()
	}
	for i, s := range c.simplices {
		d := u.simplices[i]
		d.desc, d.locks = s.desc, s.locks
		for f, a := range s.adj {
			if a != nil {
				d.adj[f] = u.simplices[pos[a]]
				d.gluing[f] = s.gluing[f]
			}
		}
	}
	return u
}

// BoundaryFacet is one unglued facet, together with the ordering that sends
// 0..dim−1 to the facet's vertices in increasing order and dim to Facet.
type BoundaryFacet struct {
	Simplex  *Simplex
	Facet    int
	Vertices perm.Perm
}

// BoundaryComponent is a connected piece of the boundary: either a union of
// unglued facets joined along (dim−2)-faces, or the link of an ideal vertex.
type BoundaryComponent struct {
	tri    *Triangulation
	index  int
	comp   *Component
	facets []int // indices into skeleton.bfacets
	vertex *Face // ideal vertex, for ideal components
	faces  [][]*Face

	built      *Triangulation
	builtMap   []BoundaryFacet
	builtErr   error
	euler      int
	orientable bool
}

// Index returns the position of b among the boundary components.
func (b *BoundaryComponent) Index() int { return b.index }

// Component returns the component containing b.
func (b *BoundaryComponent) Component() *Component { return b.comp }

// IsIdeal reports whether b is the link of an ideal vertex.
func (b *BoundaryComponent) IsIdeal() bool { return b.vertex != nil }

// IsReal reports whether b consists of unglued facets.
func (b *BoundaryComponent) IsReal() bool { return b.vertex == nil }

// IdealVertex returns the ideal vertex of an ideal component, or nil.
func (b *BoundaryComponent) IdealVertex() *Face { return b.vertex }

// CountFacets returns the number of unglued facets in b (0 if ideal).
func (b *BoundaryComponent) CountFacets() int { return len(b.facets) }

// Facets returns the unglued facets of b.
func (b *BoundaryComponent) Facets() []BoundaryFacet {
	sk := b.tri.skeleton()
	out := make([]BoundaryFacet, len(b.facets))
	for i, j := range b.facets {
		out[i] = sk.bfacets[j]
	}
	return out
}

// Faces returns the k-faces of the triangulation lying in b.
func (b *BoundaryComponent) Faces(k int) []*Face { return append([]*Face(nil), b.faces[k]...) }

// Vertices returns the vertices lying in b.
func (b *BoundaryComponent) Vertices() []*Face { return b.Faces(0) }

// EulerChar returns the Euler characteristic of b as a (dim−1)-manifold.
func (b *BoundaryComponent) EulerChar() int { return b.euler }

// IsOrientable reports whether b is orientable.
func (b *BoundaryComponent) IsOrientable() bool { return b.orientable }
