package triangulation

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/bfs"
	"github.com/katalvlaran/trimanifold/perm"
)

// Triangulation is a collection of dim-simplices with facets glued in pairs.
type Triangulation struct {
	dim       int
	simplices []*Simplex
	label     string

	span spanState

	skelMu sync.Mutex
	skel   *skeleton

	topoMu sync.Mutex
	topo   topoCache
}

// topoCache holds invariants of the underlying space. It survives
// topology-preserving changes.
type topoCache struct {
	h1       *abelian.Group
	h2z2     *int
	homology map[int]abelian.Group
}

// New returns an empty triangulation of the given dimension.
func New(dim int) (*Triangulation, error) {
	if dim < 2 || dim > 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	return &Triangulation{dim: dim}, nil
}

// MustNew is New for constant dimensions.
func MustNew(dim int) *Triangulation {
	t, err := New(dim)
	if err != nil {
		panic(err)
	}
	return t
}

// Dim returns the dimension.
func (t *Triangulation) Dim() int { return t.dim }

// Size returns the number of top-dimensional simplices.
func (t *Triangulation) Size() int { return len(t.simplices) }

// IsEmpty reports whether there are no simplices.
func (t *Triangulation) IsEmpty() bool { return len(t.simplices) == 0 }

// Simplex returns simplex i.
func (t *Triangulation) Simplex(i int) *Simplex { return t.simplices[i] }

// Simplices returns the simplices in index order.
func (t *Triangulation) Simplices() []*Simplex {
	out := make([]*Simplex, len(t.simplices))
	copy(out, t.simplices)
	return out
}

// Label returns the name of the triangulation.
func (t *Triangulation) Label() string { return t.label }

// SetLabel renames the triangulation.
func (t *Triangulation) SetLabel(l string) {
	defer t.BeginChange(Unchanged).End()
	t.label = l
}

// NewSimplex appends a new isolated simplex.
func (t *Triangulation) NewSimplex() *Simplex {
	defer t.BeginChange(AllCleared).End()
	return t.newSimplex()
}

func (t *Triangulation) newSimplex() *Simplex {
	s := newSimplex(t)
	s.index = len(t.simplices)
	t.simplices = append(t.simplices, s)
	return s
}

// NewSimplices appends k new isolated simplices and returns them.
func (t *Triangulation) NewSimplices(k int) []*Simplex {
	defer t.BeginChange(AllCleared).End()
	out := make([]*Simplex, k)
	for i := range out {
		out[i] = t.newSimplex()
	}
	return out
}

// RemoveSimplex unglues s and deletes it. Later simplices move down by one.
func (t *Triangulation) RemoveSimplex(s *Simplex) error {
	if s == nil || s.tri != t {
		return triErrorf(opRemove, ErrInvalidArgument, "simplex does not belong to this triangulation")
	}
	if s.IsLocked() {
		return triErrorf(opRemove, ErrLocked, "simplex %d", s.index)
	}
	for f := range s.adj {
		if s.adj[f] != nil && s.IsFacetLocked(f) {
			return triErrorf(opRemove, ErrLocked, "facet %d of simplex %d", f, s.index)
		}
	}
	defer t.BeginChange(AllCleared).End()
	t.removeSimplex(s)
	return nil
}

func (t *Triangulation) removeSimplex(s *Simplex) {
	for f := range s.adj {
		s.unjoin(f)
	}
	t.simplices = append(t.simplices[:s.index], t.simplices[s.index+1:]...)
	for i := s.index; i < len(t.simplices); i++ {
		t.simplices[i].index = i
	}
	s.tri = nil
}

// RemoveSimplexAt removes simplex i.
func (t *Triangulation) RemoveSimplexAt(i int) error {
	if i < 0 || i >= len(t.simplices) {
		return triErrorf(opRemove, ErrInvalidArgument, "index %d out of range", i)
	}
	return t.RemoveSimplex(t.simplices[i])
}

// RemoveAll deletes every simplex, ignoring locks.
func (t *Triangulation) RemoveAll() {
	defer t.BeginChange(AllCleared).End()
	for _, s := range t.simplices {
		s.tri = nil
	}
	t.simplices = nil
}

// Clone returns a deep copy. Cached topological invariants are shared; the
// skeleton is recomputed on demand.
func (t *Triangulation) Clone() *Triangulation {
	u := &Triangulation{dim: t.dim, label: t.label}
	u.copyFrom(t)
	t.topoMu.Lock()
	u.topo = t.topo.clone()
	t.topoMu.Unlock()
	return u
}

func (c topoCache) clone() topoCache {
	out := topoCache{h1: c.h1, h2z2: c.h2z2}
	if c.homology != nil {
		out.homology = make(map[int]abelian.Group, len(c.homology))
		for k, g := range c.homology {
			out.homology[k] = g
		}
	}
	return out
}

// copyFrom appends copies of the simplices of src.
func (t *Triangulation) copyFrom(src *Triangulation) {
	base := len(t.simplices)
	for range src.simplices {
		t.newSimplex()
	}
	for i, s := range src.simplices {
		d := t.simplices[base+i]
		d.desc, d.locks = s.desc, s.locks
		for f, a := range s.adj {
			if a != nil {
				d.adj[f] = t.simplices[base+a.index]
				d.gluing[f] = s.gluing[f]
			}
		}
	}
}

// InsertTriangulation appends a copy of src, which must have the same
// dimension. src may be t itself.
func (t *Triangulation) InsertTriangulation(src *Triangulation) error {
	if src.dim != t.dim {
		return triErrorf(opInsert, ErrInvalidArgument, "dimension %d into %d", src.dim, t.dim)
	}
	if src == t {
		src = t.Clone()
	}
	defer t.BeginChange(AllCleared).End()
	t.copyFrom(src)
	return nil
}

// IsIdenticalTo reports whether u has exactly the same gluings as t under
// the identity labelling.
func (t *Triangulation) IsIdenticalTo(u *Triangulation) bool {
	if t.dim != u.dim || len(t.simplices) != len(u.simplices) {
		return false
	}
	for i, s := range t.simplices {
		o := u.simplices[i]
		for f := range s.adj {
			switch {
			case (s.adj[f] == nil) != (o.adj[f] == nil):
				return false
			case s.adj[f] == nil:
			case s.adj[f].index != o.adj[f].index || s.gluing[f] != o.gluing[f]:
				return false
			}
		}
	}
	return true
}

// FacetSpec names facet Facet of simplex Simp. In Pairing, boundary facets
// are marked by Simp == Size() and Facet == 0.
type FacetSpec struct {
	Simp, Facet int
}

// Pairing returns the dual adjacency: entry s·(dim+1)+f is the facet glued
// to facet f of simplex s.
func (t *Triangulation) Pairing() []FacetSpec {
	n, d := len(t.simplices), t.dim+1
	out := make([]FacetSpec, n*d)
	for _, s := range t.simplices {
		for f, a := range s.adj {
			if a == nil {
				out[s.index*d+f] = FacetSpec{Simp: n}
			} else {
				out[s.index*d+f] = FacetSpec{Simp: a.index, Facet: s.gluing[f].Image(f)}
			}
		}
	}
	return out
}

// dualGraph views the triangulation as a port graph: one vertex per simplex
// and one arc per glued facet, with the facet number as port.
type dualGraph struct{ t *Triangulation }

func (g dualGraph) Order() int { return len(g.t.simplices) }

func (g dualGraph) Arcs(v int) []bfs.Arc {
	s := g.t.simplices[v]
	out := make([]bfs.Arc, 0, len(s.adj))
	for f, a := range s.adj {
		if a != nil {
			out = append(out, bfs.Arc{To: a.index, Port: f})
		}
	}
	return out
}

// DualGraph returns the dual graph for use with package bfs.
func (t *Triangulation) DualGraph() bfs.Graph { return dualGraph{t} }

// Gluing is one entry of a gluing list: facet Facet of simplex Simp is
// glued to simplex Dest by Perm.
type Gluing struct {
	Simp, Facet, Dest int
	Perm              perm.Perm
}

// FromGluings builds a triangulation with n simplices and the given gluings.
// Each gluing needs to be listed from one side only.
func FromGluings(dim, n int, gluings []Gluing) (*Triangulation, error) {
	t, err := New(dim)
	if err != nil {
		return nil, err
	}
	simp := t.NewSimplices(n)
	for _, g := range gluings {
		if g.Simp < 0 || g.Simp >= n || g.Dest < 0 || g.Dest >= n {
			return nil, triErrorf(opJoin, ErrInvalidArgument, "simplex out of range in %+v", g)
		}
		if err := simp[g.Simp].Join(g.Facet, simp[g.Dest], g.Perm); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Gluings lists every gluing once, from the side with the smaller
// (simplex, facet) pair.
func (t *Triangulation) Gluings() []Gluing {
	var out []Gluing
	for _, s := range t.simplices {
		for f, a := range s.adj {
			if a == nil {
				continue
			}
			f2 := s.gluing[f].Image(f)
			if a.index < s.index || (a == s && f2 < f) {
				continue
			}
			out = append(out, Gluing{Simp: s.index, Facet: f, Dest: a.index, Perm: s.gluing[f]})
		}
	}
	return out
}

// CountBoundaryFacets returns the number of unglued facets.
func (t *Triangulation) CountBoundaryFacets() int {
	n := 0
	for _, s := range t.simplices {
		for _, a := range s.adj {
			if a == nil {
				n++
			}
		}
	}
	return n
}

// HasBoundaryFacets reports whether some facet is unglued.
func (t *Triangulation) HasBoundaryFacets() bool { return t.CountBoundaryFacets() > 0 }

// String summarises the triangulation.
func (t *Triangulation) String() string {
	if t.IsEmpty() {
		return fmt.Sprintf("empty %d-dimensional triangulation", t.dim)
	}
	return fmt.Sprintf("%d-dimensional triangulation with %d simplices", t.dim, len(t.simplices))
}

// Detail lists every gluing, one simplex per line, as "s: f->d (perm)".
func (t *Triangulation) Detail() string {
	out := t.String() + "\n"
	for _, s := range t.simplices {
		out += fmt.Sprintf("%d:", s.index)
		for f, a := range s.adj {
			if a == nil {
				out += " bdry"
				continue
			}
			out += fmt.Sprintf(" %d (%s)", a.index, s.gluing[f].String())
		}
		out += "\n"
	}
	return out
}
