package triangulation

import (
	"github.com/katalvlaran/trimanifold/perm"
)

// Simplex is a single top-dimensional simplex of a Triangulation.
//
// Facet f is the facet opposite vertex f. A gluing π sends vertex i of this
// simplex to vertex π(i) of the adjacent simplex, so facet f is glued to
// facet π(f).
type Simplex struct {
	tri    *Triangulation
	index  int
	adj    []*Simplex
	gluing []perm.Perm
	locks  uint8
	desc   string
}

func newSimplex(t *Triangulation) *Simplex {
	return &Simplex{
		tri:    t,
		adj:    make([]*Simplex, t.dim+1),
		gluing: make([]perm.Perm, t.dim+1),
	}
}

// Index returns the position of s in its triangulation.
func (s *Simplex) Index() int { return s.index }

// Triangulation returns the owning triangulation.
func (s *Simplex) Triangulation() *Triangulation { return s.tri }

// Description returns the free-text description of s.
func (s *Simplex) Description() string { return s.desc }

// SetDescription replaces the description of s.
func (s *Simplex) SetDescription(d string) {
	defer s.tri.BeginChange(Unchanged).End()
	s.desc = d
}

// Adjacent returns the simplex glued to facet f, or nil if f is boundary.
func (s *Simplex) Adjacent(f int) *Simplex { return s.adj[f] }

// Gluing returns the gluing permutation of facet f. It is meaningless when f
// is a boundary facet.
func (s *Simplex) Gluing(f int) perm.Perm { return s.gluing[f] }

// AdjacentFacet returns the facet of the adjacent simplex glued to f, or -1.
func (s *Simplex) AdjacentFacet(f int) int {
	if s.adj[f] == nil {
		return -1
	}
	return s.gluing[f].Image(f)
}

// HasBoundary reports whether some facet of s is unglued.
func (s *Simplex) HasBoundary() bool {
	for _, a := range s.adj {
		if a == nil {
			return true
		}
	}
	return false
}

func (s *Simplex) checkFacet(op string, f int) error {
	if f < 0 || f > s.tri.dim {
		return triErrorf(op, ErrInvalidArgument, "facet %d out of range 0..%d", f, s.tri.dim)
	}
	return nil
}

// Join glues facet f of s to facet g(f) of other.
func (s *Simplex) Join(f int, other *Simplex, g perm.Perm) error {
	if err := s.checkFacet(opJoin, f); err != nil {
		return err
	}
	switch {
	case other == nil:
		return triErrorf(opJoin, ErrInvalidArgument, "nil destination")
	case other.tri != s.tri:
		return triErrorf(opJoin, ErrInvalidArgument, "destination belongs to a different triangulation")
	case g.Size() != s.tri.dim+1:
		return triErrorf(opJoin, ErrInvalidArgument, "gluing has size %d, want %d", g.Size(), s.tri.dim+1)
	case s.adj[f] != nil:
		return triErrorf(opJoin, ErrInvalidArgument, "facet %d of simplex %d is already glued", f, s.index)
	}
	g2 := g.Image(f)
	switch {
	case other == s && g2 == f:
		return triErrorf(opJoin, ErrInvalidArgument, "facet %d glued to itself", f)
	case other.adj[g2] != nil:
		return triErrorf(opJoin, ErrInvalidArgument, "facet %d of simplex %d is already glued", g2, other.index)
	}
	defer s.tri.BeginChange(AllCleared).End()
	s.join(f, other, g)
	return nil
}

// join links both sides and reconciles the facet locks.
func (s *Simplex) join(f int, other *Simplex, g perm.Perm) {
	g2 := g.Image(f)
	s.adj[f], s.gluing[f] = other, g
	other.adj[g2], other.gluing[g2] = s, g.Inverse()
	if s.IsFacetLocked(f) || other.IsFacetLocked(g2) {
		s.locks |= 1 << (f + 1)
		other.locks |= 1 << (g2 + 1)
	}
}

// Unjoin removes the gluing on facet f and returns the simplex that was
// glued there (nil if f was already boundary). Locked facets are refused.
func (s *Simplex) Unjoin(f int) (*Simplex, error) {
	if err := s.checkFacet(opUnjoin, f); err != nil {
		return nil, err
	}
	if s.adj[f] == nil {
		return nil, nil
	}
	if s.IsFacetLocked(f) {
		return nil, triErrorf(opUnjoin, ErrLocked, "facet %d of simplex %d", f, s.index)
	}
	defer s.tri.BeginChange(AllCleared).End()
	return s.unjoin(f), nil
}

func (s *Simplex) unjoin(f int) *Simplex {
	other := s.adj[f]
	if other == nil {
		return nil
	}
	g2 := s.gluing[f].Image(f)
	other.adj[g2] = nil
	s.adj[f] = nil
	return other
}

// Isolate unglues every facet of s.
func (s *Simplex) Isolate() error {
	for f := range s.adj {
		if s.adj[f] != nil && s.IsFacetLocked(f) {
			return triErrorf(opUnjoin, ErrLocked, "facet %d of simplex %d", f, s.index)
		}
	}
	defer s.tri.BeginChange(AllCleared).End()
	for f := range s.adj {
		s.unjoin(f)
	}
	return nil
}

// Lock locks the simplex itself, protecting it from moves.
func (s *Simplex) Lock() {
	defer s.tri.BeginChange(Unchanged).End()
	s.locks |= 1
}

// Unlock removes the simplex lock; facet locks are kept.
func (s *Simplex) Unlock() {
	defer s.tri.BeginChange(Unchanged).End()
	s.locks &^= 1
}

// IsLocked reports whether the simplex itself is locked.
func (s *Simplex) IsLocked() bool { return s.locks&1 != 0 }

// LockFacet locks facet f and the facet glued to it.
func (s *Simplex) LockFacet(f int) error {
	if err := s.checkFacet(opLock, f); err != nil {
		return err
	}
	defer s.tri.BeginChange(Unchanged).End()
	s.locks |= 1 << (f + 1)
	if o := s.adj[f]; o != nil {
		o.locks |= 1 << (s.gluing[f].Image(f) + 1)
	}
	return nil
}

// UnlockFacet unlocks facet f and the facet glued to it.
func (s *Simplex) UnlockFacet(f int) error {
	if err := s.checkFacet(opLock, f); err != nil {
		return err
	}
	defer s.tri.BeginChange(Unchanged).End()
	s.locks &^= 1 << (f + 1)
	if o := s.adj[f]; o != nil {
		o.locks &^= 1 << (s.gluing[f].Image(f) + 1)
	}
	return nil
}

// IsFacetLocked reports whether facet f is locked.
func (s *Simplex) IsFacetLocked(f int) bool { return s.locks&(1<<(f+1)) != 0 }

// LockMask returns the lock bits: bit 0 for the simplex, bit f+1 for facet f.
func (s *Simplex) LockMask() uint8 { return s.locks }

// UnlockAll clears the simplex lock and every facet lock, mirrored onto
// adjacent simplices.
func (s *Simplex) UnlockAll() {
	defer s.tri.BeginChange(Unchanged).End()
	for f, o := range s.adj {
		if o != nil {
			o.locks &^= 1 << (s.gluing[f].Image(f) + 1)
		}
	}
	s.locks = 0
}

// Face returns the k-face of the triangulation that appears as k-face i of
// this simplex.
func (s *Simplex) Face(k, i int) *Face {
	sk := s.tri.skeleton()
	return sk.faces[k][sk.faceIdx[s.index][k][i]]
}

// FaceIndex returns the index of Face(k, i) among the k-faces.
func (s *Simplex) FaceIndex(k, i int) int { return s.tri.skeleton().faceIdx[s.index][k][i] }

// FaceMapping returns the permutation sending 0..k to the vertices of k-face
// i of s in the order given by that face's own labelling.
func (s *Simplex) FaceMapping(k, i int) perm.Perm {
	return s.tri.skeleton().facePerm[s.index][k][i]
}

// Vertex returns the vertex of the triangulation at vertex i of s.
func (s *Simplex) Vertex(i int) *Face { return s.Face(0, i) }

// Edge returns the edge of the triangulation at edge i of s.
func (s *Simplex) Edge(i int) *Face { return s.Face(1, i) }

// Component returns the connected component containing s.
func (s *Simplex) Component() *Component {
	sk := s.tri.skeleton()
	return sk.components[sk.simpComp[s.index]]
}

// Orientation returns ±1. Adjacent simplices have compatible orientations
// whenever the component is orientable.
func (s *Simplex) Orientation() int { return s.tri.skeleton().orientation[s.index] }
