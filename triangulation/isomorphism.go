package triangulation

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/random"
)

// Isomorphism relabels a triangulation: simplex i becomes simplex
// SimpImage[i], and its vertex v becomes vertex FacetPerm[i](v) of the
// image.
type Isomorphism struct {
	SimpImage []int
	FacetPerm []perm.Perm
}

// IdentityIsomorphism returns the identity on n simplices of dimension dim.
func IdentityIsomorphism(dim, n int) Isomorphism {
	iso := Isomorphism{SimpImage: make([]int, n), FacetPerm: make([]perm.Perm, n)}
	for i := 0; i < n; i++ {
		iso.SimpImage[i] = i
		iso.FacetPerm[i] = perm.Identity(dim + 1)
	}
	return iso
}

// RandomIsomorphism draws a uniformly random isomorphism from the shared
// random engine. If even is true every facet permutation is even, so
// orientations are preserved.
func RandomIsomorphism(dim, n int, even bool) Isomorphism {
	g := random.Acquire()
	defer g.Release()
	sn := perm.MustSn(dim + 1)
	iso := Isomorphism{SimpImage: g.Perm(n), FacetPerm: make([]perm.Perm, n)}
	for i := 0; i < n; i++ {
		for {
			p := sn[g.Intn(len(sn))]
			if !even || p.Sign() == 1 {
				iso.FacetPerm[i] = p
				break
			}
		}
	}
	return iso
}

// Size returns the number of simplices the isomorphism acts on.
func (iso Isomorphism) Size() int { return len(iso.SimpImage) }

// IsIdentity reports whether iso changes nothing.
func (iso Isomorphism) IsIdentity() bool {
	for i, j := range iso.SimpImage {
		if i != j || !iso.FacetPerm[i].IsIdentity() {
			return false
		}
	}
	return true
}

// Inverse returns the inverse isomorphism.
func (iso Isomorphism) Inverse() Isomorphism {
	n := len(iso.SimpImage)
	out := Isomorphism{SimpImage: make([]int, n), FacetPerm: make([]perm.Perm, n)}
	for i, j := range iso.SimpImage {
		out.SimpImage[j] = i
		out.FacetPerm[j] = iso.FacetPerm[i].Inverse()
	}
	return out
}

// Compose returns iso∘other: first other, then iso.
func (iso Isomorphism) Compose(other Isomorphism) Isomorphism {
	n := len(other.SimpImage)
	out := Isomorphism{SimpImage: make([]int, n), FacetPerm: make([]perm.Perm, n)}
	for i, j := range other.SimpImage {
		out.SimpImage[i] = iso.SimpImage[j]
		out.FacetPerm[i] = iso.FacetPerm[j].Compose(other.FacetPerm[i])
	}
	return out
}

func (iso Isomorphism) validate(t *Triangulation) error {
	n := len(t.simplices)
	if len(iso.SimpImage) != n || len(iso.FacetPerm) != n {
		return triErrorf(opRelabel, ErrInvalidArgument, "isomorphism acts on %d simplices, triangulation has %d", len(iso.SimpImage), n)
	}
	seen := make([]bool, n)
	for i, j := range iso.SimpImage {
		if j < 0 || j >= n || seen[j] {
			return triErrorf(opRelabel, ErrInvalidArgument, "simplex images are not a permutation")
		}
		seen[j] = true
		if iso.FacetPerm[i].Size() != t.dim+1 {
			return triErrorf(opRelabel, ErrInvalidArgument, "facet permutation %d has size %d", i, iso.FacetPerm[i].Size())
		}
	}
	return nil
}

// Apply returns the image of t under iso as a new triangulation.
func (iso Isomorphism) Apply(t *Triangulation) (*Triangulation, error) {
	u := t.Clone()
	if err := u.Relabel(iso); err != nil {
		return nil, err
	}
	return u, nil
}

// Relabel applies iso to t in place. Simplex objects keep their identity
// but change index, vertex labels, gluings and lock bits.
func (t *Triangulation) Relabel(iso Isomorphism) error {
	if err := iso.validate(t); err != nil {
		return err
	}
	defer t.BeginChange(TopologyPreserved).End()
	t.relabel(iso)
	return nil
}

func (t *Triangulation) relabel(iso Isomorphism) {
	n, d := len(t.simplices), t.dim
	type state struct {
		adj   []*Simplex
		glu   []perm.Perm
		locks uint8
	}
	st := make([]state, n)
	for i, s := range t.simplices {
		p := iso.FacetPerm[i]
		st[i] = state{adj: make([]*Simplex, d+1), glu: make([]perm.Perm, d+1), locks: s.locks & 1}
		for f, a := range s.adj {
			nf := p.Image(f)
			if s.IsFacetLocked(f) {
				st[i].locks |= 1 << (nf + 1)
			}
			if a == nil {
				continue
			}
			st[i].adj[nf] = a
			st[i].glu[nf] = iso.FacetPerm[a.index].Compose(s.gluing[f]).Compose(p.Inverse())
		}
	}
	order := make([]*Simplex, n)
	for i, s := range t.simplices {
		s.adj, s.gluing, s.locks = st[i].adj, st[i].glu, st[i].locks
		order[iso.SimpImage[i]] = s
	}
	t.simplices = order
	for i, s := range t.simplices {
		s.index = i
	}
}

// RandomRelabel applies a random isomorphism and returns it.
func (t *Triangulation) RandomRelabel(even bool) Isomorphism {
	iso := RandomIsomorphism(t.dim, len(t.simplices), even)
	defer t.BeginChange(TopologyPreserved).End()
	t.relabel(iso)
	return iso
}

// isoSearch finds isomorphisms t → u component by component.
type isoSearch struct {
	t, u  *Triangulation
	comps [][]*Simplex
	sn    []perm.Perm
	img   []int
	perms []perm.Perm
	used  []bool
	all   bool
	found []Isomorphism
}

// FindIsomorphism returns an isomorphism from t onto u if one exists.
func FindIsomorphism(t, u *Triangulation) (Isomorphism, bool) {
	found := findIsomorphisms(t, u, false)
	if len(found) == 0 {
		return Isomorphism{}, false
	}
	return found[0], true
}

// FindAllIsomorphisms returns every isomorphism from t onto u.
func FindAllIsomorphisms(t, u *Triangulation) []Isomorphism {
	return findIsomorphisms(t, u, true)
}

// IsIsomorphic reports whether t and u are combinatorially isomorphic.
func IsIsomorphic(t, u *Triangulation) bool {
	_, ok := FindIsomorphism(t, u)
	return ok
}

func findIsomorphisms(t, u *Triangulation, all bool) []Isomorphism {
	if t.dim != u.dim || t.Size() != u.Size() {
		return nil
	}
	if t.Size() == 0 {
		return []Isomorphism{IdentityIsomorphism(t.dim, 0)}
	}
	tf, uf := t.FVector(), u.FVector()
	for k := range tf {
		if tf[k] != uf[k] {
			return nil
		}
	}
	if t.CountComponents() != u.CountComponents() || t.IsValid() != u.IsValid() ||
		t.IsOrientable() != u.IsOrientable() || t.CountBoundaryFacets() != u.CountBoundaryFacets() {
		return nil
	}
	x := &isoSearch{
		t: t, u: u, all: all,
		sn:    perm.MustSn(t.dim + 1),
		img:   make([]int, t.Size()),
		perms: make([]perm.Perm, t.Size()),
		used:  make([]bool, u.Size()),
	}
	for _, c := range t.Components() {
		x.comps = append(x.comps, c.Simplices())
	}
	for i := range x.img {
		x.img[i] = -1
	}
	x.match(0)
	return x.found
}

func (x *isoSearch) match(c int) bool {
	if c == len(x.comps) {
		iso := Isomorphism{SimpImage: append([]int(nil), x.img...), FacetPerm: append([]perm.Perm(nil), x.perms...)}
		x.found = append(x.found, iso)
		return !x.all
	}
	start := x.comps[c][0]
	for _, v := range x.u.simplices {
		if x.used[v.index] {
			continue
		}
		for _, p := range x.sn {
			assigned, ok := x.extend(start, v, p)
			if ok && x.match(c+1) {
				return true
			}
			for _, s := range assigned {
				x.used[x.img[s.index]] = false
				x.img[s.index] = -1
			}
		}
	}
	return false
}

// extend maps start to v by p and propagates along gluings. It returns the
// simplices it assigned, so the caller can undo them.
func (x *isoSearch) extend(start, v *Simplex, p perm.Perm) ([]*Simplex, bool) {
	assign := func(s, w *Simplex, q perm.Perm) {
		x.img[s.index] = w.index
		x.perms[s.index] = q
		x.used[w.index] = true
	}
	assign(start, v, p)
	queue := []*Simplex{start}
	for q := 0; q < len(queue); q++ {
		s := queue[q]
		w := x.u.simplices[x.img[s.index]]
		ps := x.perms[s.index]
		for f, a := range s.adj {
			wf := ps.Image(f)
			wa := w.adj[wf]
			if (a == nil) != (wa == nil) {
				return queue, false
			}
			if a == nil {
				continue
			}
			want := w.gluing[wf].Compose(ps).Compose(s.gluing[f].Inverse())
			if x.img[a.index] >= 0 {
				if x.img[a.index] != wa.index || x.perms[a.index] != want {
					return queue, false
				}
				continue
			}
			if x.used[wa.index] {
				return queue, false
			}
			assign(a, wa, want)
			queue = append(queue, a)
		}
	}
	return queue, true
}

// String renders iso as "0 -> 2 (1023), 1 -> 0 (0123)".
func (iso Isomorphism) String() string {
	out := ""
	for i, j := range iso.SimpImage {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d -> %d (%s)", i, j, iso.FacetPerm[i])
	}
	return out
}
