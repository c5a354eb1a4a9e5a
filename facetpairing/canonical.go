package facetpairing

import (
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Isomorphism relabels simplices and the facets of each simplex. Vertex
// permutations of a triangulation act on facets the same way, so the two
// packages share the type.
type Isomorphism = triangulation.Isomorphism

// labelling is a partial relabelling built position by position.
type labelling struct {
	simp   []int // old simplex -> new, -1 if unset
	inv    []int // new simplex -> old
	facet  []int // old (simplex, facet) -> new facet
	ifacet []int // new (simplex, facet) -> old facet
	next   int
}

func newLabelling(n, d1 int) labelling {
	l := labelling{
		simp:   make([]int, n),
		inv:    make([]int, n),
		facet:  make([]int, n*d1),
		ifacet: make([]int, n*d1),
	}
	for i := range l.simp {
		l.simp[i], l.inv[i] = -1, -1
	}
	for i := range l.facet {
		l.facet[i], l.ifacet[i] = -1, -1
	}
	return l
}

func (l labelling) clone() labelling {
	return labelling{
		simp:   append([]int(nil), l.simp...),
		inv:    append([]int(nil), l.inv...),
		facet:  append([]int(nil), l.facet...),
		ifacet: append([]int(nil), l.ifacet...),
		next:   l.next,
	}
}

func (l labelling) isomorphism(d1 int) Isomorphism {
	n := len(l.simp)
	iso := Isomorphism{SimpImage: make([]int, n), FacetPerm: make([]perm.Perm, n)}
	for s := 0; s < n; s++ {
		iso.SimpImage[s] = l.simp[s]
		iso.FacetPerm[s] = perm.Of(l.facet[s*d1 : (s+1)*d1]...)
	}
	return iso
}

type searchMode int

const (
	modeMinimise searchMode = iota
	modeCanonicity
)

// canonSearch walks relabellings in which every position takes the
// smallest value still available: simplices are numbered in order of
// discovery and an unlabelled destination facet takes the smallest free
// label of its simplex. Ties are branched on.
type canonSearch struct {
	p       *FacetPairing
	mode    searchMode
	partial bool // unmatched facets are undecided rather than boundary
	limit   int  // number of positions compared

	// modeMinimise
	best []FacetSpec
	cur  []FacetSpec
	rel  []int
	labs []labelling
	keep bool

	// modeCanonicity
	smaller bool
}

func newSearch(p *FacetPairing, mode searchMode) *canonSearch {
	cs := &canonSearch{p: p, mode: mode, limit: len(p.dest)}
	if mode == modeMinimise {
		cs.cur = make([]FacetSpec, len(p.dest))
		cs.rel = make([]int, len(p.dest)+1)
		cs.rel[0] = -1
	}
	return cs
}

func (cs *canonSearch) start() {
	d1 := cs.p.dim + 1
	cs.run(0, newLabelling(cs.p.size, d1))
}

// resolve returns the new value of old facet (os, of), labelling its
// destination if needed. ok is false when the destination is undecided.
func (cs *canonSearch) resolve(l *labelling, os, of int) (FacetSpec, bool) {
	d1 := cs.p.dim + 1
	dst := cs.p.dest[os*d1+of]
	if dst.Simp == cs.p.size {
		if cs.partial {
			return FacetSpec{}, false
		}
		return dst, true
	}
	ns := l.simp[dst.Simp]
	if ns < 0 {
		ns = l.next
		l.next++
		l.simp[dst.Simp] = ns
		l.inv[ns] = dst.Simp
	}
	nf := l.facet[dst.Simp*d1+dst.Facet]
	if nf < 0 {
		for nf = 0; l.ifacet[ns*d1+nf] >= 0; nf++ {
		}
		l.facet[dst.Simp*d1+dst.Facet] = nf
		l.ifacet[ns*d1+nf] = dst.Facet
	}
	return FacetSpec{Simp: ns, Facet: nf}, true
}

// run reports whether the whole search should stop.
func (cs *canonSearch) run(pos int, l labelling) bool {
	if pos == cs.limit {
		return cs.leaf(l)
	}
	d1 := cs.p.dim + 1
	k, j := pos/d1, pos%d1
	if l.inv[k] < 0 {
		for os := 0; os < cs.p.size; os++ {
			if l.simp[os] >= 0 {
				continue
			}
			nl := l.clone()
			nl.simp[os], nl.inv[k], nl.next = k, os, k+1
			if cs.run(pos, nl) {
				return true
			}
		}
		return false
	}
	os := l.inv[k]
	if of := l.ifacet[pos]; of >= 0 {
		nl := l.clone()
		v, ok := cs.resolve(&nl, os, of)
		if !ok {
			return false
		}
		return cs.visit(pos, nl, v)
	}
	for of := 0; of < d1; of++ {
		if l.facet[os*d1+of] >= 0 {
			continue
		}
		nl := l.clone()
		nl.facet[os*d1+of], nl.ifacet[pos] = j, of
		v, ok := cs.resolve(&nl, os, of)
		if !ok {
			continue
		}
		if cs.visit(pos, nl, v) {
			return true
		}
	}
	return false
}

func (cs *canonSearch) visit(pos int, l labelling, v FacetSpec) bool {
	if cs.mode == modeCanonicity {
		switch c := v.Compare(cs.p.dest[pos]); {
		case c < 0:
			cs.smaller = true
			return true
		case c > 0:
			return false
		}
		return cs.run(pos+1, l)
	}
	r := cs.rel[pos]
	if r == 0 {
		if r = v.Compare(cs.best[pos]); r > 0 {
			return false
		}
	}
	cs.cur[pos] = v
	cs.rel[pos+1] = r
	return cs.run(pos+1, l)
}

func (cs *canonSearch) leaf(l labelling) bool {
	if cs.mode == modeCanonicity {
		return false
	}
	switch cs.rel[cs.limit] {
	case -1:
		cs.best = append(cs.best[:0], cs.cur...)
		cs.labs = []labelling{l}
		for i := range cs.rel {
			cs.rel[i] = 0
		}
	case 0:
		if cs.keep {
			cs.labs = append(cs.labs, l)
		}
	}
	return false
}

// Relabel returns the image of p under iso.
func (p *FacetPairing) Relabel(iso Isomorphism) (*FacetPairing, error) {
	if len(iso.SimpImage) != p.size || len(iso.FacetPerm) != p.size {
		return nil, pairErrorf("Relabel", ErrInvalidArgument, "isomorphism acts on %d simplices, pairing has %d", len(iso.SimpImage), p.size)
	}
	seen := make([]bool, p.size)
	for s, t := range iso.SimpImage {
		if t < 0 || t >= p.size || seen[t] || iso.FacetPerm[s].Size() != p.dim+1 {
			return nil, pairErrorf("Relabel", ErrInvalidArgument, "simplex %d has no valid image", s)
		}
		seen[t] = true
	}
	q := newPairing(p.dim, p.size)
	for s := 0; s < p.size; s++ {
		for f := 0; f <= p.dim; f++ {
			d := p.Dest(s, f)
			if d.Simp != p.size {
				d = FacetSpec{Simp: iso.SimpImage[d.Simp], Facet: iso.FacetPerm[d.Simp].Image(d.Facet)}
			}
			q.dest[q.index(iso.SimpImage[s], iso.FacetPerm[s].Image(f))] = d
		}
	}
	return q, nil
}

// Canonical returns the canonical form of p together with an isomorphism
// carrying p onto it.
func (p *FacetPairing) Canonical() (*FacetPairing, Isomorphism) {
	cs := newSearch(p, modeMinimise)
	cs.start()
	q := &FacetPairing{dim: p.dim, size: p.size, dest: cs.best}
	return q, cs.labs[0].isomorphism(p.dim + 1)
}

// IsCanonical reports whether p equals its canonical form.
func (p *FacetPairing) IsCanonical() bool {
	cs := newSearch(p, modeCanonicity)
	cs.start()
	return !cs.smaller
}

// Automorphisms returns every isomorphism from p to itself, the identity
// first.
func (p *FacetPairing) Automorphisms() []Isomorphism {
	d1 := p.dim + 1
	cs := newSearch(p, modeMinimise)
	cs.keep = true
	cs.start()
	base := cs.labs[0].isomorphism(d1).Inverse()
	out := make([]Isomorphism, len(cs.labs))
	for i, l := range cs.labs {
		out[i] = base.Compose(l.isomorphism(d1))
	}
	return out
}

// prefixIsCanonical reports whether no relabelling of the first rows
// simplices, decided without looking at unmatched facets, reads smaller
// than p. Every completion of a pairing failing this test is non-canonical.
func (p *FacetPairing) prefixIsCanonical(rows int) bool {
	cs := newSearch(p, modeCanonicity)
	cs.partial = true
	cs.limit = rows * (p.dim + 1)
	cs.start()
	return !cs.smaller
}

// IsomorphicTo reports whether p and q are relabellings of each other.
func (p *FacetPairing) IsomorphicTo(q *FacetPairing) bool {
	if p.dim != q.dim || p.size != q.size {
		return false
	}
	a, _ := p.Canonical()
	b, _ := q.Canonical()
	return a.Equal(b)
}
