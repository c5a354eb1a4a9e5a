package triangulation

import (
	"slices"
	"sort"

	"github.com/katalvlaran/trimanifold/perm"
)

// canonLabel is one candidate labelling of a component: simplices in image
// order, the vertex map of each, and the code used to compare candidates.
type canonLabel struct {
	order []*Simplex
	perms []perm.Perm
	code  []int
}

// labelFrom labels the component of start by breadth-first search, giving
// start image 0 with vertex map p. Each new simplex is labelled so that the
// gluing that discovers it reads as the identity. The code lists, for each
// image simplex and image facet in turn, 0 for boundary or
// 1 + dest·(dim+1)! + (index of the image gluing).
//
// If best is non-nil the search stops as soon as the code exceeds it.
func labelFrom(start *Simplex, p perm.Perm, best []int) (canonLabel, bool) {
	d := start.tri.dim
	fact := int(perm.Factorial(d + 1))
	img := make(map[*Simplex]int)
	l := canonLabel{}
	img[start] = 0
	l.order = append(l.order, start)
	l.perms = append(l.perms, p)
	less := best == nil
	for k := 0; k < len(l.order); k++ {
		s, ps := l.order[k], l.perms[k]
		for fi := 0; fi <= d; fi++ {
			f := ps.Pre(fi)
			a := s.adj[f]
			val := 0
			if a != nil {
				g := s.gluing[f]
				j, seen := img[a]
				if !seen {
					j = len(l.order)
					img[a] = j
					l.order = append(l.order, a)
					l.perms = append(l.perms, ps.Compose(g.Inverse()))
				}
				val = 1 + j*fact + l.perms[j].Compose(g).Compose(ps.Inverse()).Index()
			}
			if !less {
				pos := len(l.code)
				switch {
				case val > best[pos]:
					return l, false
				case val < best[pos]:
					less = true
				}
			}
			l.code = append(l.code, val)
		}
	}
	return l, less
}

// canonicalComponent returns the smallest labelling of the component
// containing the given simplices.
func canonicalComponent(simps []*Simplex) canonLabel {
	sn := perm.MustSn(simps[0].tri.dim + 1)
	var best canonLabel
	for _, s := range simps {
		for _, p := range sn {
			var cand canonLabel
			var better bool
			if best.code == nil {
				cand, better = labelFrom(s, p, nil)
			} else {
				cand, better = labelFrom(s, p, best.code)
			}
			if better {
				best = cand
			}
		}
	}
	return best
}

// CanonicalIsomorphism returns the relabelling that MakeCanonical would
// apply.
func (t *Triangulation) CanonicalIsomorphism() Isomorphism {
	n := len(t.simplices)
	iso := Isomorphism{SimpImage: make([]int, n), FacetPerm: make([]perm.Perm, n)}
	var labels []canonLabel
	for _, c := range t.Components() {
		labels = append(labels, canonicalComponent(c.simplices))
	}
	sort.SliceStable(labels, func(i, j int) bool { return slices.Compare(labels[i].code, labels[j].code) < 0 })
	off := 0
	for _, l := range labels {
		for k, s := range l.order {
			iso.SimpImage[s.index] = off + k
			iso.FacetPerm[s.index] = l.perms[k]
		}
		off += len(l.order)
	}
	return iso
}

// MakeCanonical relabels t into its canonical form: each component receives
// its lexicographically smallest breadth-first labelling, and components
// are ordered by those labellings. Two triangulations are isomorphic
// exactly when their canonical forms are identical. It reports whether
// anything changed.
func (t *Triangulation) MakeCanonical() bool {
	if len(t.simplices) == 0 {
		return false
	}
	iso := t.CanonicalIsomorphism()
	if iso.IsIdentity() {
		return false
	}
	defer t.BeginChange(TopologyPreserved).End()
	t.relabel(iso)
	return true
}
