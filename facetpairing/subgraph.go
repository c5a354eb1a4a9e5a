package facetpairing

// The detectors below apply to dimension 3, where a pairing is a 4-valent
// multigraph with loops. Census generation uses them to discard pairings
// that cannot underlie a minimal triangulation of a closed irreducible
// 3-manifold. Boundary facets never take part in a pattern.

func (p *FacetPairing) require3(op string) error {
	if p.dim != 3 {
		return pairErrorf(op, ErrNotApplicable, "dimension %d, need 3", p.dim)
	}
	return nil
}

// neighbours returns the destination simplices of the facets of s,
// skipping the facets in skip and the boundary.
func (p *FacetPairing) neighbours(s int, skip ...int) []int {
	var out []int
next:
	for f := 0; f <= p.dim; f++ {
		for _, g := range skip {
			if f == g {
				continue next
			}
		}
		if d := p.Dest(s, f); d.Simp != p.size {
			out = append(out, d.Simp)
		}
	}
	return out
}

func distinct(vs ...int) bool {
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			if vs[i] == vs[j] {
				return false
			}
		}
	}
	return true
}

// HasTripleEdge reports whether two distinct simplices share at least
// three facet gluings.
func (p *FacetPairing) HasTripleEdge() (bool, error) {
	if err := p.require3("HasTripleEdge"); err != nil {
		return false, err
	}
	for s := 0; s < p.size; s++ {
		for t := s + 1; t < p.size; t++ {
			if p.multiplicity(s, t) >= 3 {
				return true, nil
			}
		}
	}
	return false, nil
}

// chain is a one-ended chain: a loop followed by double edges.
type chain struct {
	end  int
	free [2]int
	used []int
}

func (c chain) contains(s int) bool {
	for _, u := range c.used {
		if u == s {
			return true
		}
	}
	return false
}

func (c chain) disjoint(o chain) bool {
	for _, u := range c.used {
		if o.contains(u) {
			return false
		}
	}
	return true
}

// followChain follows the chain that begins at a loop of s. ok is false if
// s has no loop or the chain closes up on itself.
func (p *FacetPairing) followChain(s int) (chain, bool) {
	var loop []int
	for f := 0; f <= p.dim; f++ {
		if p.Dest(s, f).Simp == s {
			loop = append(loop, f)
		}
	}
	if len(loop) != 2 {
		return chain{}, false
	}
	c := chain{end: s, used: []int{s}}
	i := 0
	for f := 0; f <= p.dim; f++ {
		if f != loop[0] && f != loop[1] {
			c.free[i] = f
			i++
		}
	}
	for {
		a, b := p.Dest(c.end, c.free[0]), p.Dest(c.end, c.free[1])
		if a.Simp == p.size || b.Simp == p.size || a.Simp != b.Simp {
			return c, true
		}
		if a.Simp == c.end || c.contains(a.Simp) {
			return chain{}, false
		}
		c.end = a.Simp
		c.used = append(c.used, a.Simp)
		i = 0
		for f := 0; f <= p.dim; f++ {
			if f != a.Facet && f != b.Facet {
				c.free[i] = f
				i++
			}
		}
	}
}

func (p *FacetPairing) chains() []chain {
	var out []chain
	for s := 0; s < p.size; s++ {
		if c, ok := p.followChain(s); ok {
			out = append(out, c)
		}
	}
	return out
}

func (p *FacetPairing) freeDests(c chain) (int, int) {
	return p.Dest(c.end, c.free[0]).Simp, p.Dest(c.end, c.free[1]).Simp
}

// HasBrokenDoubleEndedChain reports whether two disjoint one-ended chains
// have their end simplices joined by exactly one gluing.
func (p *FacetPairing) HasBrokenDoubleEndedChain() (bool, error) {
	if err := p.require3("HasBrokenDoubleEndedChain"); err != nil {
		return false, err
	}
	cs := p.chains()
	for i := range cs {
		for j := i + 1; j < len(cs); j++ {
			if cs[i].end == cs[j].end || !cs[i].disjoint(cs[j]) {
				continue
			}
			x, y := p.freeDests(cs[i])
			n := 0
			if x == cs[j].end {
				n++
			}
			if y == cs[j].end {
				n++
			}
			if n == 1 {
				return true, nil
			}
		}
	}
	return false, nil
}

// HasOneEndedChainWithDoubleHandle reports whether the end of a one-ended
// chain is joined to two distinct simplices that are themselves joined by
// exactly two gluings.
func (p *FacetPairing) HasOneEndedChainWithDoubleHandle() (bool, error) {
	if err := p.require3("HasOneEndedChainWithDoubleHandle"); err != nil {
		return false, err
	}
	for _, c := range p.chains() {
		x, y := p.freeDests(c)
		if x == p.size || y == p.size || x == y || c.contains(x) || c.contains(y) {
			continue
		}
		if p.multiplicity(x, y) == 2 {
			return true, nil
		}
	}
	return false, nil
}

// HasSingleStar reports whether some single gluing joins simplices u and v
// whose remaining six neighbours are all distinct.
func (p *FacetPairing) HasSingleStar() (bool, error) {
	if err := p.require3("HasSingleStar"); err != nil {
		return false, err
	}
	for u := 0; u < p.size; u++ {
		for f := 0; f <= p.dim; f++ {
			d := p.Dest(u, f)
			if d.Simp == p.size || d.Simp <= u {
				continue
			}
			nu := p.neighbours(u, f)
			nv := p.neighbours(d.Simp, d.Facet)
			if len(nu) != 3 || len(nv) != 3 {
				continue
			}
			all := append(append([]int{u, d.Simp}, nu...), nv...)
			if distinct(all...) {
				return true, nil
			}
		}
	}
	return false, nil
}

// doubleFacets returns the two facets of u glued to v, if there are
// exactly two.
func (p *FacetPairing) doubleFacets(u, v int) ([]int, bool) {
	var fs []int
	for f := 0; f <= p.dim; f++ {
		if p.Dest(u, f).Simp == v {
			fs = append(fs, f)
		}
	}
	return fs, len(fs) == 2
}

// HasDoubleStar reports whether a double edge u = v has its four other
// neighbours all distinct.
func (p *FacetPairing) HasDoubleStar() (bool, error) {
	if err := p.require3("HasDoubleStar"); err != nil {
		return false, err
	}
	for u := 0; u < p.size; u++ {
		for v := u + 1; v < p.size; v++ {
			fu, ok := p.doubleFacets(u, v)
			if !ok {
				continue
			}
			fv, _ := p.doubleFacets(v, u)
			nu := p.neighbours(u, fu...)
			nv := p.neighbours(v, fv...)
			if len(nu) != 2 || len(nv) != 2 {
				continue
			}
			if distinct(u, v, nu[0], nu[1], nv[0], nv[1]) {
				return true, nil
			}
		}
	}
	return false, nil
}

// HasDoubleSquare reports whether four distinct simplices form a square
// a = b - c = d - a of alternating double and single edges.
func (p *FacetPairing) HasDoubleSquare() (bool, error) {
	if err := p.require3("HasDoubleSquare"); err != nil {
		return false, err
	}
	for a := 0; a < p.size; a++ {
		for b := 0; b < p.size; b++ {
			if b == a || p.multiplicity(a, b) != 2 {
				continue
			}
			for _, c := range p.neighbours(b) {
				if !distinct(a, b, c) || p.multiplicity(b, c) != 1 {
					continue
				}
				for _, d := range p.neighbours(c) {
					if !distinct(a, b, c, d) || p.multiplicity(c, d) != 2 {
						continue
					}
					if p.multiplicity(d, a) == 1 {
						return true, nil
					}
				}
			}
		}
	}
	return false, nil
}
