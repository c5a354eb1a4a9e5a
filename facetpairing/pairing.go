package facetpairing

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/trimanifold/bfs"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// FacetSpec names facet Facet of simplex Simp.
type FacetSpec struct {
	Simp, Facet int
}

// Compare orders facets by simplex, then by facet.
func (a FacetSpec) Compare(b FacetSpec) int {
	switch {
	case a.Simp != b.Simp:
		if a.Simp < b.Simp {
			return -1
		}
		return 1
	case a.Facet < b.Facet:
		return -1
	case a.Facet > b.Facet:
		return 1
	}
	return 0
}

// FacetPairing records, for every facet of every simplex, the facet it is
// glued to. Unmatched facets point at the boundary marker
// FacetSpec{Simp: Size(), Facet: 0}.
type FacetPairing struct {
	dim, size int
	dest      []FacetSpec
}

func checkDim(op string, dim int) error {
	if dim < 2 || dim > 4 {
		return pairErrorf(op, ErrInvalidDimension, "dimension %d", dim)
	}
	return nil
}

func newPairing(dim, n int) *FacetPairing {
	p := &FacetPairing{dim: dim, size: n, dest: make([]FacetSpec, n*(dim+1))}
	for i := range p.dest {
		p.dest[i] = FacetSpec{Simp: n}
	}
	return p
}

// New returns a pairing of n simplices with every facet unmatched.
func New(dim, n int) (*FacetPairing, error) {
	if err := checkDim("New", dim); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, pairErrorf("New", ErrInvalidArgument, "negative size %d", n)
	}
	return newPairing(dim, n), nil
}

// FromTriangulation returns the facet pairing underlying t.
func FromTriangulation(t *triangulation.Triangulation) *FacetPairing {
	p := newPairing(t.Dim(), t.Size())
	for i, d := range t.Pairing() {
		p.dest[i] = FacetSpec(d)
	}
	return p
}

// Dim returns the dimension of the simplices.
func (p *FacetPairing) Dim() int { return p.dim }

// Size returns the number of simplices.
func (p *FacetPairing) Size() int { return p.size }

func (p *FacetPairing) index(s, f int) int { return s*(p.dim+1) + f }

func (p *FacetPairing) inRange(s, f int) bool {
	return s >= 0 && s < p.size && f >= 0 && f <= p.dim
}

// Dest returns the partner of facet f of simplex s.
func (p *FacetPairing) Dest(s, f int) FacetSpec { return p.dest[p.index(s, f)] }

// IsUnmatched reports whether facet f of simplex s lies on the boundary.
func (p *FacetPairing) IsUnmatched(s, f int) bool { return p.dest[p.index(s, f)].Simp == p.size }

// Join matches facets a and b, which must both be unmatched and distinct.
func (p *FacetPairing) Join(a, b FacetSpec) error {
	if !p.inRange(a.Simp, a.Facet) || !p.inRange(b.Simp, b.Facet) {
		return pairErrorf("Join", ErrInvalidArgument, "facet out of range in %v, %v", a, b)
	}
	if a == b {
		return pairErrorf("Join", ErrInvalidArgument, "facet %v matched to itself", a)
	}
	if !p.IsUnmatched(a.Simp, a.Facet) || !p.IsUnmatched(b.Simp, b.Facet) {
		return pairErrorf("Join", ErrInvalidArgument, "facet already matched in %v, %v", a, b)
	}
	p.dest[p.index(a.Simp, a.Facet)] = b
	p.dest[p.index(b.Simp, b.Facet)] = a
	return nil
}

// IsClosed reports whether every facet is matched.
func (p *FacetPairing) IsClosed() bool {
	for _, d := range p.dest {
		if d.Simp == p.size {
			return false
		}
	}
	return true
}

// graphView exposes the pairing to package bfs, with facets as ports.
type graphView struct{ p *FacetPairing }

func (g graphView) Order() int { return g.p.size }

func (g graphView) Arcs(v int) []bfs.Arc {
	var out []bfs.Arc
	for f := 0; f <= g.p.dim; f++ {
		if d := g.p.Dest(v, f); d.Simp >= 0 && d.Simp < g.p.size {
			out = append(out, bfs.Arc{To: d.Simp, Port: f})
		}
	}
	return out
}

// CountComponents returns the number of connected components.
func (p *FacetPairing) CountComponents() int {
	_, count, _, err := bfs.Components(graphView{p})
	if err != nil {
		panic("facetpairing: components: " + err.Error())
	}
	return count
}

// IsConnected reports whether the pairing has at most one component.
func (p *FacetPairing) IsConnected() bool { return p.CountComponents() <= 1 }

// Clone returns a deep copy.
func (p *FacetPairing) Clone() *FacetPairing {
	q := &FacetPairing{dim: p.dim, size: p.size, dest: make([]FacetSpec, len(p.dest))}
	copy(q.dest, p.dest)
	return q
}

// Equal reports whether p and q are identical, not merely isomorphic.
func (p *FacetPairing) Equal(q *FacetPairing) bool {
	if p.dim != q.dim || p.size != q.size {
		return false
	}
	for i := range p.dest {
		if p.dest[i] != q.dest[i] {
			return false
		}
	}
	return true
}

// multiplicity returns how many facets of a are matched to facets of b.
// A loop at a contributes two to multiplicity(a, a).
func (p *FacetPairing) multiplicity(a, b int) int {
	n := 0
	for f := 0; f <= p.dim; f++ {
		if p.Dest(a, f).Simp == b {
			n++
		}
	}
	return n
}

// TextRep writes every destination as "simp facet", space separated.
func (p *FacetPairing) TextRep() string {
	var b strings.Builder
	for i, d := range p.dest {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(d.Simp))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(d.Facet))
	}
	return b.String()
}

// String returns the text representation.
func (p *FacetPairing) String() string { return p.TextRep() }

// FromTextRep parses the output of TextRep for the given dimension. The
// pairing must be symmetric.
func FromTextRep(dim int, text string) (*FacetPairing, error) {
	if err := checkDim("FromTextRep", dim); err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	per := 2 * (dim + 1)
	if len(fields)%per != 0 {
		return nil, pairErrorf("FromTextRep", ErrInvalidArgument, "%d fields is not a multiple of %d", len(fields), per)
	}
	p := newPairing(dim, len(fields)/per)
	for i := range p.dest {
		s, err1 := strconv.Atoi(fields[2*i])
		f, err2 := strconv.Atoi(fields[2*i+1])
		if err1 != nil || err2 != nil {
			return nil, pairErrorf("FromTextRep", ErrInvalidArgument, "bad number near field %d", 2*i)
		}
		switch {
		case s == p.size && f == 0:
		case !p.inRange(s, f):
			return nil, pairErrorf("FromTextRep", ErrInvalidArgument, "destination %d %d out of range", s, f)
		}
		p.dest[i] = FacetSpec{Simp: s, Facet: f}
	}
	for i, d := range p.dest {
		if d.Simp == p.size {
			continue
		}
		src := FacetSpec{Simp: i / (dim + 1), Facet: i % (dim + 1)}
		if d == src || p.dest[p.index(d.Simp, d.Facet)] != src {
			return nil, pairErrorf("FromTextRep", ErrInvalidArgument, "facet %v is not matched symmetrically", src)
		}
	}
	return p, nil
}

// WriteDot writes the underlying multigraph in graphviz format. Vertex
// names carry the given prefix so that several graphs can share one file.
func (p *FacetPairing) WriteDot(w io.Writer, prefix string) error {
	if prefix == "" {
		prefix = "g"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s {\n", prefix)
	b.WriteString("  node [shape=circle, style=filled, fillcolor=white];\n")
	for s := 0; s < p.size; s++ {
		fmt.Fprintf(&b, "  %s_%d [label=\"%d\"];\n", prefix, s, s)
	}
	for s := 0; s < p.size; s++ {
		for f := 0; f <= p.dim; f++ {
			d := p.Dest(s, f)
			if d.Simp == p.size || d.Compare(FacetSpec{Simp: s, Facet: f}) < 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s_%d -- %s_%d;\n", prefix, s, prefix, d.Simp)
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Dot returns the graphviz description written by WriteDot.
func (p *FacetPairing) Dot(prefix string) string {
	var b strings.Builder
	_ = p.WriteDot(&b, prefix)
	return b.String()
}
