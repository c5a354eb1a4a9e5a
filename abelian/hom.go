package abelian

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/vector"
)

// HomMarked is a homomorphism between marked groups induced by a chain map.
type HomMarked struct {
	dom, ran *MarkedGroup
	chain    *matrix.Dense // ran.ChainDim() × dom.ChainDim()
	reduced  *matrix.Dense // ran generators × dom generators
}

// NewHomMarked builds the map on homology induced by the chain-level matrix
// chain, which must send cycles of dom to cycles of ran.
func NewHomMarked(dom, ran *MarkedGroup, chain *matrix.Dense) (*HomMarked, error) {
	if chain.Rows() != ran.ChainDim() || chain.Cols() != dom.ChainDim() {
		return nil, fmt.Errorf("%w: chain map is %d×%d, want %d×%d",
			matrix.ErrDimensionMismatch, chain.Rows(), chain.Cols(), ran.ChainDim(), dom.ChainDim())
	}
	h := &HomMarked{dom: dom, ran: ran, chain: chain.Clone()}
	h.reduced = matrix.Zeros(ran.CountGenerators(), dom.CountGenerators())
	for g := 0; g < dom.CountGenerators(); g++ {
		cyc, err := dom.CycleRep(g)
		if err != nil {
			return nil, err
		}
		img, err := chain.MulVec(cyc)
		if err != nil {
			return nil, err
		}
		rep, err := ran.SNFRep(img)
		if err != nil {
			return nil, fmt.Errorf("abelian.NewHomMarked: image of generator %d: %w", g, err)
		}
		for i, v := range rep {
			h.reduced.SetEntry(i, g, v)
		}
	}
	return h, nil
}

// Domain returns the source group.
func (h *HomMarked) Domain() *MarkedGroup { return h.dom }

// Range returns the target group.
func (h *HomMarked) Range() *MarkedGroup { return h.ran }

// ReducedMatrix returns the matrix of the map in generator coordinates.
func (h *HomMarked) ReducedMatrix() *matrix.Dense { return h.reduced.Clone() }

// relations returns the generator relations of mg as vectors: order·e_i for
// each torsion generator.
func relations(mg *MarkedGroup) []vector.Vector {
	var out []vector.Vector
	for g := 0; g < len(mg.group.factors); g++ {
		v := vector.New(mg.CountGenerators())
		v[g] = mg.torsionOrder(g)
		out = append(out, v)
	}
	return out
}

func (h *HomMarked) imageColumns() []vector.Vector {
	out := make([]vector.Vector, h.reduced.Cols())
	for j := range out {
		col := vector.New(h.reduced.Rows())
		for i := range col {
			col[i] = h.reduced.Entry(i, j)
		}
		out[j] = col
	}
	return out
}

// Image returns the image subgroup.
func (h *HomMarked) Image() (Group, error) {
	rel := relations(h.ran)
	span := append(h.imageColumns(), rel...)
	return latticeQuotient(h.ran.CountGenerators(), span, rel)
}

// Cokernel returns ran / image.
func (h *HomMarked) Cokernel() (Group, error) {
	span := append(h.imageColumns(), relations(h.ran)...)
	return presentation(h.ran.CountGenerators(), span)
}

// Kernel returns the kernel subgroup.
func (h *HomMarked) Kernel() (Group, error) {
	dg, rg := h.dom.CountGenerators(), h.ran.CountGenerators()
	// Solve reduced·x ∈ span(relations of ran): the integer kernel of
	// [reduced | -C] projected onto x.
	ranRel := relations(h.ran)
	sys := matrix.Zeros(rg, dg+len(ranRel))
	for i := 0; i < rg; i++ {
		for j := 0; j < dg; j++ {
			sys.SetEntry(i, j, h.reduced.Entry(i, j))
		}
	}
	for k, r := range ranRel {
		for i := 0; i < rg; i++ {
			sys.SetEntry(i, dg+k, r[i].Neg())
		}
	}
	basis := integerKernel(sys)
	span := make([]vector.Vector, len(basis))
	for i, b := range basis {
		span[i] = b[:dg]
	}
	return latticeQuotient(dg, span, relations(h.dom))
}

// IsEpic reports whether the map is onto.
func (h *HomMarked) IsEpic() (bool, error) {
	c, err := h.Cokernel()
	return err == nil && c.IsTrivial(), err
}

// IsMonic reports whether the map is injective.
func (h *HomMarked) IsMonic() (bool, error) {
	k, err := h.Kernel()
	return err == nil && k.IsTrivial(), err
}

// IsIsomorphism reports whether the map is bijective.
func (h *HomMarked) IsIsomorphism() (bool, error) {
	epi, err := h.IsEpic()
	if err != nil || !epi {
		return false, err
	}
	return h.IsMonic()
}

// IsZero reports whether every generator maps to zero.
func (h *HomMarked) IsZero() bool {
	for i := 0; i < h.reduced.Rows(); i++ {
		for j := 0; j < h.reduced.Cols(); j++ {
			v := h.reduced.Entry(i, j)
			if i < len(h.ran.group.factors) {
				v, _ = v.Mod(h.ran.torsionOrder(i))
			}
			if !v.IsZero() {
				return false
			}
		}
	}
	return true
}

func presentation(gens int, rows []vector.Vector) (Group, error) {
	m := matrix.Zeros(len(rows), gens)
	for i, r := range rows {
		for j := 0; j < gens; j++ {
			m.SetEntry(i, j, r[j])
		}
	}
	return FromPresentation(gens, m)
}

// integerKernel returns a basis of {x ∈ Z^c : m·x = 0}.
func integerKernel(m *matrix.Dense) []vector.Vector {
	work := m.Clone()
	_, _, right, _ := work.MetricalSmithNormalForm()
	rank := 0
	for _, d := range work.Diagonal() {
		if !d.IsZero() {
			rank++
		}
	}
	var out []vector.Vector
	for j := rank; j < m.Cols(); j++ {
		col := vector.New(m.Cols())
		for i := range col {
			col[i] = right.Entry(i, j)
		}
		out = append(out, col)
	}
	return out
}

// latticeQuotient returns L(span) / L(sub) where L(sub) ⊆ L(span) ⊆ Z^dim.
func latticeQuotient(dim int, span, sub []vector.Vector) (Group, error) {
	basis := matrix.Zeros(len(span), dim)
	for i, v := range span {
		for j := 0; j < dim; j++ {
			basis.SetEntry(i, j, v[j])
		}
	}
	rank, pivots := basis.RowEchelonForm()
	coords := matrix.Zeros(len(sub), rank)
	for s, v := range sub {
		rest := v.Clone()
		for i := 0; i < rank; i++ {
			p := pivots[i]
			c, err := rest[p].DivExact(basis.Entry(i, p))
			if err != nil {
				return Group{}, fmt.Errorf("abelian: sublattice is not contained in lattice: %w", err)
			}
			coords.SetEntry(s, i, c)
			for j := 0; j < dim; j++ {
				rest[j] = rest[j].Sub(c.Mul(basis.Entry(i, j)))
			}
		}
		if !rest.IsZero() {
			return Group{}, fmt.Errorf("abelian: sublattice is not contained in lattice: %w", integer.ErrArithmetic)
		}
	}
	return FromPresentation(rank, coords)
}
