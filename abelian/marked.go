package abelian

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/vector"
)

// MarkedGroup is the homology ker(M) / im(N) of a chain complex
// Z^k --N--> Z^n --M--> Z^m together with the coordinate changes needed to
// express any cycle in terms of the group's generators.
//
// Generators are numbered torsion first (in invariant-factor order) and then
// the free summands.
type MarkedGroup struct {
	n       int
	out, in *matrix.Dense

	outRank  int
	outRight *matrix.Dense // R with L·M·R = SNF(M)
	outRInv  *matrix.Dense // R⁻¹

	inLeft    *matrix.Dense // L2 with L2·N''·R2 = SNF(N'')
	inLeftInv *matrix.Dense
	inRank    int
	diag      []integer.Integer // SNF(N'') diagonal, length inRank

	group Group
}

// NewMarked builds the marked group ker(out) / im(in). out is m×n, in is n×k
// and out·in must vanish.
func NewMarked(out, in *matrix.Dense) (*MarkedGroup, error) {
	if out.Cols() != in.Rows() {
		return nil, fmt.Errorf("%w: %d×%d after %d×%d", ErrNotChainComplex, out.Rows(), out.Cols(), in.Rows(), in.Cols())
	}
	prod, err := out.Mul(in)
	if err != nil {
		return nil, err
	}
	if !prod.IsZero() {
		return nil, fmt.Errorf("%w: composite is non-zero", ErrNotChainComplex)
	}
	mg := &MarkedGroup{n: out.Cols(), out: out.Clone(), in: in.Clone()}

	snfM := out.Clone()
	_, _, mg.outRight, mg.outRInv = snfM.MetricalSmithNormalForm()
	for _, d := range snfM.Diagonal() {
		if !d.IsZero() {
			mg.outRank++
		}
	}

	// Express im(N) in the kernel coordinates (R⁻¹x)[outRank:].
	nPrime, err := mg.outRInv.Mul(in)
	if err != nil {
		return nil, err
	}
	kerDim := mg.n - mg.outRank
	rows := make([]int, kerDim)
	for i := range rows {
		rows[i] = mg.outRank + i
	}
	cols := make([]int, in.Cols())
	for j := range cols {
		cols[j] = j
	}
	nKer, err := nPrime.Submatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	mg.inLeft, mg.inLeftInv, _, _ = nKer.MetricalSmithNormalForm()
	for _, d := range nKer.Diagonal() {
		if d.IsZero() {
			continue
		}
		mg.diag = append(mg.diag, d)
		mg.inRank++
	}

	mg.group.rank = kerDim - mg.inRank
	for _, d := range mg.diag {
		if d.CmpInt64(1) > 0 {
			mg.group.factors = append(mg.group.factors, d)
		}
	}
	return mg, nil
}

// Group returns the underlying unmarked group.
func (mg *MarkedGroup) Group() Group { return mg.group }

// ChainDim returns n, the rank of the chain group containing the cycles.
func (mg *MarkedGroup) ChainDim() int { return mg.n }

// CountGenerators returns the number of generators (torsion plus free).
func (mg *MarkedGroup) CountGenerators() int {
	return len(mg.group.factors) + mg.group.rank
}

// firstTorsion is the index in the SNF(N'') diagonal of the first factor > 1.
func (mg *MarkedGroup) firstTorsion() int { return mg.inRank - len(mg.group.factors) }

// IsCycle reports whether out·x == 0.
func (mg *MarkedGroup) IsCycle(x vector.Vector) bool {
	if len(x) != mg.n {
		return false
	}
	img, err := mg.out.MulVec(x)
	if err != nil {
		return false
	}
	return vector.Vector(img).IsZero()
}

// SNFRep returns the coordinates of the homology class of cycle x:
// torsion coordinates reduced into [0, d) followed by free coordinates.
func (mg *MarkedGroup) SNFRep(x vector.Vector) (vector.Vector, error) {
	if !mg.IsCycle(x) {
		return nil, ErrNotCycle
	}
	y, err := mg.outRInv.MulVec(x)
	if err != nil {
		return nil, err
	}
	z, err := mg.inLeft.MulVec(y[mg.outRank:])
	if err != nil {
		return nil, err
	}
	out := make(vector.Vector, 0, mg.CountGenerators())
	for i := mg.firstTorsion(); i < mg.inRank; i++ {
		r, err := z[i].Mod(mg.diag[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	out = append(out, z[mg.inRank:]...)
	return out, nil
}

// CycleRep returns a cycle in Z^n representing generator g.
func (mg *MarkedGroup) CycleRep(g int) (vector.Vector, error) {
	if g < 0 || g >= mg.CountGenerators() {
		return nil, fmt.Errorf("%w: %d", ErrBadGenerator, g)
	}
	kerDim := mg.n - mg.outRank
	z := make([]integer.Integer, kerDim)
	for i := range z {
		z[i] = integer.Zero
	}
	z[mg.firstTorsion()+g] = integer.One
	yTail, err := mg.inLeftInv.MulVec(z)
	if err != nil {
		return nil, err
	}
	y := make([]integer.Integer, mg.n)
	for i := range y {
		y[i] = integer.Zero
	}
	copy(y[mg.outRank:], yTail)
	x, err := mg.outRight.MulVec(y)
	if err != nil {
		return nil, err
	}
	return vector.Vector(x), nil
}

// torsionOrder returns the order of generator g, or 0 for a free generator.
func (mg *MarkedGroup) torsionOrder(g int) integer.Integer {
	if g < len(mg.group.factors) {
		return mg.group.factors[g]
	}
	return integer.Zero
}
