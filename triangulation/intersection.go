package triangulation

import (
	"github.com/katalvlaran/trimanifold/forms"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/perm"
)

// IntersectionForm returns the intersection form of a closed orientable
// 4-manifold: the cup product pairing H² × H² → Z evaluated on the
// fundamental class, on H² modulo torsion. The basis is arbitrary.
//
// In a pentachoron of orientation +1 the triangles (0,1,2) and (2,3,4)
// meet positively, so reflecting the triangulation negates the signature.
//
// The pairing is computed on the barycentric subdivision. Each face f of
// a pentachoron maps its barycentre to a chosen vertex of f (its vertex 0
// in face order), which is a simplicial approximation of the identity; the
// cochains of t pulled back along it are cupped with the Alexander-Whitney
// formula on the subdivision, whose vertices are ordered by dimension.
func (t *Triangulation) IntersectionForm() (*forms.Form, error) {
	switch {
	case t.dim != 4:
		return nil, triErrorf(opIntersect, ErrNotApplicable, "dimension %d", t.dim)
	case len(t.simplices) == 0:
		return nil, triErrorf(opIntersect, ErrNotApplicable, "empty triangulation")
	case !t.IsValid():
		return nil, triErrorf(opIntersect, ErrNotApplicable, "invalid triangulation")
	case !t.IsOrientable():
		return nil, triErrorf(opIntersect, ErrNotApplicable, "non-orientable triangulation")
	case !t.IsClosed():
		return nil, triErrorf(opIntersect, ErrNotApplicable, "triangulation has boundary")
	}

	z, err := kernelBasis(t.boundaryMap(3).Transpose())
	if err != nil {
		return nil, triErrorf(opIntersect, err, "2-cocycles")
	}
	cz, err := t.cupPairing().Mul(z)
	if err != nil {
		return nil, triErrorf(opIntersect, err, "cup product")
	}
	g, err := z.Transpose().Mul(cz)
	if err != nil {
		return nil, triErrorf(opIntersect, err, "cup product")
	}
	q, err := nondegeneratePart(g)
	if err != nil {
		return nil, triErrorf(opIntersect, err, "radical")
	}
	f, err := forms.New(q)
	if err != nil {
		return nil, triErrorf(opIntersect, err, "pairing on H²")
	}
	return f, nil
}

// cupPairing returns the matrix C with C[a][b] = ⟨a ∪ b, [M]⟩ for the
// elementary 2-cochains on triangles a and b, taken on the subdivision.
// C restricted to cocycles is symmetric.
func (t *Triangulation) cupPairing() *matrix.Dense {
	sk := t.skeleton()
	c := matrix.Zeros(t.CountFaces(2), t.CountFaces(2))
	var chosen [5]int
	for _, s := range t.simplices {
		o := sk.orientation[s.index]
		for _, p := range perm.MustSn(5) {
			chosen[0] = p.Image(0)
			for k := 1; k < 4; k++ {
				chosen[k] = sk.facePerm[s.index][k][faceOfHead(4, k, p)].Image(0)
			}
			chosen[4] = 0
			front, fs := sk.triangleOf(s, chosen[0], chosen[1], chosen[2])
			if fs == 0 {
				continue
			}
			back, bs := sk.triangleOf(s, chosen[2], chosen[3], chosen[4])
			if bs == 0 {
				continue
			}
			c.AddEntry(front, back, integer.New(int64(o*p.Sign()*fs*bs)))
		}
	}
	return c
}

// triangleOf returns the triangle spanned by the ordered vertices a, b, c of
// s and the sign of that order against the triangle's own. The sign is 0
// when the vertices are not distinct.
func (sk *skeleton) triangleOf(s *Simplex, a, b, c int) (int, int) {
	if a == b || b == c || a == c {
		return 0, 0
	}
	l := []int{a, b, c}
	num := FaceNumber(4, 2, l...)
	return sk.faceIdx[s.index][2][num], headParity(l, sk.facePerm[s.index][2][num])
}

// kernelBasis returns a matrix whose columns form a basis of the integer
// kernel of m.
func kernelBasis(m *matrix.Dense) (*matrix.Dense, error) {
	cols := m.Cols()
	_, _, right, _ := m.MetricalSmithNormalForm()
	r := smithRank(m)
	return right.Submatrix(span(0, cols), span(r, cols))
}

// nondegeneratePart restricts the symmetric matrix g to a complement of
// its radical. The complement projects onto a basis of the lattice modulo
// the radical.
func nondegeneratePart(g *matrix.Dense) (*matrix.Dense, error) {
	red := g.Clone()
	_, _, right, _ := red.MetricalSmithNormalForm()
	w, err := right.Submatrix(span(0, g.Cols()), span(0, smithRank(red)))
	if err != nil {
		return nil, err
	}
	gw, err := g.Mul(w)
	if err != nil {
		return nil, err
	}
	return w.Transpose().Mul(gw)
}

// smithRank counts the non-zero diagonal entries of a matrix already in
// Smith normal form.
func smithRank(m *matrix.Dense) int {
	r := 0
	for _, d := range m.Diagonal() {
		if !d.IsZero() {
			r++
		}
	}
	return r
}

func span(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
