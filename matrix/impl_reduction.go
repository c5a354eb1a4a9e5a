// SPDX-License-Identifier: MIT

// Package matrix - exact reductions: echelon form, Smith normal form, ranks.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/integer"
)

const (
	ctxEchelon  = "RowEchelonForm"
	ctxRankModP = "RankModP"
)

// RowEchelonForm reduces m in place to Hermite normal form using unimodular
// row operations.
// MAIN DESCRIPTION:
//   - Produce an upper staircase where each pivot is positive and every entry
//     above a pivot lies in [0, pivot).
//
// Implementation:
//   - Stage 1: per column, bring the non-zero entry of least absolute value
//     (rows at or below the current pivot row) into the pivot row.
//   - Stage 2: clear the column below with exact quotients, or with a
//     Bezout combination when the pivot does not divide the entry.
//   - Stage 3: normalise the pivot sign and reduce the entries above it.
//
// Returns:
//   - rank: number of pivots.
//   - pivots: the pivot column of each non-zero row, in order.
//
// Complexity:
//   - O(r·c·min(r,c)) elementary operations.
func (m *Dense) RowEchelonForm() (rank int, pivots []int) {
	rd := reducer{m: m}
	return rd.echelon()
}

// RowEchelonFormTracked is RowEchelonForm that also applies every row
// operation to left and the inverse operation to leftInv. Callers usually
// pass identity matrices, obtaining left·M0 = M and leftInv = left⁻¹.
//
// Errors:
//   - ErrDimensionMismatch if left or leftInv is not Rows()×Rows().
func (m *Dense) RowEchelonFormTracked(left, leftInv *Dense) (int, []int, error) {
	if left == nil || leftInv == nil || left.r != m.r || left.c != m.r || leftInv.r != m.r || leftInv.c != m.r {
		return 0, nil, matrixErrorf(ctxEchelon, ErrDimensionMismatch)
	}
	rd := reducer{m: m, left: left, leftInv: leftInv}
	rank, piv := rd.echelon()
	return rank, piv, nil
}

func (rd *reducer) echelon() (int, []int) {
	m := rd.m
	row := 0
	pivots := make([]int, 0, min(m.r, m.c))
	for col := 0; col < m.c && row < m.r; col++ {
		p := -1
		for i := row; i < m.r; i++ {
			v := m.Entry(i, col)
			if v.IsZero() {
				continue
			}
			if p < 0 || v.Abs().Cmp(m.Entry(p, col).Abs()) < 0 {
				p = i
			}
		}
		if p < 0 {
			continue
		}
		rd.swapRows(row, p)
		for i := row + 1; i < m.r; i++ {
			b := m.Entry(i, col)
			if b.IsZero() {
				continue
			}
			a := m.Entry(row, col)
			if a.Divides(b) {
				q, _ := b.Div(a)
				rd.addRow(i, row, q.Neg())
				continue
			}
			u, v, s, t := bezout(a, b)
			rd.combRows(row, i, u, v, s, t)
		}
		if m.Entry(row, col).Sign() < 0 {
			rd.negateRow(row)
		}
		piv := m.Entry(row, col)
		for i := 0; i < row; i++ {
			q := floorDiv(m.Entry(i, col), piv)
			rd.addRow(i, row, q.Neg())
		}
		pivots = append(pivots, col)
		row++
	}
	return row, pivots
}

// floorDiv returns ⌊x / d⌋ for d > 0.
func floorDiv(x, d integer.Integer) integer.Integer {
	r, _ := x.Mod(d)
	q, _ := x.Sub(r).Div(d)
	return q
}

// Rank returns the rank of m over Q without modifying m.
func (m *Dense) Rank() int {
	rank, _ := m.Clone().RowEchelonForm()
	return rank
}

// RankModP returns the rank of m over the field Z/p. p must be prime for the
// result to be meaningful; values below 2 yield ErrBadModulus.
func (m *Dense) RankModP(p int64) (int, error) {
	if p < 2 {
		return 0, matrixErrorf(ctxRankModP, fmt.Errorf("%w: %d", ErrBadModulus, p))
	}
	mod := integer.New(p)
	a := make([][]int64, m.r)
	for i := range a {
		a[i] = make([]int64, m.c)
		for j := range a[i] {
			v, err := m.Entry(i, j).Mod(mod)
			if err != nil {
				return 0, matrixErrorf(ctxRankModP, err)
			}
			a[i][j], _ = v.Int64()
		}
	}
	rank := 0
	for col := 0; col < m.c && rank < m.r; col++ {
		p0 := -1
		for i := rank; i < m.r; i++ {
			if a[i][col] != 0 {
				p0 = i
				break
			}
		}
		if p0 < 0 {
			continue
		}
		a[rank], a[p0] = a[p0], a[rank]
		inv, err := integer.ModInverse(a[rank][col], p)
		if err != nil {
			return 0, matrixErrorf(ctxRankModP, err)
		}
		for i := rank + 1; i < m.r; i++ {
			if a[i][col] == 0 {
				continue
			}
			f := mulMod(a[i][col], inv, p)
			for j := col; j < m.c; j++ {
				a[i][j] = (a[i][j] - mulMod(f, a[rank][j], p) + p) % p
			}
		}
		rank++
	}
	return rank, nil
}

func mulMod(a, b, p int64) int64 {
	v, _ := integer.New(a).Mul(integer.New(b)).Mod(integer.New(p))
	r, _ := v.Int64()
	return r
}

// SmithNormalForm replaces m with its Smith normal form
// diag(d1, d2, ..., dk, 0, ..., 0) where every di >= 1 and di | di+1.
// MAIN DESCRIPTION:
//   - Combined row-and-column reduction with smallest-pivot selection.
//
// Implementation:
//   - Stage 1: move the smallest non-zero entry of the trailing submatrix to
//     the diagonal position (k, k).
//   - Stage 2: clear column k and row k using exact quotients where the pivot
//     divides, Bezout combinations otherwise; repeat until both are clear.
//   - Stage 3: if some trailing entry is not divisible by the pivot, add its
//     row into the pivot row and return to Stage 2. The pivot strictly
//     decreases in absolute value each time, so this terminates.
//   - Stage 4: make the pivot positive.
//
// Complexity:
//   - O(r·c·min(r,c)) elementary operations per pivot-repair round.
func (m *Dense) SmithNormalForm() {
	rd := reducer{m: m}
	rd.smith()
}

// MetricalSmithNormalForm reduces m in place to Smith normal form and returns
// unimodular matrices with left·M0·right = SNF, left·leftInv = I and
// right·rightInv = I, where M0 is the original matrix.
func (m *Dense) MetricalSmithNormalForm() (left, leftInv, right, rightInv *Dense) {
	rd := reducer{
		m:        m,
		left:     NewIdentity(m.r),
		leftInv:  NewIdentity(m.r),
		right:    NewIdentity(m.c),
		rightInv: NewIdentity(m.c),
	}
	rd.smith()
	return rd.left, rd.leftInv, rd.right, rd.rightInv
}

func (rd *reducer) smith() {
	m := rd.m
	n := min(m.r, m.c)
	for k := 0; k < n; k++ {
		pi, pj := -1, -1
		var best integer.Integer
		for i := k; i < m.r; i++ {
			for j := k; j < m.c; j++ {
				v := m.Entry(i, j)
				if v.IsZero() {
					continue
				}
				if pi < 0 || v.Abs().Cmp(best) < 0 {
					pi, pj, best = i, j, v.Abs()
				}
			}
		}
		if pi < 0 {
			return
		}
		rd.swapRows(k, pi)
		rd.swapCols(k, pj)

		for {
			rd.clearColumn(k)
			rd.clearRow(k)
			if !rd.columnClear(k) {
				continue
			}
			if !rd.repairDivisibility(k) {
				break
			}
		}
		if m.Entry(k, k).Sign() < 0 {
			rd.negateRow(k)
		}
	}
}

func (rd *reducer) clearColumn(k int) {
	m := rd.m
	for i := k + 1; i < m.r; i++ {
		b := m.Entry(i, k)
		if b.IsZero() {
			continue
		}
		a := m.Entry(k, k)
		if a.Divides(b) {
			q, _ := b.Div(a)
			rd.addRow(i, k, q.Neg())
			continue
		}
		u, v, s, t := bezout(a, b)
		rd.combRows(k, i, u, v, s, t)
	}
}

func (rd *reducer) clearRow(k int) {
	m := rd.m
	for j := k + 1; j < m.c; j++ {
		b := m.Entry(k, j)
		if b.IsZero() {
			continue
		}
		a := m.Entry(k, k)
		if a.Divides(b) {
			q, _ := b.Div(a)
			rd.addCol(j, k, q.Neg())
			continue
		}
		u, v, s, t := bezout(a, b)
		rd.combCols(k, j, u, v, s, t)
	}
}

func (rd *reducer) columnClear(k int) bool {
	for i := k + 1; i < rd.m.r; i++ {
		if !rd.m.Entry(i, k).IsZero() {
			return false
		}
	}
	return true
}

// repairDivisibility folds one offending row into the pivot row. It reports
// whether any repair was needed.
func (rd *reducer) repairDivisibility(k int) bool {
	m := rd.m
	a := m.Entry(k, k)
	for i := k + 1; i < m.r; i++ {
		for j := k + 1; j < m.c; j++ {
			if !a.Divides(m.Entry(i, j)) {
				rd.addRow(k, i, integer.One)
				return true
			}
		}
	}
	return false
}

// InvariantFactors returns the non-zero diagonal of the Smith normal form of
// m, leaving m untouched.
func (m *Dense) InvariantFactors() []integer.Integer {
	c := m.Clone()
	c.SmithNormalForm()
	var out []integer.Integer
	for _, d := range c.Diagonal() {
		if !d.IsZero() {
			out = append(out, d)
		}
	}
	return out
}
