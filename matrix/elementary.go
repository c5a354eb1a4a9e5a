// SPDX-License-Identifier: MIT

// Package matrix - elementary unimodular operations.
//
// All operations are in place, unchecked, and preserve |det| for square
// matrices. Indices are the caller's responsibility; the reductions in this
// package call them only with validated positions.

package matrix

import "github.com/katalvlaran/trimanifold/integer"

// SwapRows exchanges rows i and j.
func (m *Dense) SwapRows(i, j int) {
	if i == j {
		return
	}
	ri := m.data[i*m.c : (i+1)*m.c]
	rj := m.data[j*m.c : (j+1)*m.c]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// SwapCols exchanges columns i and j.
func (m *Dense) SwapCols(i, j int) {
	if i == j {
		return
	}
	for r := 0; r < m.r; r++ {
		m.data[r*m.c+i], m.data[r*m.c+j] = m.data[r*m.c+j], m.data[r*m.c+i]
	}
}

// AddRow performs row dst += k·row src.
func (m *Dense) AddRow(dst, src int, k integer.Integer) {
	if k.IsZero() {
		return
	}
	for j := 0; j < m.c; j++ {
		s := m.data[src*m.c+j]
		if !s.IsZero() {
			m.data[dst*m.c+j] = m.data[dst*m.c+j].Add(k.Mul(s))
		}
	}
}

// AddCol performs col dst += k·col src.
func (m *Dense) AddCol(dst, src int, k integer.Integer) {
	if k.IsZero() {
		return
	}
	for i := 0; i < m.r; i++ {
		s := m.data[i*m.c+src]
		if !s.IsZero() {
			m.data[i*m.c+dst] = m.data[i*m.c+dst].Add(k.Mul(s))
		}
	}
}

// NegateRow multiplies row i by -1.
func (m *Dense) NegateRow(i int) {
	for j := 0; j < m.c; j++ {
		m.data[i*m.c+j] = m.data[i*m.c+j].Neg()
	}
}

// NegateCol multiplies column j by -1.
func (m *Dense) NegateCol(j int) {
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j] = m.data[i*m.c+j].Neg()
	}
}

// CombRows replaces rows (i, j) with (a·ri + b·rj, c·ri + d·rj).
// The operation is unimodular when ad - bc = ±1.
func (m *Dense) CombRows(i, j int, a, b, c, d integer.Integer) {
	for k := 0; k < m.c; k++ {
		x, y := m.data[i*m.c+k], m.data[j*m.c+k]
		if x.IsZero() && y.IsZero() {
			continue
		}
		m.data[i*m.c+k] = a.Mul(x).Add(b.Mul(y))
		m.data[j*m.c+k] = c.Mul(x).Add(d.Mul(y))
	}
}

// CombCols replaces columns (i, j) with (a·ci + b·cj, c·ci + d·cj).
func (m *Dense) CombCols(i, j int, a, b, c, d integer.Integer) {
	for r := 0; r < m.r; r++ {
		x, y := m.data[r*m.c+i], m.data[r*m.c+j]
		if x.IsZero() && y.IsZero() {
			continue
		}
		m.data[r*m.c+i] = a.Mul(x).Add(b.Mul(y))
		m.data[r*m.c+j] = c.Mul(x).Add(d.Mul(y))
	}
}

// reducer applies each elementary operation to a working matrix and keeps
// optional transforming matrices in step:
//
//	left·M0·right = M,  leftInv = left⁻¹,  rightInv = right⁻¹.
type reducer struct {
	m               *Dense
	left, leftInv   *Dense
	right, rightInv *Dense
}

func (rd *reducer) swapRows(i, j int) {
	rd.m.SwapRows(i, j)
	if rd.left != nil {
		rd.left.SwapRows(i, j)
		rd.leftInv.SwapCols(i, j)
	}
}

func (rd *reducer) swapCols(i, j int) {
	rd.m.SwapCols(i, j)
	if rd.right != nil {
		rd.right.SwapCols(i, j)
		rd.rightInv.SwapRows(i, j)
	}
}

func (rd *reducer) addRow(dst, src int, k integer.Integer) {
	rd.m.AddRow(dst, src, k)
	if rd.left != nil {
		rd.left.AddRow(dst, src, k)
		rd.leftInv.AddCol(src, dst, k.Neg())
	}
}

func (rd *reducer) addCol(dst, src int, k integer.Integer) {
	rd.m.AddCol(dst, src, k)
	if rd.right != nil {
		rd.right.AddCol(dst, src, k)
		rd.rightInv.AddRow(src, dst, k.Neg())
	}
}

func (rd *reducer) negateRow(i int) {
	rd.m.NegateRow(i)
	if rd.left != nil {
		rd.left.NegateRow(i)
		rd.leftInv.NegateCol(i)
	}
}

func (rd *reducer) negateCol(j int) {
	rd.m.NegateCol(j)
	if rd.right != nil {
		rd.right.NegateCol(j)
		rd.rightInv.NegateRow(j)
	}
}

// combRows expects ad - bc = 1.
func (rd *reducer) combRows(i, j int, a, b, c, d integer.Integer) {
	rd.m.CombRows(i, j, a, b, c, d)
	if rd.left != nil {
		rd.left.CombRows(i, j, a, b, c, d)
		rd.leftInv.CombCols(i, j, d, c.Neg(), b.Neg(), a)
	}
}

// combCols expects ad - bc = 1.
func (rd *reducer) combCols(i, j int, a, b, c, d integer.Integer) {
	rd.m.CombCols(i, j, a, b, c, d)
	if rd.right != nil {
		rd.right.CombCols(i, j, a, b, c, d)
		rd.rightInv.CombRows(i, j, d, c.Neg(), b.Neg(), a)
	}
}

// bezout returns (u, v, -b/g, a/g) for g = gcd(a, b) = u·a + v·b, the rows of
// a determinant-one matrix sending (a, b) to (g, 0).
func bezout(a, b integer.Integer) (u, v, s, t integer.Integer) {
	g, u, v := integer.GCDWithCoeffs(a, b)
	bq, _ := b.DivExact(g)
	aq, _ := a.DivExact(g)
	return u, v, bq.Neg(), aq
}
