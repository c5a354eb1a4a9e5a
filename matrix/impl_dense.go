// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer of exact integers with the index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Offer unchecked Entry/SetEntry for kernels that have already validated shapes.
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set/Entry: O(1); Clone: O(r*c); Submatrix: O(r'*c').

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/trimanifold/integer"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxSubmatrix = "Submatrix"
	ctxFromRows  = "FromRows"
	ctxMul       = "Mul"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// matrixErrorf wraps an error with a method tag only.
func matrixErrorf(method string, err error) error {
	return fmt.Errorf("matrix.%s: %w", method, err)
}

// Dense is a concrete row-major integer matrix.
//   - r,c hold dimensions; either may be zero.
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Dense struct {
	r, c int
	data []integer.Integer
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrBadShape if rows or cols is negative.
//
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	return newDense(rows, cols), nil
}

// newDense allocates without validation; callers guarantee non-negative sizes.
func newDense(rows, cols int) *Dense {
	return &Dense{r: rows, c: cols, data: make([]integer.Integer, rows*cols)}
}

// Zeros is NewDense for shapes known to be valid. It panics on negative sizes.
func Zeros(rows, cols int) *Dense {
	m, err := NewDense(rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// NewIdentity returns the n×n identity matrix.
func NewIdentity(n int) *Dense {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = integer.One
	}
	return m
}

// FromRows builds a matrix from native rows. All rows must share a length.
func FromRows(rows [][]int64) (*Dense, error) {
	if len(rows) == 0 {
		return newDense(0, 0), nil
	}
	c := len(rows[0])
	m := newDense(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, denseErrorf(ctxFromRows, i, len(row), ErrBadShape)
		}
		for j, v := range row {
			m.data[i*c+j] = integer.New(v)
		}
	}
	return m, nil
}

// MustFromRows is FromRows for literal data; it panics on ragged input.
func MustFromRows(rows [][]int64) *Dense {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// At returns m[i][j] or ErrOutOfRange.
func (m *Dense) At(i, j int) (integer.Integer, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return integer.Zero, denseErrorf(ctxAt, i, j, ErrOutOfRange)
	}
	return m.data[i*m.c+j], nil
}

// Set assigns m[i][j] or returns ErrOutOfRange.
func (m *Dense) Set(i, j int, v integer.Integer) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return denseErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	m.data[i*m.c+j] = v
	return nil
}

// Entry is the unchecked form of At for kernels with validated indices.
func (m *Dense) Entry(i, j int) integer.Integer { return m.data[i*m.c+j] }

// SetEntry is the unchecked form of Set.
func (m *Dense) SetEntry(i, j int, v integer.Integer) { m.data[i*m.c+j] = v }

// AddEntry adds v to m[i][j] without bounds checks.
func (m *Dense) AddEntry(i, j int, v integer.Integer) {
	m.data[i*m.c+j] = m.data[i*m.c+j].Add(v)
}

// SetInt64 is SetEntry with a native value.
func (m *Dense) SetInt64(i, j int, v int64) { m.data[i*m.c+j] = integer.New(v) }

// Row returns a copy of row i.
func (m *Dense) Row(i int) []integer.Integer {
	out := make([]integer.Integer, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])
	return out
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	out := newDense(m.r, m.c)
	copy(out.data, m.data)
	return out
}

// Submatrix copies the rows and columns listed, in the given order.
func (m *Dense) Submatrix(rows, cols []int) (*Dense, error) {
	out := newDense(len(rows), len(cols))
	for a, i := range rows {
		for b, j := range cols {
			if i < 0 || i >= m.r || j < 0 || j >= m.c {
				return nil, denseErrorf(ctxSubmatrix, i, j, ErrOutOfRange)
			}
			out.data[a*out.c+b] = m.data[i*m.c+j]
		}
	}
	return out, nil
}

// Equal reports whether m and o have the same shape and entries.
func (m *Dense) Equal(o *Dense) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if !m.data[k].Equal(o.data[k]) {
			return false
		}
	}
	return true
}

// IsZero reports whether every entry is zero.
func (m *Dense) IsZero() bool {
	for _, v := range m.data {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// IsIdentity reports whether m is a square identity matrix.
func (m *Dense) IsIdentity() bool {
	if m.r != m.c {
		return false
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			v := m.data[i*m.c+j]
			if (i == j && !v.Equal(integer.One)) || (i != j && !v.IsZero()) {
				return false
			}
		}
	}
	return true
}

// IsSymmetric reports whether m is square and equal to its transpose.
func (m *Dense) IsSymmetric() bool {
	if m.r != m.c {
		return false
	}
	for i := 0; i < m.r; i++ {
		for j := i + 1; j < m.c; j++ {
			if !m.data[i*m.c+j].Equal(m.data[j*m.c+i]) {
				return false
			}
		}
	}
	return true
}

// Transpose returns a new c×r matrix.
func (m *Dense) Transpose() *Dense {
	out := newDense(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*out.c+i] = m.data[i*m.c+j]
		}
	}
	return out
}

// Mul returns m·o.
//
// Errors:
//   - ErrDimensionMismatch if m.Cols() != o.Rows().
func (m *Dense) Mul(o *Dense) (*Dense, error) {
	if m.c != o.r {
		return nil, matrixErrorf(ctxMul, fmt.Errorf("%w: %dx%d · %dx%d", ErrDimensionMismatch, m.r, m.c, o.r, o.c))
	}
	out := newDense(m.r, o.c)
	for i := 0; i < m.r; i++ {
		for k := 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a.IsZero() {
				continue
			}
			for j := 0; j < o.c; j++ {
				b := o.data[k*o.c+j]
				if !b.IsZero() {
					out.data[i*out.c+j] = out.data[i*out.c+j].Add(a.Mul(b))
				}
			}
		}
	}
	return out, nil
}

// MulVec returns m·v for a column vector v of length Cols().
func (m *Dense) MulVec(v []integer.Integer) ([]integer.Integer, error) {
	if len(v) != m.c {
		return nil, matrixErrorf(ctxMul, ErrDimensionMismatch)
	}
	out := make([]integer.Integer, m.r)
	for i := 0; i < m.r; i++ {
		acc := integer.Zero
		for j := 0; j < m.c; j++ {
			if !v[j].IsZero() {
				acc = acc.Add(m.data[i*m.c+j].Mul(v[j]))
			}
		}
		out[i] = acc
	}
	return out, nil
}

// BlockDiagonal returns diag(a, b).
func BlockDiagonal(a, b *Dense) *Dense {
	out := newDense(a.r+b.r, a.c+b.c)
	for i := 0; i < a.r; i++ {
		copy(out.data[i*out.c:i*out.c+a.c], a.data[i*a.c:(i+1)*a.c])
	}
	for i := 0; i < b.r; i++ {
		row := a.r + i
		copy(out.data[row*out.c+a.c:row*out.c+a.c+b.c], b.data[i*b.c:(i+1)*b.c])
	}
	return out
}

// Diagonal returns the entries m[i][i] for i < min(r, c).
func (m *Dense) Diagonal() []integer.Integer {
	k := min(m.r, m.c)
	out := make([]integer.Integer, k)
	for i := 0; i < k; i++ {
		out[i] = m.data[i*m.c+i]
	}
	return out
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.data[i*m.c+j].String())
		}
		b.WriteString("]\n")
	}
	return b.String()
}
