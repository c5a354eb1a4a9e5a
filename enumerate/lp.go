package enumerate

import (
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/vector"
)

func ratOf(x integer.Integer) integer.Rational {
	q, err := integer.RationalFromInt(x)
	if err != nil {
		panic("enumerate: " + err.Error())
	}
	return q
}

func quo(a, b integer.Rational) integer.Rational {
	q, err := a.Div(b)
	if err != nil {
		panic("enumerate: zero pivot")
	}
	return q
}

// tableau is a dense simplex tableau over the rationals. The last row is
// the objective and the last column the right-hand side.
type tableau struct {
	t     [][]integer.Rational
	basis []int
}

func (tb *tableau) pivot(row, col int) {
	pr := tb.t[row]
	pv := pr[col]
	for c := range pr {
		pr[c] = quo(pr[c], pv)
	}
	for r, rr := range tb.t {
		if r == row {
			continue
		}
		f := rr[col]
		if f.IsZero() {
			continue
		}
		for c := range rr {
			if !pr[c].IsZero() {
				rr[c] = rr[c].Sub(f.Mul(pr[c]))
			}
		}
	}
	tb.basis[row] = col
}

// minimise runs the simplex method with Bland's rule until the objective
// row has no negative reduced cost.
func (tb *tableau) minimise() {
	m := len(tb.t) - 1
	obj := tb.t[m]
	rhs := len(obj) - 1
	for {
		enter := -1
		for j := 0; j < rhs; j++ {
			if obj[j].Sign() < 0 {
				enter = j
				break
			}
		}
		if enter < 0 {
			return
		}
		leave := -1
		var best integer.Rational
		for r := 0; r < m; r++ {
			a := tb.t[r][enter]
			if a.Sign() <= 0 {
				continue
			}
			ratio := quo(tb.t[r][rhs], a)
			if leave < 0 || ratio.Cmp(best) < 0 || (ratio.Cmp(best) == 0 && tb.basis[r] < tb.basis[leave]) {
				leave, best = r, ratio
			}
		}
		if leave < 0 {
			return
		}
		tb.pivot(leave, enter)
	}
}

// feasible reports whether some real x satisfies
//
//	A·x = 0,  x ≥ 0,  x_i = 0 where zero[i],  x_i ≥ 1 where pos[i],  Σx ≥ 1
//
// by phase one of the simplex method in exact arithmetic.
func feasible(a *matrix.Dense, zero, pos []bool) bool {
	var cols []int
	npos := 0
	for j := 0; j < a.Cols(); j++ {
		if zero[j] {
			continue
		}
		cols = append(cols, j)
		if pos[j] {
			npos++
		}
	}
	if len(cols) == 0 {
		return false
	}
	k := len(cols)
	m := a.Rows() + 1
	width := k + 1 + m + 1 // shifted x, surplus, artificials, rhs
	tb := &tableau{t: make([][]integer.Rational, m+1), basis: make([]int, m)}

	for r := 0; r <= m; r++ {
		tb.t[r] = make([]integer.Rational, width)
	}
	for r := 0; r < a.Rows(); r++ {
		row := tb.t[r]
		b := integer.Rational{}
		for c, j := range cols {
			e := a.Entry(r, j)
			if e.IsZero() {
				continue
			}
			row[c] = ratOf(e)
			if pos[j] {
				b = b.Sub(row[c])
			}
		}
		row[width-1] = b
	}
	sum := tb.t[m-1]
	for c := 0; c < k; c++ {
		sum[c] = integer.RationalFromInt64(1)
	}
	sum[k] = integer.RationalFromInt64(-1)
	sum[width-1] = integer.RationalFromInt64(int64(1 - npos))

	one := integer.RationalFromInt64(1)
	obj := tb.t[m]
	for r := 0; r < m; r++ {
		row := tb.t[r]
		if row[width-1].Sign() < 0 {
			for c := range row {
				row[c] = row[c].Neg()
			}
		}
		row[k+1+r] = one
		tb.basis[r] = k + 1 + r
		for c := 0; c <= k; c++ {
			obj[c] = obj[c].Sub(row[c])
		}
		obj[width-1] = obj[width-1].Sub(row[width-1])
	}
	tb.minimise()
	return obj[width-1].IsZero()
}

// kernelRay returns the integer vector spanning the kernel of the columns
// cols of a, provided that kernel has dimension one and is spanned by a
// vector with every entry positive. The result has length len(cols).
func kernelRay(a *matrix.Dense, cols []int) (vector.Vector, bool) {
	k := len(cols)
	rows := make([][]integer.Rational, a.Rows())
	for r := range rows {
		rows[r] = make([]integer.Rational, k)
		for c, j := range cols {
			rows[r][c] = ratOf(a.Entry(r, j))
		}
	}
	pivotOf := make([]int, 0, k) // pivot column of each reduced row
	isPivot := make([]bool, k)
	row := 0
	for c := 0; c < k && row < len(rows); c++ {
		p := -1
		for r := row; r < len(rows); r++ {
			if !rows[r][c].IsZero() {
				p = r
				break
			}
		}
		if p < 0 {
			continue
		}
		rows[row], rows[p] = rows[p], rows[row]
		pv := rows[row][c]
		for cc := range rows[row] {
			rows[row][cc] = quo(rows[row][cc], pv)
		}
		for r := range rows {
			if r == row || rows[r][c].IsZero() {
				continue
			}
			f := rows[r][c]
			for cc := range rows[r] {
				rows[r][cc] = rows[r][cc].Sub(f.Mul(rows[row][cc]))
			}
		}
		pivotOf = append(pivotOf, c)
		isPivot[c] = true
		row++
	}
	if k-len(pivotOf) != 1 {
		return nil, false
	}
	free := 0
	for isPivot[free] {
		free++
	}
	sol := make([]integer.Rational, k)
	sol[free] = integer.RationalFromInt64(1)
	for r, c := range pivotOf {
		sol[c] = rows[r][free].Neg()
	}

	den := integer.One
	for _, q := range sol {
		den = integer.LCM(den, q.Den())
	}
	out := vector.New(k)
	for i, q := range sol {
		d, err := den.DivExact(q.Den())
		if err != nil {
			panic("enumerate: " + err.Error())
		}
		out[i] = q.Num().Mul(d)
	}
	out.ScaleDown()
	sign := out[free].Sign()
	for i := range out {
		if out[i].Sign() != sign {
			return nil, false
		}
		if sign < 0 {
			out[i] = out[i].Neg()
		}
	}
	return out, true
}
