package enumerate

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/vector"
)

// maxParallelepiped bounds the number of lattice points HilbertPrimal will
// walk in one simplicial face before handing the face to HilbertDual.
const maxParallelepiped = 1 << 14

// HilbertPrimal returns the admissible Hilbert basis of the cone in
// lexicographic order.
//
// The extreme rays come from DoubleDescription. They are grouped into
// maximal families whose joint support is admissible; each family spans a
// face of the cone. A simplicial face contributes its rays and the lattice
// points of its half-open fundamental parallelepiped, found through the
// Smith normal form of the ray matrix. Other faces are solved by
// HilbertDual restricted to their support. The union is reduced to its
// minimal elements.
func HilbertPrimal(ctx context.Context, c Cone, cons Constraints, opts ...Option) (Result, error) {
	r, err := newRun(ctx, "HilbertPrimal", c, cons, opts)
	if err != nil {
		return Result{}, err
	}
	if r.res.Cancelled {
		return r.res, nil
	}
	rays, err := DoubleDescription(ctx, c, cons, WithContext(r.ctx), WithLogger(r.opts.Logger))
	if err != nil {
		return Result{}, err
	}
	if rays.Cancelled || r.boundary(0, 0) {
		r.res.Cancelled = true
		return r.res, nil
	}

	families := maximalFamilies(rays.Vectors, cons)
	var all []vector.Vector
	seen := make(map[string]struct{})
	add := func(v vector.Vector) {
		k := v.String()
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		all = append(all, v)
	}
	for fi, fam := range families {
		pts, ok := r.faceBasis(c, cons, fam)
		if !ok {
			return r.res, nil
		}
		for _, p := range pts {
			add(p)
		}
		if r.boundary(fi+1, len(families)) {
			return r.res, nil
		}
		r.opts.Logger.Debug("hilbert primal face done",
			zap.Int("face", fi), zap.Int("of", len(families)),
			zap.Int("rays", len(fam)), zap.Int("points", len(pts)))
	}
	return r.finish(minimal(all), true), nil
}

// maximalFamilies returns the maximal subsets of rays whose union of
// supports is admissible. Without constraints the single family is every
// ray.
func maximalFamilies(rays []vector.Vector, cons Constraints) [][]vector.Vector {
	if len(rays) == 0 {
		return nil
	}
	if len(cons) == 0 {
		return [][]vector.Vector{rays}
	}
	n := len(rays[0])
	var fams [][]int
	var grow func(start int, chosen []int, supp []bool)
	grow = func(start int, chosen []int, supp []bool) {
		extended := false
		for i := 0; i < len(rays); i++ {
			if contains(chosen, i) {
				continue
			}
			next := unionSupport(supp, rays[i])
			if !cons.Admits(next) {
				continue
			}
			extended = true
			if i < start {
				continue // still counts against maximality
			}
			grow(i+1, append(append([]int(nil), chosen...), i), next)
		}
		if !extended && len(chosen) > 0 {
			fams = append(fams, chosen)
		}
	}
	grow(0, nil, make([]bool, n))

	out := make([][]vector.Vector, len(fams))
	for i, f := range fams {
		out[i] = make([]vector.Vector, len(f))
		for j, k := range f {
			out[i][j] = rays[k]
		}
	}
	return out
}

func contains(xs []int, x int) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

func unionSupport(s []bool, v vector.Vector) []bool {
	out := make([]bool, len(s))
	for i := range s {
		out[i] = s[i] || !v[i].IsZero()
	}
	return out
}

// faceBasis returns candidates that contain the Hilbert basis of the cone
// spanned by fam.
func (r *run) faceBasis(c Cone, cons Constraints, fam []vector.Vector) ([]vector.Vector, bool) {
	n := len(fam[0])
	k := len(fam)
	m := matrix.Zeros(n, k)
	for j, v := range fam {
		for i := 0; i < n; i++ {
			m.SetEntry(i, j, v[i])
		}
	}
	if m.Rank() == k {
		if pts, ok := r.parallelepiped(m, fam); ok {
			return pts, true
		}
	}
	return r.restrictedDual(c, cons, fam)
}

// parallelepiped lists the rays and the non-zero lattice points of
// { Σ λ_j r_j : 0 ≤ λ_j < 1 } for linearly independent rays r_j. If
// left·M·right = diag(d), the lattice points correspond to
// λ = right·(c_1/d_1, ..., c_k/d_k) mod 1 with 0 ≤ c_i < d_i.
func (r *run) parallelepiped(m *matrix.Dense, fam []vector.Vector) ([]vector.Vector, bool) {
	k := len(fam)
	snf := m.Clone()
	_, _, right, _ := snf.MetricalSmithNormalForm()
	d := make([]int64, k)
	volume := int64(1)
	for i := 0; i < k; i++ {
		di, ok := snf.Entry(i, i).Int64()
		if !ok || di <= 0 {
			return nil, false
		}
		d[i] = di
		volume *= di
		if volume > maxParallelepiped {
			return nil, false
		}
	}

	out := append([]vector.Vector(nil), fam...)
	cs := make([]int64, k)
	for {
		if r.stopped() {
			return nil, false
		}
		if p, ok := latticePoint(right, fam, d, cs); ok {
			out = append(out, p)
		}
		i := 0
		for i < k {
			cs[i]++
			if cs[i] < d[i] {
				break
			}
			cs[i] = 0
			i++
		}
		if i == k {
			break
		}
	}
	return out, true
}

func latticePoint(right *matrix.Dense, fam []vector.Vector, d, cs []int64) (vector.Vector, bool) {
	k := len(fam)
	mu := make([]integer.Rational, k)
	for i := range mu {
		q, err := integer.NewRational(cs[i], d[i])
		if err != nil {
			panic("enumerate: " + err.Error())
		}
		mu[i] = q
	}
	lambda := make([]integer.Rational, k)
	zero := true
	for j := 0; j < k; j++ {
		var s integer.Rational
		for i := 0; i < k; i++ {
			e := right.Entry(j, i)
			if e.IsZero() || mu[i].IsZero() {
				continue
			}
			s = s.Add(ratOf(e).Mul(mu[i]))
		}
		s = fracPart(s)
		lambda[j] = s
		if !s.IsZero() {
			zero = false
		}
	}
	if zero {
		return nil, false
	}
	n := len(fam[0])
	p := vector.New(n)
	for i := 0; i < n; i++ {
		var s integer.Rational
		for j := 0; j < k; j++ {
			if lambda[j].IsZero() || fam[j][i].IsZero() {
				continue
			}
			s = s.Add(lambda[j].Mul(ratOf(fam[j][i])))
		}
		if !s.IsInteger() {
			panic("enumerate: parallelepiped point is not integral")
		}
		p[i] = s.Num()
	}
	return p, true
}

// fracPart returns q − ⌊q⌋.
func fracPart(q integer.Rational) integer.Rational {
	rem, err := q.Num().Mod(q.Den())
	if err != nil {
		panic("enumerate: " + err.Error())
	}
	f, err := integer.Frac(rem, q.Den())
	if err != nil {
		panic("enumerate: " + err.Error())
	}
	return f
}

// restrictedDual runs HilbertDual on the coordinates the family touches.
func (r *run) restrictedDual(c Cone, cons Constraints, fam []vector.Vector) ([]vector.Vector, bool) {
	n := c.Dim()
	supp := make([]bool, n)
	for _, v := range fam {
		supp = unionSupport(supp, v)
	}
	var start []vector.Vector
	for i := 0; i < n; i++ {
		if supp[i] {
			start = append(start, vector.Unit(n, i))
		}
	}
	return r.hilbertDual(c, cons, start)
}
