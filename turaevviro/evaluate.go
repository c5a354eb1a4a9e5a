package turaevviro

import (
	"math"
	"sort"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// pollEvery is the number of search nodes between cancellation checks.
const pollEvery = 4096

// weights holds the quantum integers [i] = sin(iθ)/sin θ for θ = π·root/r
// and their factorials, for 0 ≤ i < r.
type weights struct {
	r       int
	bracket []float64
	fact    []float64
	inv     []float64
	vertex  float64
}

func newWeights(r, root int) *weights {
	w := &weights{
		r:       r,
		bracket: make([]float64, r),
		fact:    make([]float64, r),
		inv:     make([]float64, r),
	}
	theta := math.Pi * float64(root) / float64(r)
	w.bracket[0], w.bracket[1] = 1, 1
	w.fact[0], w.fact[1] = 1, 1
	w.inv[0], w.inv[1] = 1, 1
	for i := 2; i < r; i++ {
		w.bracket[i] = math.Sin(theta*float64(i)) / math.Sin(theta)
		w.fact[i] = w.fact[i-1] * w.bracket[i]
		w.inv[i] = w.inv[i-1] / w.bracket[i]
	}
	s := math.Sin(theta)
	w.vertex = 2 * s * s / float64(r)
	return w
}

// admissible reports whether doubled spins i, j, k may meet at a triangle.
func (w *weights) admissible(i, j, k int) bool {
	return (i+j+k)%2 == 0 &&
		i <= j+k && j <= i+k && k <= i+j &&
		i+j+k <= 2*(w.r-2)
}

// edge is the weight of an edge of doubled spin i.
func (w *weights) edge(i int) float64 {
	x := w.bracket[i+1]
	if i%2 != 0 {
		return -x
	}
	return x
}

// triangle is the weight of an admissible triangle.
func (w *weights) triangle(i, j, k int) float64 {
	x := w.fact[(i+j-k)/2] * w.fact[(j+k-i)/2] * w.fact[(k+i-j)/2] * w.inv[(i+j+k+2)/2]
	if (i+j+k)%4 != 0 {
		return -x
	}
	return x
}

// tetrahedron is the 6j-symbol part of a tetrahedron weight, for the spins
// (i j k / l m n) with each column holding opposite edges.
func (w *weights) tetrahedron(i, j, k, l, m, n int) float64 {
	minZ := max(i+j+k, i+m+n, j+l+n, k+l+m)
	maxZ := min(i+j+l+m, i+k+l+n, j+k+m+n)
	var sum float64
	for z := minZ; z <= maxZ; z++ {
		if z%2 != 0 || (z+2)/2 >= w.r {
			continue
		}
		term := w.fact[(z+2)/2] *
			w.inv[(z-i-j-k)/2] * w.inv[(z-i-m-n)/2] *
			w.inv[(z-j-l-n)/2] * w.inv[(z-k-l-m)/2] *
			w.inv[(i+j+l+m-z)/2] * w.inv[(i+k+l+n-z)/2] * w.inv[(j+k+m+n-z)/2]
		if z%4 == 0 {
			sum += term
		} else {
			sum -= term
		}
	}
	return sum
}

// search is one backtracking run. Edges are coloured in order; triangles
// and tetrahedra are weighed at the level where their last edge gets its
// colour.
type search struct {
	w         *weights
	order     []int
	triangles [][][3]int
	tets      [][][6]int
	colour    []int
	opts      Options
	steps     int
	cancelled bool
	sum       float64
}

func newSearch(t *triangulation.Triangulation, w *weights, opts Options) *search {
	n := t.CountFaces(1)
	s := &search{w: w, order: make([]int, n), colour: make([]int, n), opts: opts}
	for i := range s.order {
		s.order[i] = i
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return t.Face(1, s.order[a]).Degree() > t.Face(1, s.order[b]).Degree()
	})
	pos := make([]int, n)
	for level, e := range s.order {
		pos[e] = level
	}
	s.triangles = make([][][3]int, n)
	s.tets = make([][][6]int, n)

	for _, f := range t.Faces(2) {
		emb := f.Front()
		var edges [3]int
		for i := 0; i < 3; i++ {
			a, b := emb.Vertices.Image((i+1)%3), emb.Vertices.Image((i+2)%3)
			edges[i] = emb.Simplex.Edge(triangulation.FaceNumber(3, 1, min(a, b), max(a, b))).Index()
		}
		last := max(pos[edges[0]], pos[edges[1]], pos[edges[2]])
		s.triangles[last] = append(s.triangles[last], edges)
	}
	for _, simp := range t.Simplices() {
		var edges [6]int
		last := 0
		for i := range edges {
			edges[i] = simp.Edge(i).Index()
			last = max(last, pos[edges[i]])
		}
		s.tets[last] = append(s.tets[last], edges)
	}
	return s
}

func (s *search) run(level int, weight float64) {
	if s.cancelled {
		return
	}
	if level == len(s.order) {
		s.sum += weight
		return
	}
	s.steps++
	if s.steps%pollEvery == 0 && progress.Poll(s.opts.Ctx, s.opts.Tracker) {
		s.cancelled = true
		return
	}
	e := s.order[level]
	for c := 0; c <= s.w.r-2; c++ {
		if level == 0 && s.opts.Tracker != nil {
			s.opts.Tracker.SetPercent(100 * float64(c) / float64(s.w.r-1))
		}
		s.colour[e] = c
		ok := true
		for _, tr := range s.triangles[level] {
			if !s.w.admissible(s.colour[tr[0]], s.colour[tr[1]], s.colour[tr[2]]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		next := weight * s.w.edge(c)
		for _, tr := range s.triangles[level] {
			next *= s.w.triangle(s.colour[tr[0]], s.colour[tr[1]], s.colour[tr[2]])
		}
		for _, te := range s.tets[level] {
			col := func(i int) int { return s.colour[te[i]] }
			next *= s.w.tetrahedron(col(0), col(1), col(3), col(5), col(4), col(2))
		}
		s.run(level+1, next)
	}
	s.colour[e] = 0
}

// Evaluate returns the Turaev–Viro invariant of t with parameters r and
// root, approximated in floating point. It needs dim 3, r ≥ 3,
// 1 ≤ root < 2r and gcd(r, root) = 1. A run stopped by the context or
// tracker returns ErrCancelled.
func Evaluate(t *triangulation.Triangulation, r, root int, opts ...Option) (float64, error) {
	switch {
	case t == nil:
		return 0, tvErrorf(ErrInvalidArgument, "nil triangulation")
	case t.Dim() != 3:
		return 0, tvErrorf(ErrInvalidArgument, "dimension %d, want 3", t.Dim())
	case r < 3:
		return 0, tvErrorf(ErrInvalidArgument, "r = %d, want at least 3", r)
	case root < 1 || root >= 2*r:
		return 0, tvErrorf(ErrInvalidArgument, "root %d outside [1, %d)", root, 2*r)
	case integer.GCD64(int64(r), int64(root)) != 1:
		return 0, tvErrorf(ErrInvalidArgument, "gcd(%d, %d) ≠ 1", r, root)
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	w := newWeights(r, root)
	s := newSearch(t, w, o)
	s.run(0, 1)
	if s.cancelled || progress.Poll(o.Ctx, o.Tracker) {
		return 0, tvErrorf(ErrCancelled, "r = %d, root = %d", r, root)
	}
	if o.Tracker != nil {
		o.Tracker.Finish()
	}
	ans := s.sum
	for v := 0; v < t.CountFaces(0); v++ {
		ans *= w.vertex
	}
	return ans, nil
}
