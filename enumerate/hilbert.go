package enumerate

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/vector"
)

// HilbertDual returns the admissible Hilbert basis of the cone in
// lexicographic order.
//
// Starting from the unit vectors, each hyperplane h is added by a
// completion step: sums of one element on each side of h are formed until
// nothing new appears, and a sum is discarded when an element on its own
// side lies below it with an h-value between zero and its own. The
// elements on h that survive are the basis of the smaller cone.
func HilbertDual(ctx context.Context, c Cone, cons Constraints, opts ...Option) (Result, error) {
	r, err := newRun(ctx, "HilbertDual", c, cons, opts)
	if err != nil {
		return Result{}, err
	}
	if r.res.Cancelled {
		return r.res, nil
	}
	basis, ok := r.hilbertDual(c, cons, units(c, cons))
	if !ok {
		return r.res, nil
	}
	return r.finish(basis, true), nil
}

func (r *run) hilbertDual(c Cone, cons Constraints, basis []vector.Vector) ([]vector.Vector, bool) {
	total := c.Rows.Rows()
	for h := 0; h < total; h++ {
		basis = r.dualStep(basis, c.hyperplane(h), cons)
		if r.boundary(h+1, total) {
			return nil, false
		}
		r.opts.Logger.Debug("hilbert dual hyperplane done",
			zap.Int("hyperplane", h), zap.Int("of", total), zap.Int("basis", len(basis)))
	}
	return minimal(basis), true
}

// graded is a vector together with its value under the current hyperplane.
type graded struct {
	v vector.Vector
	h integer.Integer
}

func (r *run) dualStep(basis []vector.Vector, h vector.Vector, cons Constraints) []vector.Vector {
	var zero, pos, neg []graded
	for _, v := range basis {
		hv, _ := h.Dot(v)
		g := graded{v: v, h: hv}
		switch hv.Sign() {
		case 0:
			zero = append(zero, g)
		case 1:
			pos = append(pos, g)
		default:
			neg = append(neg, g)
		}
	}

	reducible := func(s graded) bool {
		below := func(list []graded) bool {
			for _, x := range list {
				if !s.v.Dominates(x.v) {
					continue
				}
				switch s.h.Sign() {
				case 1:
					if x.h.Cmp(s.h) <= 0 {
						return true
					}
				case -1:
					if x.h.Cmp(s.h) >= 0 {
						return true
					}
				default:
					return true
				}
			}
			return false
		}
		if below(zero) {
			return true
		}
		switch s.h.Sign() {
		case 1:
			return below(pos)
		case -1:
			return below(neg)
		}
		return false
	}

	pFrom, nFrom := 0, 0
	for {
		pTo, nTo := len(pos), len(neg)
		if pFrom == pTo && nFrom == nTo {
			break
		}
		var sums []graded
		for i := 0; i < pTo; i++ {
			for j := 0; j < nTo; j++ {
				if i < pFrom && j < nFrom {
					continue
				}
				if r.stopped() {
					return nil
				}
				if !cons.admitsUnion(pos[i].v, neg[j].v) {
					continue
				}
				sums = append(sums, graded{v: pos[i].v.Add(neg[j].v), h: pos[i].h.Add(neg[j].h)})
			}
		}
		pFrom, nFrom = pTo, nTo
		for _, s := range sums {
			if reducible(s) {
				continue
			}
			switch s.h.Sign() {
			case 0:
				zero = append(zero, s)
			case 1:
				pos = append(pos, s)
			default:
				neg = append(neg, s)
			}
		}
	}

	out := make([]vector.Vector, len(zero))
	for i, g := range zero {
		out[i] = g.v
	}
	return out
}

// HilbertCD returns the admissible Hilbert basis of the cone in
// lexicographic order, using the Contejean-Devie completion.
//
// A candidate p grows by a unit vector e_i only when A·p and A·e_i point in
// opposite directions, and is dropped once it dominates a basis element.
// The search is depth-first and deepens one coordinate sum at a time, so
// every solution reached at the current depth is minimal and is emitted as
// soon as it is found. A cancelled run returns the elements found so far.
func HilbertCD(ctx context.Context, c Cone, cons Constraints, opts ...Option) (Result, error) {
	r, err := newRun(ctx, "HilbertCD", c, cons, opts)
	if err != nil {
		return Result{}, err
	}
	if r.res.Cancelled {
		return r.res, nil
	}
	s := cdSearch{c: c, cons: cons, unitImage: make([]vector.Vector, c.Dim())}
	for i := range s.unitImage {
		s.unitImage[i] = c.image(vector.Unit(c.Dim(), i))
	}
	for level := 1; ; level++ {
		deeper := r.cdLevel(&s, level)
		if r.res.Cancelled || r.boundary(0, 0) {
			r.sortResult()
			return r.res, nil
		}
		r.opts.Logger.Debug("hilbert cd level done",
			zap.Int("level", level), zap.Int("basis", len(s.basis)))
		if !deeper {
			break
		}
	}
	r.sortResult()
	r.done()
	return r.res, nil
}

// cdSearch is the state shared by the levels of HilbertCD.
type cdSearch struct {
	c         Cone
	cons      Constraints
	unitImage []vector.Vector
	basis     []vector.Vector
}

// cdNode is a candidate on the search stack with its image under A.
type cdNode struct {
	v, image vector.Vector
	depth    int
}

// cdLevel walks every Contejean-Devie path of length level with an explicit
// stack and emits the solutions at its end. It reports whether some
// non-solution reached that depth, so that a deeper level can add more.
func (r *run) cdLevel(s *cdSearch, level int) bool {
	n := s.c.Dim()
	seen := make(map[string]struct{})
	var stack []cdNode
	for _, u := range units(s.c, s.cons) {
		if !dominated(u, s.basis) {
			stack = append(stack, cdNode{v: u, image: s.c.image(u), depth: 1})
		}
	}
	deeper := false
	for len(stack) > 0 {
		if r.stopped() {
			return false
		}
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.depth == level {
			if p.image.IsZero() {
				s.basis = append(s.basis, p.v)
				r.emit(p.v)
			} else {
				deeper = true
			}
			continue
		}
		for i := n - 1; i >= 0; i-- {
			d, _ := p.image.Dot(s.unitImage[i])
			if d.Sign() >= 0 {
				continue
			}
			q := p.v.Clone()
			q[i] = q[i].AddInt64(1)
			if !s.cons.AdmitsVector(q) || dominated(q, s.basis) {
				continue
			}
			key := q.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			stack = append(stack, cdNode{v: q, image: p.image.Add(s.unitImage[i]), depth: p.depth + 1})
		}
	}
	return deeper
}
