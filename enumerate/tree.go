package enumerate

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/vector"
)

// TreeTraversal returns the same rays as DoubleDescription, emitted in
// depth-first order as they are found.
//
// Each level of the search tree fixes one coordinate as zero or positive,
// trying zero first. A branch survives only while a feasibility LP over
// the rationals admits a non-zero point with those signs. A positive
// branch is also cut when the admissibility constraints fail or when a
// ray already found has support inside the current positive set. Leaves
// whose positive set spans a one-dimensional kernel yield a ray.
func TreeTraversal(ctx context.Context, c Cone, cons Constraints, opts ...Option) (Result, error) {
	r, err := newRun(ctx, "TreeTraversal", c, cons, opts)
	if err != nil {
		return Result{}, err
	}
	if r.res.Cancelled {
		return r.res, nil
	}
	n := c.Dim()
	tt := &treeSearch{
		run:   r,
		cone:  c,
		cons:  cons,
		zero:  make([]bool, n),
		pos:   make([]bool, n),
		types: make([]int, n),
		found: NewTypeTrie(),
	}
	if feasible(c.Rows, tt.zero, tt.pos) {
		tt.descend(0)
	}
	r.opts.Logger.Debug("tree traversal done",
		zap.Int("rays", len(r.res.Vectors)), zap.Int("leaves", tt.leaves))
	r.done()
	return r.res, nil
}

type treeSearch struct {
	*run
	cone   Cone
	cons   Constraints
	zero   []bool
	pos    []bool
	types  []int
	found  *TypeTrie
	leaves int
}

func (t *treeSearch) descend(i int) {
	if t.stopped() {
		return
	}
	if i == len(t.zero) {
		t.leaf()
		return
	}

	t.zero[i] = true
	if feasible(t.cone.Rows, t.zero, t.pos) {
		t.descend(i + 1)
	}
	t.zero[i] = false
	if i == 0 && t.boundary(1, 2) {
		return
	}

	t.pos[i] = true
	t.types[i] = 1
	if t.cons.Admits(t.pos) && !t.found.Dominates(t.types) && feasible(t.cone.Rows, t.zero, t.pos) {
		t.descend(i + 1)
	}
	t.pos[i] = false
	t.types[i] = 0
}

func (t *treeSearch) leaf() {
	t.leaves++
	var cols []int
	for j, p := range t.pos {
		if p {
			cols = append(cols, j)
		}
	}
	if len(cols) == 0 {
		return
	}
	ray, ok := kernelRay(t.cone.Rows, cols)
	if !ok {
		return
	}
	v := vector.New(len(t.pos))
	for k, j := range cols {
		v[j] = ray[k]
	}
	t.found.Insert(t.types)
	t.emit(v)
}
