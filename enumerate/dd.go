package enumerate

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/vector"
)

// zeroSet is a bitset of the coordinates where a ray vanishes.
type zeroSet []uint64

func zerosOf(v vector.Vector) zeroSet {
	z := make(zeroSet, (len(v)+63)/64)
	for i, x := range v {
		if x.IsZero() {
			z[i/64] |= 1 << (i % 64)
		}
	}
	return z
}

func (z zeroSet) and(o zeroSet) zeroSet {
	out := make(zeroSet, len(z))
	for i := range z {
		out[i] = z[i] & o[i]
	}
	return out
}

// contains reports whether z ⊇ o.
func (z zeroSet) contains(o zeroSet) bool {
	for i := range z {
		if o[i]&^z[i] != 0 {
			return false
		}
	}
	return true
}

type ddRay struct {
	v    vector.Vector
	zero zeroSet
}

// DoubleDescription returns the extreme rays of the cone whose supports
// satisfy cons, each scaled down to a primitive integer vector, in
// lexicographic order.
//
// Starting from the unit rays of the orthant, each hyperplane splits the
// current rays by side; the new ray set keeps the rays on the hyperplane
// and adds one intersection for every adjacent pair on opposite sides
// whose joint support is admissible. Two rays are adjacent when no third
// ray vanishes everywhere both do.
func DoubleDescription(ctx context.Context, c Cone, cons Constraints, opts ...Option) (Result, error) {
	r, err := newRun(ctx, "DoubleDescription", c, cons, opts)
	if err != nil {
		return Result{}, err
	}
	if r.res.Cancelled {
		return r.res, nil
	}
	rays := make([]ddRay, 0, c.Dim())
	for _, u := range units(c, cons) {
		rays = append(rays, ddRay{v: u, zero: zerosOf(u)})
	}
	total := c.Rows.Rows()
	for h := 0; h < total; h++ {
		rays = r.ddStep(rays, c.hyperplane(h), cons)
		if r.boundary(h+1, total) {
			return r.res, nil
		}
		r.opts.Logger.Debug("double description hyperplane done",
			zap.Int("hyperplane", h), zap.Int("of", total), zap.Int("rays", len(rays)))
	}
	out := make([]vector.Vector, len(rays))
	for i, ray := range rays {
		out[i] = ray.v
	}
	return r.finish(out, true), nil
}

func (r *run) ddStep(rays []ddRay, h vector.Vector, cons Constraints) []ddRay {
	var pos, neg, next []ddRay
	for _, ray := range rays {
		d, _ := h.Dot(ray.v)
		switch d.Sign() {
		case 0:
			next = append(next, ray)
		case 1:
			pos = append(pos, ray)
		default:
			neg = append(neg, ray)
		}
	}
	for _, p := range pos {
		for _, q := range neg {
			if r.stopped() {
				return next
			}
			if !cons.admitsUnion(p.v, q.v) {
				continue
			}
			common := p.zero.and(q.zero)
			if !adjacent(rays, p, q, common) {
				continue
			}
			v, err := vector.Intersect(p.v, q.v, h)
			if err != nil {
				panic("enumerate: " + err.Error())
			}
			next = append(next, ddRay{v: v, zero: zerosOf(v)})
		}
	}
	return next
}

func adjacent(rays []ddRay, p, q ddRay, common zeroSet) bool {
	for _, o := range rays {
		if o.v.Equal(p.v) || o.v.Equal(q.v) {
			continue
		}
		if o.zero.contains(common) {
			return false
		}
	}
	return true
}
