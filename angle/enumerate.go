package angle

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/enumerate"
	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/vector"
)

// Options configures Enumerate.
type Options struct {
	Tracker  *progress.Tracker
	Logger   *zap.Logger
	TautOnly bool
	Tree     bool
}

// Option configures Enumerate via functional arguments.
type Option func(*Options)

// DefaultOptions returns options for a full double description run with a
// no-op logger.
func DefaultOptions() Options { return Options{Logger: zap.NewNop()} }

// WithTracker attaches a progress tracker.
func WithTracker(t *progress.Tracker) Option {
	return func(o *Options) { o.Tracker = t }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTautOnly restricts the run to taut structures by allowing at most
// one non-zero angle per tetrahedron.
func WithTautOnly() Option {
	return func(o *Options) { o.TautOnly = true }
}

// WithTreeTraversal uses the tree traversal enumerator instead of double
// description.
func WithTreeTraversal() Option {
	return func(o *Options) { o.Tree = true }
}

// List holds the vertex angle structures of a triangulation.
type List struct {
	tri        *triangulation.Triangulation
	structures []*Structure
	tautOnly   bool
	cancelled  bool
}

// Triangulation returns the enumerated triangulation.
func (l *List) Triangulation() *triangulation.Triangulation { return l.tri }

// Len returns the number of structures.
func (l *List) Len() int { return len(l.structures) }

// Structure returns structure i.
func (l *List) Structure(i int) *Structure { return l.structures[i] }

// Structures returns the structures in enumeration order.
func (l *List) Structures() []*Structure { return append([]*Structure(nil), l.structures...) }

// TautOnly reports whether only taut structures were enumerated.
func (l *List) TautOnly() bool { return l.tautOnly }

// Cancelled reports whether the run stopped early.
func (l *List) Cancelled() bool { return l.cancelled }

// SpansStrict reports whether some convex combination of the structures
// is strict: every angle member is non-zero in at least one of them.
func (l *List) SpansStrict() bool {
	if len(l.structures) == 0 {
		return false
	}
	n := 3 * l.tri.Size()
	for i := 0; i < n; i++ {
		hit := false
		for _, s := range l.structures {
			if !s.vec[i].IsZero() {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// SpansTaut reports whether some structure is taut.
func (l *List) SpansTaut() bool {
	for _, s := range l.structures {
		if s.IsTaut() {
			return true
		}
	}
	return false
}

// Enumerate returns the vertices of the angle structure polytope of t, or
// only its taut vertices under WithTautOnly. The empty triangulation has
// the single structure (1).
func Enumerate(ctx context.Context, t *triangulation.Triangulation, opts ...Option) (*List, error) {
	if err := checkTriangulation("Enumerate", t); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m, err := Equations(t)
	if err != nil {
		return nil, err
	}
	cone, err := enumerate.NewCone(m)
	if err != nil {
		return nil, angleErrorf("Enumerate", ErrInvalidArgument, "%v", err)
	}
	var cons enumerate.Constraints
	if o.TautOnly {
		for tet := 0; tet < t.Size(); tet++ {
			cons = append(cons, enumerate.Constraint{3 * tet, 3*tet + 1, 3*tet + 2})
		}
	}
	o.Logger.Debug("angle structure enumeration",
		zap.Int("tetrahedra", t.Size()), zap.Int("equations", m.Rows()),
		zap.Bool("tautOnly", o.TautOnly), zap.Bool("tree", o.Tree))

	run := enumerate.DoubleDescription
	if o.Tree {
		run = enumerate.TreeTraversal
	}
	res, err := run(ctx, cone, cons, enumerate.WithTracker(o.Tracker), enumerate.WithLogger(o.Logger))
	if err != nil {
		return nil, angleErrorf("Enumerate", ErrInvalidArgument, "%v", err)
	}
	list := &List{tri: t, tautOnly: o.TautOnly, cancelled: res.Cancelled}
	for _, v := range res.Vectors {
		if v[len(v)-1].IsZero() {
			continue
		}
		list.structures = append(list.structures, &Structure{tri: t, vec: v})
	}
	return list, nil
}

// Taut lists the taut angle structures of t.
func Taut(ctx context.Context, t *triangulation.Triangulation, opts ...Option) (*List, error) {
	return Enumerate(ctx, t, append(opts, WithTautOnly())...)
}

// HasStrictAngleStructure reports whether t admits a strict angle
// structure.
func HasStrictAngleStructure(ctx context.Context, t *triangulation.Triangulation, opts ...Option) (bool, error) {
	list, err := Enumerate(ctx, t, opts...)
	if err != nil {
		return false, err
	}
	return list.SpansStrict(), nil
}

// FindStrict returns the barycentre of the vertex angle structures of t,
// which is strict whenever any strict structure exists. Otherwise the
// result is ErrNoStrict.
func FindStrict(ctx context.Context, t *triangulation.Triangulation, opts ...Option) (*Structure, error) {
	list, err := Enumerate(ctx, t, opts...)
	if err != nil {
		return nil, err
	}
	if list.cancelled || !list.SpansStrict() {
		return nil, angleErrorf("FindStrict", ErrNoStrict, "%d vertex structures", list.Len())
	}
	sum := vector.New(3*t.Size() + 1)
	for _, s := range list.structures {
		sum = sum.Add(s.vec)
	}
	sum.ScaleDown()
	return &Structure{tri: t, vec: sum}, nil
}
