package normal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/enumerate"
	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Options configures Enumerate.
type Options struct {
	Tracker *progress.Tracker
	Logger  *zap.Logger
}

// Option configures Enumerate via functional arguments.
type Option func(*Options)

// DefaultOptions returns options with a no-op logger and no tracker.
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

// List is the result of an enumeration.
type List struct {
	tri       *triangulation.Triangulation
	coords    Coords
	which     ListType
	alg       Algorithm
	surfaces  []*Surface
	cancelled bool
}

// Triangulation returns the enumerated triangulation.
func (l *List) Triangulation() *triangulation.Triangulation { return l.tri }

// Coords returns the coordinate system of the surfaces.
func (l *List) Coords() Coords { return l.coords }

// Which returns the list type with defaults resolved.
func (l *List) Which() ListType { return l.which }

// Algorithm returns the algorithm actually used.
func (l *List) Algorithm() Algorithm { return l.alg }

// Len returns the number of surfaces.
func (l *List) Len() int { return len(l.surfaces) }

// Surface returns surface i.
func (l *List) Surface(i int) *Surface { return l.surfaces[i] }

// Surfaces returns the surfaces in enumeration order.
func (l *List) Surfaces() []*Surface { return append([]*Surface(nil), l.surfaces...) }

// Cancelled reports whether the run stopped early. The surfaces found
// before the stop are kept.
func (l *List) Cancelled() bool { return l.cancelled }

// resolve fills in the defaults of which and alg and checks that they fit
// together.
func resolve(which ListType, alg Algorithm) (ListType, Algorithm, error) {
	if which&(Vertex|Fundamental) == 0 {
		which |= Vertex
	}
	if which&Vertex != 0 && which&Fundamental != 0 {
		return 0, 0, fmt.Errorf("both vertex and fundamental requested")
	}
	if which&(EmbeddedOnly|ImmersedSingular) == 0 {
		which |= EmbeddedOnly
	}
	if which&EmbeddedOnly != 0 && which&ImmersedSingular != 0 {
		return 0, 0, fmt.Errorf("both embedded and immersed requested")
	}
	switch {
	case alg == AlgDefault && which&Vertex != 0:
		alg = AlgDD
	case alg == AlgDefault:
		alg = AlgHilbertPrimal
	case which&Vertex != 0 && !alg.forVertex():
		return 0, 0, fmt.Errorf("%s cannot list vertex surfaces", alg)
	case which&Fundamental != 0 && !alg.forFundamental():
		return 0, 0, fmt.Errorf("%s cannot list fundamental surfaces", alg)
	}
	return which, alg, nil
}

var backends = map[Algorithm]func(context.Context, enumerate.Cone, enumerate.Constraints, ...enumerate.Option) (enumerate.Result, error){
	AlgDD:            enumerate.DoubleDescription,
	AlgTree:          enumerate.TreeTraversal,
	AlgHilbertDual:   enumerate.HilbertDual,
	AlgHilbertCD:     enumerate.HilbertCD,
	AlgHilbertPrimal: enumerate.HilbertPrimal,
}

// Enumerate lists the vertex or fundamental normal surfaces of t in
// coordinates c. The triangulation must be 3-dimensional and valid; ideal
// vertices are allowed, and in quad coordinates they may give non-compact
// surfaces. An empty triangulation gives an empty list.
//
// Defaults: Vertex when neither Vertex nor Fundamental is set, EmbeddedOnly
// when neither EmbeddedOnly nor ImmersedSingular is set, and AlgDD or
// AlgHilbertPrimal for AlgDefault.
func Enumerate(ctx context.Context, t *triangulation.Triangulation, c Coords, which ListType, alg Algorithm, opts ...Option) (*List, error) {
	if err := checkTriangulation(opEnumerate, t, c); err != nil {
		return nil, err
	}
	if !t.IsValid() {
		return nil, normalErrorf(opEnumerate, ErrInvalidArgument, "triangulation is not valid")
	}
	which, alg, err := resolve(which, alg)
	if err != nil {
		return nil, normalErrorf(opEnumerate, ErrInvalidArgument, "%v", err)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	list := &List{tri: t, coords: c, which: which, alg: alg}
	if t.IsEmpty() {
		if o.Tracker != nil {
			o.Tracker.Finish()
		}
		return list, nil
	}

	m, err := MatchingEquations(t, c)
	if err != nil {
		return nil, err
	}
	cone, err := enumerate.NewCone(m)
	if err != nil {
		return nil, normalErrorf(opEnumerate, ErrInvalidArgument, "%v", err)
	}
	var cons enumerate.Constraints
	if which.embedded() {
		if cons, err = ValidityConstraints(t, c); err != nil {
			return nil, err
		}
	}
	o.Logger.Debug("normal surface enumeration",
		zap.Stringer("coords", c), zap.Stringer("list", which), zap.Stringer("algorithm", alg),
		zap.Int("tetrahedra", t.Size()), zap.Int("equations", m.Rows()))

	res, err := backends[alg](ctx, cone, cons,
		enumerate.WithTracker(o.Tracker), enumerate.WithLogger(o.Logger))
	if err != nil {
		return nil, normalErrorf(opEnumerate, ErrInvalidArgument, "%v", err)
	}
	for _, v := range res.Vectors {
		list.surfaces = append(list.surfaces, newSurface(t, c, v))
	}
	list.cancelled = res.Cancelled
	return list, nil
}
