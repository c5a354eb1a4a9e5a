package facetpairing

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/progress"
)

// pollEvery is the number of search nodes between cancellation checks.
const pollEvery = 256

// Options configures Enumerate.
type Options struct {
	// Emit receives every pairing found, in generation order. The pairing
	// is a private copy.
	Emit func(*FacetPairing)

	// Tracker reports progress and may cancel the search.
	Tracker *progress.Tracker

	// Logger receives debug records at each top-level branch.
	Logger *zap.Logger
}

// Option configures Enumerate via functional arguments.
type Option func(*Options)

// DefaultOptions returns options with no callback, no tracker and a no-op
// logger.
func DefaultOptions() Options {
	return Options{Emit: func(*FacetPairing) {}, Logger: zap.NewNop()}
}

// WithEmit registers the per-pairing callback.
func WithEmit(fn func(*FacetPairing)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Emit = fn
		}
	}
}

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

// Result summarises an enumeration.
type Result struct {
	Count     int
	Cancelled bool
}

type generator struct {
	ctx   context.Context
	opts  Options
	p     *FacetPairing
	nodes int
	res   Result
}

// Enumerate lists every closed connected canonical facet pairing of n
// simplices of the given dimension, each exactly once up to isomorphism.
// Cancellation through ctx or the tracker is not an error: the result
// reports the pairings found so far with Cancelled set.
func Enumerate(ctx context.Context, dim, n int, opts ...Option) (Result, error) {
	if err := checkDim("Enumerate", dim); err != nil {
		return Result{}, err
	}
	if n < 1 {
		return Result{}, pairErrorf("Enumerate", ErrInvalidArgument, "size %d must be positive", n)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	g := &generator{ctx: ctx, opts: o, p: newPairing(dim, n)}
	g.res.Cancelled = progress.Poll(ctx, o.Tracker)
	if (dim+1)*n%2 == 0 && !g.res.Cancelled {
		g.opts.Logger.Debug("facet pairing census started", zap.Int("dim", dim), zap.Int("size", n))
		g.search(0, -1, 0, true)
	}
	if o.Tracker != nil && !g.res.Cancelled {
		o.Tracker.Finish()
	}
	g.opts.Logger.Debug("facet pairing census finished",
		zap.Int("count", g.res.Count), zap.Bool("cancelled", g.res.Cancelled))
	return g.res, nil
}

func (g *generator) stop() bool {
	if g.res.Cancelled {
		return true
	}
	g.nodes++
	if g.nodes%pollEvery == 0 && progress.Poll(g.ctx, g.opts.Tracker) {
		g.res.Cancelled = true
	}
	return g.res.Cancelled
}

// search matches the first unmatched facet at or after pos. row is the
// simplex of the previous decision and maxUsed the largest simplex
// referenced so far.
func (g *generator) search(pos, row, maxUsed int, top bool) {
	if g.stop() {
		return
	}
	p := g.p
	d1 := p.dim + 1
	for pos < len(p.dest) && p.dest[pos].Simp != p.size {
		pos++
	}
	if pos == len(p.dest) {
		if p.IsCanonical() {
			g.res.Count++
			g.opts.Emit(p.Clone())
		}
		return
	}
	s, f := pos/d1, pos%d1
	if s != row && s > 0 {
		if s > maxUsed || !p.prefixIsCanonical(s) {
			return
		}
	}

	hi := min(maxUsed+1, p.size-1)
	branches := hi - s + 1
	for s2 := s; s2 <= hi; s2++ {
		f2 := -1
		for c := 0; c < d1; c++ {
			if (s2 != s || c != f) && p.IsUnmatched(s2, c) {
				f2 = c
				break
			}
		}
		if f2 < 0 {
			continue
		}
		a, b := FacetSpec{Simp: s, Facet: f}, FacetSpec{Simp: s2, Facet: f2}
		p.dest[pos], p.dest[p.index(s2, f2)] = b, a
		g.search(pos+1, s, max(maxUsed, s2), false)
		p.dest[pos], p.dest[p.index(s2, f2)] = FacetSpec{Simp: p.size}, FacetSpec{Simp: p.size}

		if top {
			done := s2 - s + 1
			if g.opts.Tracker != nil {
				g.opts.Tracker.SetPercent(100 * float64(done) / float64(branches))
			}
			g.opts.Logger.Debug("facet pairing branch done",
				zap.Int("branch", done), zap.Int("of", branches), zap.Int("found", g.res.Count))
		}
		if g.res.Cancelled {
			return
		}
	}
}
