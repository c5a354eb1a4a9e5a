package enumerate

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/vector"
)

// pollEvery is the number of inner steps between cancellation checks.
const pollEvery = 1024

// Options configures the enumerators.
type Options struct {
	// Ctx is checked alongside the context passed to the enumerator.
	Ctx context.Context

	// Tracker reports progress and may cancel the run.
	Tracker *progress.Tracker

	// Logger receives debug records at hyperplane and level boundaries.
	Logger *zap.Logger

	// Emit is called synchronously for every result vector, in emission
	// order.
	Emit func(vector.Vector)

	err error
}

// Option configures an enumerator via functional arguments.
// If an Option is invalid it is recorded and surfaced as
// ErrOptionViolation when the enumerator runs.
type Option func(*Options)

// DefaultOptions returns options with a no-op logger and callback.
func DefaultOptions() Options {
	return Options{
		Logger: zap.NewNop(),
		Emit:   func(vector.Vector) {},
	}
}

// WithContext adds a second context that can stop the run.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
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

// WithEmit registers the per-vector callback.
func WithEmit(fn func(vector.Vector)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Emit = fn
		}
	}
}

// Result holds the vectors found. When Cancelled is set the list is partial.
type Result struct {
	Vectors   []vector.Vector
	Cancelled bool
}

// run carries the per-call state shared by every algorithm.
type run struct {
	ctx   context.Context
	opts  Options
	steps int
	res   Result
}

func newRun(ctx context.Context, op string, c Cone, cons Constraints, opts []Option) (*run, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("enumerate.%s: %w", op, o.err)
	}
	if err := c.validate(op); err != nil {
		return nil, err
	}
	if err := cons.validate(op, c.Dim()); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r := &run{ctx: ctx, opts: o}
	r.res.Cancelled = r.poll()
	return r, nil
}

func (r *run) poll() bool {
	if progress.Poll(r.ctx, r.opts.Tracker) {
		return true
	}
	return r.opts.Ctx != nil && r.opts.Ctx.Err() != nil
}

// stopped is called from inner loops; it polls every pollEvery steps.
func (r *run) stopped() bool {
	if r.res.Cancelled {
		return true
	}
	r.steps++
	if r.steps%pollEvery == 0 && r.poll() {
		r.res.Cancelled = true
	}
	return r.res.Cancelled
}

// boundary is called between hyperplanes or levels; it always polls.
func (r *run) boundary(done, total int) bool {
	if !r.res.Cancelled && r.poll() {
		r.res.Cancelled = true
	}
	if r.opts.Tracker != nil && total > 0 && !r.res.Cancelled {
		r.opts.Tracker.SetPercent(100 * float64(done) / float64(total))
	}
	return r.res.Cancelled
}

func (r *run) emit(v vector.Vector) {
	r.res.Vectors = append(r.res.Vectors, v)
	r.opts.Emit(v)
}

// finish sorts vs lexicographically when sorted is set, emits them and
// closes the tracker.
func (r *run) finish(vs []vector.Vector, sorted bool) Result {
	if sorted {
		sort.Slice(vs, func(i, j int) bool { return vs[i].Compare(vs[j]) < 0 })
	}
	for _, v := range vs {
		r.emit(v)
	}
	r.done()
	return r.res
}

// sortResult puts the vectors emitted so far in lexicographic order.
func (r *run) sortResult() {
	vs := r.res.Vectors
	sort.Slice(vs, func(i, j int) bool { return vs[i].Compare(vs[j]) < 0 })
}

func (r *run) done() {
	if r.opts.Tracker != nil && !r.res.Cancelled {
		r.opts.Tracker.Finish()
	}
}
