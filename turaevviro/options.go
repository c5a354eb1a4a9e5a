package turaevviro

import (
	"context"

	"github.com/katalvlaran/trimanifold/progress"
)

// Options configures Evaluate.
type Options struct {
	Ctx     context.Context
	Tracker *progress.Tracker
}

// Option configures Evaluate via functional arguments.
type Option func(*Options)

// WithContext stops the search when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTracker reports progress to t and stops when it is cancelled.
func WithTracker(t *progress.Tracker) Option {
	return func(o *Options) { o.Tracker = t }
}
