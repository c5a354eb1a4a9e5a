package progress

import (
	"context"
	"sync"
	"time"
)

// Tracker records the progress of one long-running operation.
// The zero value is not usable; create trackers with NewTracker.
type Tracker struct {
	mu        sync.Mutex
	percent   float64
	stage     string
	cancelled bool
	finished  bool
	done      chan struct{}
}

// NewTracker returns a tracker at 0% with no stage.
func NewTracker() *Tracker {
	return &Tracker{done: make(chan struct{})}
}

// SetPercent advances the completion percentage. Values are clamped to
// [0, 100]; a value lower than the current one is ignored.
func (t *Tracker) SetPercent(p float64) {
	if p > 100 {
		p = 100
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if p > t.percent {
		t.percent = p
	}
}

// Percent returns the current completion percentage.
func (t *Tracker) Percent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percent
}

// SetStage replaces the stage description.
func (t *Tracker) SetStage(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stage = s
}

// Stage returns the current stage description.
func (t *Tracker) Stage() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage
}

// Cancel asks the operation to stop. It is idempotent.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.cancelled = true
	t.closeLocked()
}

// IsCancelled reports whether Cancel has been called.
func (t *Tracker) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Finish marks the operation complete and sets the percentage to 100
// unless the operation was cancelled.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return
	}
	t.finished = true
	if !t.cancelled {
		t.percent = 100
	}
	t.closeLocked()
}

// IsFinished reports whether Finish has been called.
func (t *Tracker) IsFinished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Done returns a channel closed once the tracker is cancelled or finished.
func (t *Tracker) Done() <-chan struct{} { return t.done }

func (t *Tracker) closeLocked() {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
}

// Poll reports whether work should stop: the context is done or the
// tracker (which may be nil) has been cancelled.
func Poll(ctx context.Context, t *Tracker) bool {
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	return t != nil && t.IsCancelled()
}

// Watchdog cancels t after d has elapsed or once ctx is done, whichever
// comes first. It stops watching when t is cancelled or finished by anyone
// else. The returned function stops the watchdog early and waits for its
// goroutine to exit; it may be called more than once.
func Watchdog(ctx context.Context, t *Tracker, d time.Duration) (stop func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			t.Cancel()
		case <-ctx.Done():
			t.Cancel()
		case <-t.Done():
		case <-quit:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(quit) })
		wg.Wait()
	}
}
