package progress_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/trimanifold/progress"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPercentIsMonotone(t *testing.T) {
	t.Parallel()
	tr := progress.NewTracker()
	tr.SetPercent(40)
	tr.SetPercent(10)
	assert.Equal(t, 40.0, tr.Percent())
	tr.SetPercent(250)
	assert.Equal(t, 100.0, tr.Percent())
	tr.SetStage("hyperplane 3")
	assert.Equal(t, "hyperplane 3", tr.Stage())
}

func TestCancelAndFinish(t *testing.T) {
	t.Parallel()
	tr := progress.NewTracker()
	assert.False(t, progress.Poll(context.Background(), tr))
	tr.Cancel()
	tr.Cancel()
	assert.True(t, tr.IsCancelled())
	assert.True(t, progress.Poll(context.Background(), tr))
	select {
	case <-tr.Done():
	default:
		t.Fatal("Done not closed after Cancel")
	}
	tr.Finish()
	assert.True(t, tr.IsFinished())
	assert.Less(t, tr.Percent(), 100.0)

	ok := progress.NewTracker()
	ok.Finish()
	assert.Equal(t, 100.0, ok.Percent())
	assert.False(t, ok.IsCancelled())
}

func TestPollWithoutTracker(t *testing.T) {
	t.Parallel()
	assert.False(t, progress.Poll(context.Background(), nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, progress.Poll(ctx, nil))
}

func TestConcurrentUpdates(t *testing.T) {
	t.Parallel()
	tr := progress.NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for p := 0; p <= 100; p += 10 {
				tr.SetPercent(float64(p))
				_ = tr.Percent()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100.0, tr.Percent())
}

func TestWatchdogTimesOut(t *testing.T) {
	t.Parallel()
	tr := progress.NewTracker()
	stop := progress.Watchdog(context.Background(), tr, 10*time.Millisecond)
	defer stop()
	select {
	case <-tr.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watchdog did not cancel")
	}
	assert.True(t, tr.IsCancelled())
}

func TestWatchdogFollowsContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	tr := progress.NewTracker()
	stop := progress.Watchdog(ctx, tr, time.Hour)
	cancel()
	<-tr.Done()
	stop()
	assert.True(t, tr.IsCancelled())
}

func TestWatchdogStop(t *testing.T) {
	t.Parallel()
	tr := progress.NewTracker()
	stop := progress.Watchdog(context.Background(), tr, time.Hour)
	stop()
	stop()
	assert.False(t, tr.IsCancelled())

	fin := progress.NewTracker()
	stop = progress.Watchdog(context.Background(), fin, time.Hour)
	fin.Finish()
	stop()
	require.False(t, fin.IsCancelled())
}
