package flush

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	err         error
	delay       time.Duration
}

func (f *fakeStore) FlushDirty(_ context.Context) error {
	cur := f.inFlight.Add(1)
	for {
		max := f.maxInFlight.Load()
		if cur <= max || f.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.calls.Add(1)
	f.inFlight.Add(-1)
	return f.err
}

func TestFlusher_CoalescesBurstIntoOneFlush(t *testing.T) {
	store := &fakeStore{}
	f := New(context.Background(), store, 20*time.Millisecond, nil)

	for i := 0; i < 5; i++ {
		f.Notify()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return store.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), store.calls.Load())
}

func TestFlusher_StopCancelsPendingTimer(t *testing.T) {
	store := &fakeStore{}
	f := New(context.Background(), store, 15*time.Millisecond, nil)

	f.Notify()
	f.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), store.calls.Load())
}

func TestFlusher_FlushIsSynchronousAndCancelsTimer(t *testing.T) {
	store := &fakeStore{}
	f := New(context.Background(), store, time.Hour, nil)

	f.Notify()
	require.NoError(t, f.Flush(context.Background()))
	assert.Equal(t, int32(1), store.calls.Load())

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), store.calls.Load(), "Flush must have cancelled the pending timer")
}

func TestFlusher_DefaultDelayAppliedWhenNonPositive(t *testing.T) {
	f := New(context.Background(), &fakeStore{}, 0, nil)
	assert.Equal(t, DefaultDelay, f.delay)
}

// TestFlusher_NeverRunsConcurrentFlushes is the single-flight guarantee
// spec §5 requires: a burst of Notify calls arriving while a slow flush
// (standing in for a network-bound Sync round trip) is still in flight
// must never start a second, concurrent FlushDirty — only re-arm once the
// first one returns.
func TestFlusher_NeverRunsConcurrentFlushes(t *testing.T) {
	store := &fakeStore{delay: 40 * time.Millisecond}
	f := New(context.Background(), store, 10*time.Millisecond, nil)

	f.Notify()
	// Keep notifying well past the debounce delay while the first flush
	// is still sleeping, as a caller mutating the store during a slow
	// sync round trip would.
	for i := 0; i < 6; i++ {
		time.Sleep(10 * time.Millisecond)
		f.Notify()
	}

	require.Eventually(t, func() bool { return store.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	f.Stop()

	assert.LessOrEqual(t, store.maxInFlight.Load(), int32(1), "two FlushDirty calls overlapped")
}

// TestFlusher_StopWaitsForInFlightFlush mirrors the teacher's
// clientSyncJob.Stop contract: Stop does not return while a flush it
// triggered is still running.
func TestFlusher_StopWaitsForInFlightFlush(t *testing.T) {
	store := &fakeStore{delay: 30 * time.Millisecond}
	f := New(context.Background(), store, 5*time.Millisecond, nil)

	f.Notify()
	time.Sleep(10 * time.Millisecond) // let the timer fire and fire() start flushing
	f.Stop()

	assert.Equal(t, int32(1), store.calls.Load(), "Stop must not return before the in-flight flush completes")
}
