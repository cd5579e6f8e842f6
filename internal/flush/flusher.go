package flush

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/sfcore/internal/logger"
)

// DefaultDelay is the debounce window used when New is given a
// non-positive delay.
const DefaultDelay = 5 * time.Second

// Flushable is the subset of *store.Store the debounce glue layer depends
// on. Kept as a narrow local interface so tests can substitute a fake
// without pulling in the real bucket-file store.
type Flushable interface {
	FlushDirty(ctx context.Context) error
}

// Flusher coalesces bursts of mutation notifications into a single
// FlushDirty call: every Notify (re-)arms a one-shot timer, so a flush
// only fires once the caller has gone quiet for delay (spec §5 "glue
// layer"). The timer is re-armable only after a flush completes — while
// one is in flight, Notify records that another is wanted and lets fire
// itself do the re-arming on exit, so at most one FlushDirty call ever
// runs at a time from this Flusher. Store serializes its own methods with
// a mutex, so this single-flight rule keeps flushes from queueing up
// behind each other rather than guarding Store's maps.
type Flusher struct {
	store Flushable
	delay time.Duration
	ctx   context.Context
	log   *logger.Logger

	mu       sync.Mutex
	timer    *time.Timer
	flushing bool
	pending  bool
	wg       sync.WaitGroup
}

// New builds a Flusher that calls store.FlushDirty(ctx) after delay has
// elapsed since the most recent Notify. A non-positive delay defaults to
// DefaultDelay. ctx governs every flush this Flusher performs; cancelling
// it fails in-flight and future flushes but does not itself stop the
// timer — call Stop for that.
func New(ctx context.Context, store Flushable, delay time.Duration, log *logger.Logger) *Flusher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Flusher{store: store, delay: delay, ctx: ctx, log: log}
}

// Notify (re-)arms the debounce timer. Safe to call from multiple
// goroutines and any number of times per debounce window. If a flush is
// currently in flight, Notify does not touch the timer — it only flags
// that another flush is wanted once the in-flight one finishes, so a
// burst of mutations during a slow Sync round trip never starts a second,
// concurrent FlushDirty.
func (f *Flusher) Notify() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.flushing {
		f.pending = true
		return
	}
	f.armLocked()
}

// armLocked (re)starts the debounce timer. Callers must hold f.mu. Every
// timer armed here is paired with exactly one wg.Add(1): if a previous
// timer is still pending, stopping it successfully cancels that pending
// fire, so its Add is offset with a matching Done before the new one is
// counted — otherwise Stop/Flush would wait forever on a fire that will
// never run.
func (f *Flusher) armLocked() {
	if f.timer != nil && f.timer.Stop() {
		f.wg.Done()
	}
	f.wg.Add(1)
	f.timer = time.AfterFunc(f.delay, f.fire)
}

// fire is the timer callback. It is the only place that transitions
// flushing true->false, and the only place that re-arms on the caller's
// behalf (via the pending flag) once a flush completes — mirroring the
// teacher's clientSyncJob, which never lets a new tick start while the
// previous one is still running.
func (f *Flusher) fire() {
	f.mu.Lock()
	f.flushing = true
	f.pending = false
	f.mu.Unlock()

	if err := f.store.FlushDirty(f.ctx); err != nil {
		f.log.Error().Err(err).Msg("debounced flush failed")
	}

	f.mu.Lock()
	f.flushing = false
	rearm := f.pending
	f.pending = false
	if rearm {
		f.armLocked()
	}
	f.mu.Unlock()

	f.wg.Done()
}

// Flush cancels any pending timer and flushes synchronously, for callers
// that need a durability guarantee before proceeding (e.g. before exit).
// If a debounced flush is already in flight, Flush waits for it to finish
// rather than racing it with a second concurrent FlushDirty call.
func (f *Flusher) Flush(ctx context.Context) error {
	f.mu.Lock()
	if f.timer != nil {
		if f.timer.Stop() {
			f.wg.Done()
		}
		f.timer = nil
	}
	f.pending = false
	waitForInFlight := f.flushing
	f.mu.Unlock()

	if waitForInFlight {
		f.wg.Wait()
	}

	return f.store.FlushDirty(ctx)
}

// Stop cancels any pending debounce timer and blocks until any flush
// already in flight has returned, matching the block-until-exited
// discipline of the teacher's clientSyncJob.Stop. Safe to call when no
// timer is armed and no flush is running.
func (f *Flusher) Stop() {
	f.mu.Lock()
	if f.timer != nil {
		if f.timer.Stop() {
			f.wg.Done()
		}
		f.timer = nil
	}
	f.pending = false
	f.mu.Unlock()

	f.wg.Wait()
}
