package progress

import (
	"context"
	"sync"
	"time"

	"surveytranslator/types"
)

// subscriber channels are buffered; a slow observer drops intermediate
// snapshots instead of blocking the scheduler, and the stream heartbeat
// re-syncs it.
const subscriberBuffer = 16

// Tracker holds the live progress snapshot for the in-flight batch and
// fans mutations out to stream subscribers. The scheduler writes,
// observers only read.
type Tracker struct {
	mu   sync.RWMutex
	snap types.ProgressSnapshot
	subs map[chan types.ProgressSnapshot]struct{}
}

// NewTracker starts in the idle state, which is also what observers see
// before any batch has ever run.
func NewTracker() *Tracker {
	return &Tracker{
		snap: types.ProgressSnapshot{
			Status:  types.ProgressIdle,
			Message: "Waiting for a batch to start",
		},
		subs: make(map[chan types.ProgressSnapshot]struct{}),
	}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() types.ProgressSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap
}

// Set overwrites the snapshot and notifies subscribers. Sends are
// non-blocking: publishing is fire-and-forget from the writer's side.
func (t *Tracker) Set(snap types.ProgressSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = snap
	for ch := range t.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// subscribe registers an update channel; the returned func detaches it.
func (t *Tracker) subscribe() (chan types.ProgressSnapshot, func()) {
	ch := make(chan types.ProgressSnapshot, subscriberBuffer)
	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	return ch, func() {
		t.mu.Lock()
		delete(t.subs, ch)
		t.mu.Unlock()
	}
}

// Stream produces snapshots until a terminal status arrives, the caller
// cancels, or maxAge elapses. Every state change is emitted, plus a
// heartbeat at least every heartbeat interval so an observer with a dead
// connection can detect staleness. The hard cap exists because the
// hosting platform closes long-lived connections: the stream hands
// control back with a terminal timeout snapshot and the consumer is
// expected to reconnect. The returned channel is closed when the stream
// ends.
func (t *Tracker) Stream(ctx context.Context, heartbeat, maxAge time.Duration) <-chan types.ProgressSnapshot {
	out := make(chan types.ProgressSnapshot, 1)
	updates, cancel := t.subscribe()

	go func() {
		defer close(out)
		defer cancel()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		deadline := time.NewTimer(maxAge)
		defer deadline.Stop()

		emit := func(snap types.ProgressSnapshot) bool {
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}

		first := t.Snapshot()
		if !emit(first) || first.Status.Terminal() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-updates:
				if !emit(snap) || snap.Status.Terminal() {
					return
				}
			case <-ticker.C:
				snap := t.Snapshot()
				if !emit(snap) || snap.Status.Terminal() {
					return
				}
			case <-deadline.C:
				snap := t.Snapshot()
				snap.Status = types.ProgressTimeout
				snap.Message = "Stream timeout - reconnect for further progress"
				emit(snap)
				return
			}
		}
	}()

	return out
}
