package threads

import (
	"runtime"
	"sync"

	"github.com/petermattis/goid"
)

// CancelState is the guard value returned by SaveCancel.
type CancelState bool

const (
	// CancelDisabled means cancellation points are ignored.
	CancelDisabled CancelState = false
	// CancelEnabled means a pending cancellation ends the thread at the next
	// cancellation point.
	CancelEnabled CancelState = true
)

// goroutine id -> *Thread, for threads created by this package
var registry sync.Map

func self() *Thread {
	v, ok := registry.Load(goid.Get())
	if !ok {
		return nil
	}
	return v.(*Thread)
}

// Self returns the handle of the calling thread, or nil if the caller was
// not started by Clone or CloneDetached.
func Self() *Thread {
	return self()
}

// Cancel asks t to end at its next cancellation point. If t is blocked in a
// condition wait, the condition variable is broadcast so t wakes up and
// notices; a sleeping or joining t is interrupted the same way.
func (t *Thread) Cancel() {
	t.killed.Store(true)
	select {
	case t.killch <- struct{}{}:
	default:
	}

	t.lock.Lock()
	if c := t.cond; c != nil {
		c.Broadcast()
	}
	t.lock.Unlock()
}

// TestCancel is a cancellation point: if the calling thread was cancelled
// and cancellation is enabled, the thread ends here.
func TestCancel() {
	if t := self(); t != nil {
		t.testCancel()
	}
}

func (t *Thread) testCancel() {
	if !t.killable {
		return
	}
	if !t.killed.Load() {
		return
	}

	t.terminating.Store(true)
	t.finished.Store(true)
	runtime.Goexit()
}

// SaveCancel disables cancellation for the calling thread and returns the
// previous state, to be handed back to RestoreCancel.
func SaveCancel() CancelState {
	t := self()
	if t == nil {
		return CancelDisabled
	}
	old := t.killable
	t.killable = false
	return CancelState(old)
}

// RestoreCancel restores a state returned by SaveCancel. It is not itself a
// cancellation point.
func RestoreCancel(state CancelState) {
	t := self()
	if t == nil {
		return
	}
	t.killable = bool(state)
}

// beginWait records that t is about to block on c and reports whether a
// cancellation it would act on is already pending.
func (t *Thread) beginWait(c *Cond) bool {
	t.lock.Lock()
	t.cond = c
	t.lock.Unlock()
	return t.killable && t.killed.Load()
}

func (t *Thread) endWait() {
	t.lock.Lock()
	t.cond = nil
	t.lock.Unlock()
}
