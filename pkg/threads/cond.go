package threads

import (
	"sync"
	"syscall"
	"time"

	"github.com/christophe-duc/mediathread/pkg/mtime"
	"github.com/samber/lo"
)

// Cond is a condition variable whose waits are cancellation points. The zero
// value is ready to use.
//
// A thread blocked in Wait or TimedWait is woken by Cancel so it can observe
// the request. Like any condition variable, waits may also return without a
// matching Signal; callers re-check their predicate in a loop.
type Cond struct {
	mu        sync.Mutex
	waiters   []chan struct{}
	destroyed bool
	// deadlines are wall-clock microseconds since the epoch
	daytime bool
}

// NewCond returns an initialized condition variable.
func NewCond() *Cond {
	c := &Cond{}
	c.Init()
	return c
}

// NewDaytimeCond returns a condition variable initialized with InitDaytime.
func NewDaytimeCond() *Cond {
	c := &Cond{}
	c.InitDaytime()
	return c
}

// Init (re)initializes c. No goroutine may be waiting on it.
func (c *Cond) Init() {
	c.init(false)
}

// InitDaytime is Init, except TimedWait deadlines are read against the wall
// clock (see mtime.FromTime) whatever clock the layer is configured with.
func (c *Cond) InitDaytime() {
	c.init(true)
}

func (c *Cond) init(daytime bool) {
	c.mu.Lock()
	c.waiters = nil
	c.destroyed = false
	c.daytime = daytime
	c.mu.Unlock()
}

// Destroy checks that no goroutine is waiting on c.
func (c *Cond) Destroy() {
	c.mu.Lock()
	busy := len(c.waiters) > 0
	c.destroyed = true
	c.mu.Unlock()
	if busy && debug() {
		fatal("destroying condition", syscall.EBUSY)
	}
}

// Signal wakes the longest waiting goroutine, if any.
func (c *Cond) Signal() {
	c.mu.Lock()
	if c.destroyed && debug() {
		c.mu.Unlock()
		fatal("signaling condition variable", syscall.EINVAL)
	}
	if len(c.waiters) > 0 {
		close(c.waiters[0])
		c.waiters[0] = nil
		c.waiters = c.waiters[1:]
	}
	c.mu.Unlock()
}

// Broadcast wakes every waiting goroutine.
func (c *Cond) Broadcast() {
	c.mu.Lock()
	for _, w := range c.waiters {
		close(w)
	}
	c.waiters = nil
	c.mu.Unlock()
}

// Wait atomically unlocks m and blocks until c is signaled, then locks m
// again before returning. m must be held by the caller.
//
// When a cancelled thread leaves Wait at a cancellation point, m is held
// again first, so the thread's deferred calls must release it.
func (c *Cond) Wait(m sync.Locker) {
	c.checkHeld(m, "waiting on condition")
	t := self()
	if t != nil {
		t.testCancel()
	}

	w := c.enqueue()
	if t != nil && t.beginWait(c) {
		c.dequeue(w)
	} else {
		m.Unlock()
		<-w
		m.Lock()
	}

	if t != nil {
		t.endWait()
		t.testCancel()
	}
}

// TimedWait is Wait bounded by an absolute deadline, read from the clock the
// layer is configured with, or from the wall clock for a daytime condition.
// It returns ErrTimedOut if the deadline passed
// before c was signaled. A deadline already in the past does not block.
func (c *Cond) TimedWait(m sync.Locker, deadline mtime.Mtime) error {
	c.checkHeld(m, "timed-waiting on condition")
	t := self()
	if t != nil {
		t.testCancel()
	}

	timeout := c.until(deadline)
	if timeout <= 0 {
		return ErrTimedOut
	}

	var err error
	w := c.enqueue()
	if t != nil && t.beginWait(c) {
		c.dequeue(w)
	} else {
		timer := time.NewTimer(timeout)
		m.Unlock()
		select {
		case <-w:
		case <-timer.C:
			// lost a race with Signal if w is no longer queued
			if c.dequeue(w) {
				err = ErrTimedOut
			}
		}
		timer.Stop()
		m.Lock()
	}

	if t != nil {
		t.endWait()
		t.testCancel()
	}
	return err
}

func (c *Cond) until(deadline mtime.Mtime) time.Duration {
	c.mu.Lock()
	daytime := c.daytime
	c.mu.Unlock()
	if daytime {
		return time.Until(mtime.ToTime(deadline))
	}
	return mtime.Until(conf().clock, deadline)
}

func (c *Cond) enqueue() chan struct{} {
	w := make(chan struct{})
	c.mu.Lock()
	if c.destroyed && debug() {
		c.mu.Unlock()
		fatal("waiting on condition", syscall.EINVAL)
	}
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()
	return w
}

// dequeue removes w and reports whether it was still queued.
func (c *Cond) dequeue(w chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !lo.Contains(c.waiters, w) {
		return false
	}
	c.waiters = lo.Without(c.waiters, w)
	return true
}

func (c *Cond) checkHeld(m sync.Locker, action string) {
	if !debug() {
		return
	}
	if mu, ok := m.(*Mutex); ok && !mu.locked() {
		fatal(action, syscall.EPERM)
	}
}
