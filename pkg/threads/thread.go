package threads

import (
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/christophe-duc/mediathread/pkg/mtime"
	"github.com/petermattis/goid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Entry is the function a thread runs. Its result is returned by Join.
type Entry func(data any) any

// State is the cancellation state of a thread.
type State int

const (
	// Running threads have not been asked to stop.
	Running State = iota
	// CancelRequested threads have been cancelled but have not reached a
	// cancellation point where they may stop.
	CancelRequested
	// Terminating threads are unwinding from a cancellation point.
	Terminating
	// Finished threads have ended, either way.
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case CancelRequested:
		return "cancel-requested"
	case Terminating:
		return "terminating"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Thread is the handle of a thread created by Clone or CloneDetached.
type Thread struct {
	gid atomic.Int64
	tid atomic.Int64

	// lock protects cond and released and is never held across a blocking wait
	lock     Mutex
	cond     *Cond
	released bool

	killed      atomic.Bool
	terminating atomic.Bool
	finished    atomic.Bool
	// only read and written by the thread itself
	killable bool
	detached bool

	entry  Entry
	data   any
	result any

	// closed once the thread has ended
	done chan struct{}
	// poked by Cancel to interrupt sleeps and joins
	killch chan struct{}
	slots  *semaphore.Weighted
	log    *logrus.Entry
}

// Clone starts a joinable thread running entry(data). The priority is
// accepted for compatibility and ignored. Clone fails with ENOMEM when the
// configured maximum number of threads is reached.
func Clone(entry Entry, data any, priority int) (*Thread, error) {
	return clone(entry, data, priority, false)
}

// CloneDetached starts a thread that releases its own handle when it ends,
// including when it ends at a cancellation point. The returned handle may be
// used to Cancel the thread and may be ignored, but must not be joined.
func CloneDetached(entry Entry, data any, priority int) (*Thread, error) {
	return clone(entry, data, priority, true)
}

func clone(entry Entry, data any, priority int, detached bool) (*Thread, error) {
	s := conf()
	if s.slots != nil && !s.slots.TryAcquire(1) {
		return nil, WrapError(newThreadError("creating thread", syscall.ENOMEM))
	}

	t := &Thread{
		killable: true,
		detached: detached,
		entry:    entry,
		data:     data,
		done:     make(chan struct{}),
		killch:   make(chan struct{}, 1),
		slots:    s.slots,
	}
	t.lock.Init()
	t.log = log().WithFields(logrus.Fields{
		"detached": detached,
		"priority": priority,
	})

	go t.run(s)
	return t, nil
}

// run is the trampoline of every created thread.
func (t *Thread) run(s *settings) {
	if s.lockOSThread {
		// never unlocked: the OS thread ends with the goroutine
		runtime.LockOSThread()
		if s.blockSignals {
			if err := blockTerminationSignals(); err != nil {
				t.log.WithError(err).Warn("could not block termination signals")
			}
		}
	}

	gid := goid.Get()
	t.gid.Store(gid)
	t.tid.Store(int64(gettid()))
	registry.Store(gid, t)
	t.log = t.log.WithField("goroutine", gid)
	t.log.Debug("thread started")

	defer t.exit()
	t.result = t.entry(t.data)
}

func (t *Thread) exit() {
	// destructors are not cancellation points
	t.killable = false
	gid := t.gid.Load()
	runThreadVarDestructors(gid)
	registry.Delete(gid)

	t.finished.Store(true)
	if t.terminating.Load() {
		t.log.Debug("thread cancelled")
	} else {
		t.log.Debug("thread finished")
	}
	if t.detached {
		t.release()
	}
	close(t.done)
}

// release frees the handle's resources. It must happen exactly once.
func (t *Thread) release() {
	t.lock.Lock()
	already := t.released
	t.released = true
	t.lock.Unlock()

	if already {
		if debug() {
			fatal("releasing thread", syscall.EINVAL)
		}
		return
	}
	if t.slots != nil {
		t.slots.Release(1)
	}
}

// Join waits for t to end, releases its handle and returns what its entry
// function returned, or nil if it ended at a cancellation point. Join is a
// cancellation point for the caller, also while waiting.
func (t *Thread) Join() any {
	TestCancel()

	if t.detached {
		if debug() {
			fatal("joining thread", syscall.EINVAL)
		}
		return nil
	}
	if me := self(); me == t {
		if debug() {
			fatal("joining thread", syscall.EDEADLK)
		}
		return nil
	}

	if s := conf(); s.pollJoin {
		for !t.finished.Load() {
			Msleep(mtime.FromDuration(s.joinPollInterval))
		}
	}
	t.waitDone()

	t.release()
	return t.result
}

func (t *Thread) waitDone() {
	me := self()
	var kill chan struct{}
	if me != nil {
		kill = me.killch
	}
	for {
		select {
		case <-t.done:
			return
		case <-kill:
			me.testCancel()
		}
	}
}

// SetPriority is not supported; it does nothing and reports success.
func (t *Thread) SetPriority(priority int) error {
	return nil
}

// State reports where t is in its life.
func (t *Thread) State() State {
	select {
	case <-t.done:
		return Finished
	default:
	}
	switch {
	case t.terminating.Load():
		return Terminating
	case t.killed.Load():
		return CancelRequested
	}
	return Running
}

// Detached reports whether t was created by CloneDetached.
func (t *Thread) Detached() bool {
	return t.detached
}

// ID returns the goroutine id of t, or 0 if it has not started yet.
func (t *Thread) ID() int64 {
	return t.gid.Load()
}

// OSThreadID returns the id of the OS thread t started on, or 0 if it has not
// started yet. It only stays meaningful while t is locked to its OS thread.
func (t *Thread) OSThreadID() int {
	return int(t.tid.Load())
}
