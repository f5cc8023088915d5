package threads

import (
	"sync/atomic"
	"syscall"

	"github.com/petermattis/goid"
)

// Mutex is a mutual exclusion lock. The zero value is an unlocked,
// non-recursive mutex.
//
// In debug mode relocking a non-recursive mutex from its owner, unlocking a
// mutex the caller does not hold and destroying a locked mutex are fatal.
// Otherwise those mistakes are not checked: relocking deadlocks.
type Mutex struct {
	mu        nativeMutex
	owner     atomic.Int64
	depth     int
	recursive bool
}

// NewMutex returns an initialized non-recursive mutex.
func NewMutex() *Mutex {
	m := &Mutex{}
	m.Init()
	return m
}

// NewRecursiveMutex returns an initialized recursive mutex.
func NewRecursiveMutex() *Mutex {
	m := &Mutex{}
	m.InitRecursive()
	return m
}

// Init initializes m as a non-recursive mutex. m must not be locked.
func (m *Mutex) Init() {
	m.owner.Store(0)
	m.depth = 0
	m.recursive = false
}

// InitRecursive initializes m so that its owner may lock it again; each Lock
// must be matched by an Unlock.
func (m *Mutex) InitRecursive() {
	m.Init()
	m.recursive = true
}

// Destroy checks that m is no longer in use.
func (m *Mutex) Destroy() {
	if debug() && m.owner.Load() != 0 {
		fatal("destroying mutex", syscall.EBUSY)
	}
}

// Lock acquires m, blocking until it is available. It is not a cancellation
// point.
func (m *Mutex) Lock() {
	me := goid.Get()
	if m.owner.Load() == me {
		if m.recursive {
			m.depth++
			return
		}
		if debug() {
			fatal("locking mutex", syscall.EDEADLK)
		}
	}
	m.mu.Lock()
	m.owner.Store(me)
	m.depth = 1
}

// TryLock acquires m if it is free and reports whether it did. A mutex held
// by the caller counts as busy unless it is recursive.
func (m *Mutex) TryLock() bool {
	me := goid.Get()
	if m.owner.Load() == me {
		if m.recursive {
			m.depth++
			return true
		}
		return false
	}
	if !m.mu.TryLock() {
		return false
	}
	m.owner.Store(me)
	m.depth = 1
	return true
}

// Unlock releases m.
func (m *Mutex) Unlock() {
	if m.owner.Load() != goid.Get() {
		if debug() {
			fatal("unlocking mutex", syscall.EPERM)
		}
	} else if m.depth > 1 {
		m.depth--
		return
	}
	m.depth = 0
	m.owner.Store(0)
	m.mu.Unlock()
}

// AssertLocked checks that the caller holds m. Only active in debug mode.
func (m *Mutex) AssertLocked() {
	if debug() && m.owner.Load() != goid.Get() {
		fatal("asserting mutex is locked", syscall.EPERM)
	}
}

// locked reports whether the calling goroutine holds m.
func (m *Mutex) locked() bool {
	return m.owner.Load() == goid.Get()
}
