package threads

import (
	"sync"
	"syscall"

	"github.com/petermattis/goid"
	"github.com/samber/lo"
)

const (
	// MaxThreadVars is the number of thread variables that may exist at once.
	MaxThreadVars = 1024
	// destructor rounds run at thread exit, as long as destructors set values again
	threadVarDestructorRounds = 4
)

// ThreadVar is a variable with one value per thread.
//
// Destructors only run for threads created by Clone or CloneDetached. Values
// set from other goroutines stay until they are cleared with Set(nil) or the
// variable is deleted.
type ThreadVar struct {
	destructor func(any)
	// goroutine id -> value
	values  sync.Map
	deleted bool
}

var threadVars struct {
	sync.Mutex
	live map[*ThreadVar]struct{}
}

// NewThreadVar creates a thread variable. destructor may be nil; otherwise it
// is called with the thread's value when a thread that set one exits. It fails
// with EAGAIN once MaxThreadVars variables exist.
func NewThreadVar(destructor func(any)) (*ThreadVar, error) {
	threadVars.Lock()
	defer threadVars.Unlock()

	if len(threadVars.live) >= MaxThreadVars {
		return nil, WrapError(newThreadError("creating thread variable", syscall.EAGAIN))
	}
	if threadVars.live == nil {
		threadVars.live = map[*ThreadVar]struct{}{}
	}
	v := &ThreadVar{destructor: destructor}
	threadVars.live[v] = struct{}{}
	return v, nil
}

// Delete frees the variable. Values still set are dropped without calling
// the destructor.
func (v *ThreadVar) Delete() {
	threadVars.Lock()
	if v.deleted {
		threadVars.Unlock()
		if debug() {
			fatal("deleting thread variable", syscall.EINVAL)
		}
		return
	}
	v.deleted = true
	delete(threadVars.live, v)
	threadVars.Unlock()

	v.values.Clear()
}

// Set stores value for the calling thread. A nil value clears it.
func (v *ThreadVar) Set(value any) error {
	threadVars.Lock()
	deleted := v.deleted
	threadVars.Unlock()
	if deleted {
		return WrapError(newThreadError("setting thread variable", syscall.EINVAL))
	}

	id := goid.Get()
	if value == nil {
		v.values.Delete(id)
		return nil
	}
	v.values.Store(id, value)
	return nil
}

// Get returns the calling thread's value, or nil if it has none.
func (v *ThreadVar) Get() any {
	value, ok := v.values.Load(goid.Get())
	if !ok {
		return nil
	}
	return value
}

func runThreadVarDestructors(id int64) {
	for round := 0; round < threadVarDestructorRounds; round++ {
		threadVars.Lock()
		vars := lo.Keys(threadVars.live)
		threadVars.Unlock()

		called := false
		for _, v := range vars {
			value, ok := v.values.LoadAndDelete(id)
			if !ok || v.destructor == nil {
				continue
			}
			v.destructor(value)
			called = true
		}
		if !called {
			return
		}
	}
}
