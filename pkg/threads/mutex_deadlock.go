//go:build deadlock

package threads

import (
	"syscall"

	"github.com/sasha-s/go-deadlock"
)

// DeadlockDetection is true if the lock-order and timeout detector backs
// every Mutex. Build with -tags=deadlock to enable it.
const DeadlockDetection = true

type nativeMutex = deadlock.Mutex

func init() {
	deadlock.Opts.OnPotentialDeadlock = func() {
		fatal("potential deadlock", syscall.EDEADLK)
	}
}
