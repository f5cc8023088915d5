//go:build !deadlock

package threads

import "sync"

// DeadlockDetection is true if the lock-order and timeout detector backs
// every Mutex. Build with -tags=deadlock to enable it.
const DeadlockDetection = false

type nativeMutex = sync.Mutex
