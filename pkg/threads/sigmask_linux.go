//go:build linux && (amd64 || arm64)

package threads

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// signals that would otherwise terminate the process if delivered to a
// created thread rather than to the runtime's signal handling
var terminationSignals = []syscall.Signal{unix.SIGINT, unix.SIGQUIT, unix.SIGTERM, unix.SIGPIPE}

// blockTerminationSignals blocks terminationSignals on the calling OS thread.
// The caller must be locked to its OS thread.
func blockTerminationSignals() error {
	var set unix.Sigset_t
	for _, sig := range terminationSignals {
		n := uint(sig) - 1
		set.Val[n/64] |= 1 << (n % 64)
	}
	return unix.PthreadSigmask(unix.SIG_BLOCK, &set, nil)
}

// blockedSignals returns the signals of terminationSignals that are blocked
// on the calling OS thread.
func blockedSignals() ([]syscall.Signal, error) {
	var old unix.Sigset_t
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, nil, &old); err != nil {
		return nil, err
	}
	blocked := []syscall.Signal{}
	for _, sig := range terminationSignals {
		n := uint(sig) - 1
		if old.Val[n/64]&(1<<(n%64)) != 0 {
			blocked = append(blocked, sig)
		}
	}
	return blocked, nil
}
