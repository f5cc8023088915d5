package threads

import (
	"time"

	"github.com/christophe-duc/mediathread/pkg/mtime"
)

// Now returns the current time from the configured clock.
func Now() mtime.Mtime {
	return conf().clock.Now()
}

// Mwait sleeps until deadline, read from the configured clock. It returns at
// once if the deadline has passed. Like Msleep it is a cancellation point.
func Mwait(deadline mtime.Mtime) {
	Msleep(deadline - Now())
}

// Msleep sleeps for delay. It is a cancellation point on entry, and a Cancel
// wakes the sleeper at once so it can end; other interruptions do not cut the
// sleep short.
func Msleep(delay mtime.Mtime) {
	TestCancel()
	if delay <= 0 {
		return
	}

	s := conf()
	t := self()
	var kill chan struct{}
	if t != nil {
		kill = t.killch
	}

	end := time.Now().Add(mtime.ToDuration(delay))
	for {
		left := time.Until(end)
		if left <= 0 {
			return
		}
		if left > s.sleepQuantum {
			left = s.sleepQuantum
		}

		timer := time.NewTimer(left)
		select {
		case <-timer.C:
		case <-kill:
			timer.Stop()
			// with cancellation disabled this only shortens the quantum
			t.testCancel()
		}
	}
}
