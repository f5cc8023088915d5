package mtime

import (
	"fmt"
	"time"
)

const (
	// ClockMonotonic derives Mtime values from the monotonic clock, anchored
	// to the wall clock once at construction.
	ClockMonotonic = "monotonic"
	// ClockWall reads the wall clock on every call. Deadlines computed with it
	// move when the system time is adjusted.
	ClockWall = "wallclock"
)

// Clock reports the current time as microseconds since the epoch.
type Clock interface {
	Now() Mtime
}

type monotonicClock struct {
	base time.Time
}

// NewMonotonicClock returns a clock immune to wall-clock adjustments made
// after it was created.
func NewMonotonicClock() Clock {
	return &monotonicClock{base: time.Now()}
}

func (c *monotonicClock) Now() Mtime {
	return FromTime(c.base) + FromDuration(time.Since(c.base))
}

type wallClock struct{}

// NewWallClock returns a clock reading the system real-time clock.
func NewWallClock() Clock {
	return wallClock{}
}

func (wallClock) Now() Mtime {
	// Round(0) strips the monotonic reading
	return FromTime(time.Now().Round(0))
}

// NewClock returns the clock for the given mode name. An empty name selects
// the monotonic clock.
func NewClock(mode string) (Clock, error) {
	switch mode {
	case "", ClockMonotonic:
		return NewMonotonicClock(), nil
	case ClockWall:
		return NewWallClock(), nil
	default:
		return nil, fmt.Errorf("unknown clock '%s'", mode)
	}
}

// Until returns how long remains before deadline according to c.
func Until(c Clock, deadline Mtime) time.Duration {
	return ToDuration(deadline - c.Now())
}
