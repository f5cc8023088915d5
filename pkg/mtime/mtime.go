// Package mtime holds the microsecond time representation shared by the
// threads layer and the conversions to and from the time package.
package mtime

import (
	"math"
	"time"
)

// ClockFreq is the number of Mtime ticks per second.
const ClockFreq = 1000000

// Mtime is a count of microseconds. Absolute values are relative to the Unix
// epoch, relative values are durations.
type Mtime int64

// FromDuration converts a duration, truncating to whole microseconds.
func FromDuration(d time.Duration) Mtime {
	return Mtime(d / time.Microsecond)
}

// ToDuration converts a relative Mtime into a duration, saturating instead of
// overflowing.
func ToDuration(m Mtime) time.Duration {
	if m > Mtime(math.MaxInt64/int64(time.Microsecond)) {
		return time.Duration(math.MaxInt64)
	}
	if m < Mtime(math.MinInt64/int64(time.Microsecond)) {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(m) * time.Microsecond
}

// FromTime converts an absolute time into microseconds since the epoch.
func FromTime(t time.Time) Mtime {
	return Mtime(t.UnixMicro())
}

// ToTime converts microseconds since the epoch into a wall-clock time.
func ToTime(m Mtime) time.Time {
	return time.Unix(Split(m))
}

// Split decomposes m into whole seconds and the remaining nanoseconds, the
// same shape as a timespec.
func Split(m Mtime) (sec int64, nsec int64) {
	sec = int64(m) / ClockFreq
	rem := int64(m) % ClockFreq
	if rem < 0 {
		sec--
		rem += ClockFreq
	}
	return sec, rem * (int64(time.Second) / ClockFreq)
}

func (m Mtime) String() string {
	return ToDuration(m).String()
}
