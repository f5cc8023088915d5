package config

import "time"

const (
	// ClockMonotonic is immune to wall-clock adjustments.
	ClockMonotonic = "monotonic"
	// ClockWall follows the system time. Only useful for parity with hosts
	// that have no monotonic clock.
	ClockWall = "wallclock"

	// JoinModeSignal waits on a one-shot completion signal.
	JoinModeSignal = "signal"
	// JoinModePoll polls the finished flag every JoinPollInterval.
	JoinModePoll = "poll"
)

// ThreadsConfig configures the threading layer
type ThreadsConfig struct {
	// Debug turns on error checking for mutexes, condition variables and thread handles. Misuse is then reported and the process exits. Also enabled by DEBUG=TRUE or the --debug flag
	Debug bool `yaml:"debug,omitempty"`

	// Clock is one of "monotonic" or "wallclock". With "wallclock", timed waits and sleeps misbehave if the system time is adjusted while they are pending
	Clock string `yaml:"clock,omitempty"`

	// SleepQuantum is the longest single step a cancellable sleep takes
	SleepQuantum time.Duration `yaml:"sleepQuantum,omitempty"`

	// JoinMode is one of "signal" or "poll"
	JoinMode string `yaml:"joinMode,omitempty"`

	// JoinPollInterval is how often a joiner checks the finished flag when JoinMode is "poll"
	JoinPollInterval time.Duration `yaml:"joinPollInterval,omitempty"`

	// SharedOSThreads lets created threads share OS threads with other goroutines. By default each created thread is locked to its own OS thread, which is destroyed when the thread ends
	SharedOSThreads bool `yaml:"sharedOSThreads,omitempty"`

	// KeepSignalMask skips blocking SIGINT, SIGQUIT, SIGTERM and SIGPIPE on created threads
	KeepSignalMask bool `yaml:"keepSignalMask,omitempty"`

	// MaxThreads caps the number of live threads. Creating more fails with ENOMEM. 0 means no cap
	MaxThreads int `yaml:"maxThreads,omitempty"`
}

// BenchConfig configures the cancellation latency scenario
type BenchConfig struct {
	// Runs is how many threads are created, cancelled and joined
	Runs int `yaml:"runs,omitempty"`

	// SleepDelay is the duration of each sleep in a thread's loop
	SleepDelay time.Duration `yaml:"sleepDelay,omitempty"`

	// SleepCount is how many sleeps each thread would perform if never cancelled
	SleepCount int `yaml:"sleepCount,omitempty"`

	// CancelAfter is how long the main thread waits before cancelling
	CancelAfter time.Duration `yaml:"cancelAfter,omitempty"`

	// GraphHeight is the height of the latency graph in characters
	GraphHeight int `yaml:"graphHeight,omitempty"`

	// GraphColor is the color of the latency graph. This can be any color attribute, e.g. 'blue', 'green'
	GraphColor string `yaml:"graphColor,omitempty"`
}
