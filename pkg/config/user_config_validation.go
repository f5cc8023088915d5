package config

import (
	"fmt"
)

// Validate validates the user config
func (config *UserConfig) Validate() error {
	if err := validateThreads(config.Threads); err != nil {
		return err
	}
	return validateBench(config.Bench)
}

func validateThreads(threads ThreadsConfig) error {
	switch threads.Clock {
	case ClockMonotonic, ClockWall:
	default:
		return fmt.Errorf("Unrecognized clock '%s' for 'threads.clock'. Permitted values: %s, %s", threads.Clock, ClockMonotonic, ClockWall)
	}

	switch threads.JoinMode {
	case JoinModeSignal, JoinModePoll:
	default:
		return fmt.Errorf("Unrecognized join mode '%s' for 'threads.joinMode'. Permitted values: %s, %s", threads.JoinMode, JoinModeSignal, JoinModePoll)
	}

	if threads.SleepQuantum <= 0 {
		return fmt.Errorf("'threads.sleepQuantum' must be positive, got %s", threads.SleepQuantum)
	}
	if threads.JoinPollInterval <= 0 {
		return fmt.Errorf("'threads.joinPollInterval' must be positive, got %s", threads.JoinPollInterval)
	}
	if threads.MaxThreads < 0 {
		return fmt.Errorf("'threads.maxThreads' must not be negative, got %d", threads.MaxThreads)
	}
	return nil
}

func validateBench(bench BenchConfig) error {
	if bench.Runs <= 0 || bench.SleepCount <= 0 {
		return fmt.Errorf("'bench.runs' and 'bench.sleepCount' must be positive")
	}
	if bench.SleepDelay <= 0 || bench.CancelAfter < 0 {
		return fmt.Errorf("'bench.sleepDelay' must be positive and 'bench.cancelAfter' not negative")
	}
	return nil
}
