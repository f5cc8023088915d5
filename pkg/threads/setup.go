package threads

import (
	"sync/atomic"
	"time"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/christophe-duc/mediathread/pkg/mtime"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

type settings struct {
	debug            bool
	clock            mtime.Clock
	sleepQuantum     time.Duration
	pollJoin         bool
	joinPollInterval time.Duration
	lockOSThread     bool
	blockSignals     bool
	// nil when the number of threads is not capped
	slots *semaphore.Weighted
}

var (
	current atomic.Pointer[settings]
	logger  atomic.Pointer[logrus.Entry]
)

func init() {
	s, _ := newSettings(config.GetDefaultConfig().Threads)
	current.Store(s)
	logger.Store(logrus.NewEntry(logrus.StandardLogger()))
}

func newSettings(cfg config.ThreadsConfig) (*settings, error) {
	clock, err := mtime.NewClock(cfg.Clock)
	if err != nil {
		return nil, err
	}

	s := &settings{
		debug:            cfg.Debug,
		clock:            clock,
		sleepQuantum:     cfg.SleepQuantum,
		pollJoin:         cfg.JoinMode == config.JoinModePoll,
		joinPollInterval: cfg.JoinPollInterval,
		lockOSThread:     !cfg.SharedOSThreads,
		blockSignals:     !cfg.KeepSignalMask,
	}
	if s.sleepQuantum <= 0 {
		s.sleepQuantum = 10 * time.Millisecond
	}
	if s.joinPollInterval <= 0 {
		s.joinPollInterval = 10 * time.Millisecond
	}
	if cfg.MaxThreads > 0 {
		s.slots = semaphore.NewWeighted(int64(cfg.MaxThreads))
	}
	return s, nil
}

// Setup configures the threads layer. Threads already running keep the
// thread cap they were created under. A nil log keeps the current logger.
func Setup(cfg config.ThreadsConfig, log *logrus.Entry) error {
	s, err := newSettings(cfg)
	if err != nil {
		return WrapError(err)
	}
	current.Store(s)
	if log != nil {
		logger.Store(log)
	}
	log = logger.Load()
	log.WithFields(logrus.Fields{
		"debug":        s.debug,
		"clock":        cfg.Clock,
		"pollJoin":     s.pollJoin,
		"lockOSThread": s.lockOSThread,
		"maxThreads":   cfg.MaxThreads,
	}).Debug("threads layer configured")
	return nil
}

func conf() *settings {
	return current.Load()
}

func debug() bool {
	return current.Load().debug
}

func log() *logrus.Entry {
	return logger.Load()
}
