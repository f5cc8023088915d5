package tasks

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/christophe-duc/mediathread/pkg/i18n"
	"github.com/christophe-duc/mediathread/pkg/mtime"
	"github.com/christophe-duc/mediathread/pkg/threads"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TaskManager {
	logger := logrus.New()
	logger.Out = io.Discard
	log := logrus.NewEntry(logger)
	return NewTaskManager(log, i18n.NewTranslationSet(log, i18n.EN))
}

func TestNewTaskStopsPreviousTask(t *testing.T) {
	manager := newTestManager()

	var firstStopped, secondRan atomic.Bool
	require.NoError(t, manager.NewTask(func() {
		defer firstStopped.Store(true)
		for {
			threads.Msleep(mtime.ClockFreq)
		}
	}))
	first := manager.currentTask

	require.NoError(t, manager.NewTask(func() {
		secondRan.Store(true)
	}))

	assert.True(t, firstStopped.Load())
	assert.True(t, first.stopped)
	assert.Equal(t, threads.Finished, first.thread.State())

	manager.Close()
	assert.True(t, secondRan.Load())
	assert.Nil(t, manager.currentTask)
}

func TestTaskStopIsIdempotent(t *testing.T) {
	manager := newTestManager()

	require.NoError(t, manager.NewTask(func() {}))
	task := manager.currentTask
	task.Stop()
	task.Stop()
	assert.True(t, task.stopped)
}

func TestNewTickerTask(t *testing.T) {
	type scenario struct {
		name      string
		limit     int64
		stopEarly bool
	}

	scenarios := []scenario{
		{"function returns false", 3, false},
		{"stopped while ticking", 1000, true},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			manager := newTestManager()

			var before atomic.Bool
			var ticks atomic.Int64
			require.NoError(t, manager.NewTickerTask(time.Millisecond, func() {
				before.Store(true)
			}, func() bool {
				return ticks.Add(1) < s.limit
			}))

			if s.stopEarly {
				assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
			} else {
				assert.Eventually(t, func() bool {
					return manager.currentTask.thread.State() == threads.Finished
				}, time.Second, time.Millisecond)
			}
			manager.Close()

			assert.True(t, before.Load())
			if s.stopEarly {
				assert.Less(t, ticks.Load(), s.limit)
			} else {
				assert.Equal(t, s.limit, ticks.Load())
			}
		})
	}
}

func TestCloseWithoutTask(t *testing.T) {
	manager := newTestManager()
	manager.Close()
	assert.Nil(t, manager.currentTask)
}
