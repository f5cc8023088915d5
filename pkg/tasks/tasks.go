package tasks

import (
	"fmt"
	"time"

	"github.com/christophe-duc/mediathread/pkg/i18n"
	"github.com/christophe-duc/mediathread/pkg/mtime"
	"github.com/christophe-duc/mediathread/pkg/threads"
	"github.com/sirupsen/logrus"
)

// TaskManager runs at most one task at a time, each on its own thread.
// Starting a task cancels and joins the previous one.
type TaskManager struct {
	currentTask  *Task
	waitingMutex threads.Mutex
	Log          *logrus.Entry
	Tr           *i18n.TranslationSet
}

// Task is a function running on a thread. It stops at its next cancellation
// point once asked to.
type Task struct {
	thread    *threads.Thread
	stopped   bool
	stopMutex threads.Mutex
	Log       *logrus.Entry
}

func NewTaskManager(log *logrus.Entry, translationSet *i18n.TranslationSet) *TaskManager {
	return &TaskManager{Log: log, Tr: translationSet}
}

// Close closes the task manager, killing whatever task may currently be running
func (t *TaskManager) Close() {
	t.waitingMutex.Lock()
	task := t.currentTask
	t.currentTask = nil
	t.waitingMutex.Unlock()

	if task == nil {
		return
	}

	c := make(chan struct{}, 1)

	go func() {
		task.Stop()
		c <- struct{}{}
	}()

	select {
	case <-c:
		return
	case <-time.After(3 * time.Second):
		fmt.Println(t.Tr.CannotKillChildError)
	}
}

// NewTask stops the current task, if any, then starts f on a new thread.
func (t *TaskManager) NewTask(f func()) error {
	t.waitingMutex.Lock()
	defer t.waitingMutex.Unlock()

	if t.currentTask != nil {
		t.Log.Info("asking task to stop")
		t.currentTask.Stop()
		t.Log.Info("task stopped")
		t.currentTask = nil
	}

	thread, err := threads.Clone(func(any) any {
		f()
		return nil
	}, nil, 0)
	if err != nil {
		return err
	}

	t.currentTask = &Task{
		thread: thread,
		Log:    t.Log,
	}
	return nil
}

// Stop cancels the task and waits for its thread to end. Only the first call
// does anything.
func (t *Task) Stop() {
	t.stopMutex.Lock()
	defer t.stopMutex.Unlock()
	if t.stopped {
		return
	}
	t.thread.Cancel()
	t.Log.Info("cancelled task thread, waiting for it to end")
	t.thread.Join()
	t.Log.Info("task thread ended")
	t.stopped = true
}

// NewTickerTask is a convenience function for making a new task that repeats some action once per e.g. second
// the before function gets called on the task's thread before the first tick.
// f is called straight away and then once per duration until it returns false or the task is stopped. The sleep between calls is a cancellation point, so stopping never waits for a full tick.
func (t *TaskManager) NewTickerTask(duration time.Duration, before func(), f func() bool) error {
	return t.NewTask(func() {
		if before != nil {
			before()
		}
		// calling f first so that we're not waiting for the first tick
		for f() {
			t.Log.Debug("running ticker task again")
			threads.Msleep(mtime.FromDuration(duration))
		}
		t.Log.Info("exiting ticker task as the function returned false")
	})
}
