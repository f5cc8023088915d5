package threads

import (
	"io"
	"syscall"
	"testing"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exitCalled is what the test logger panics with instead of exiting
type exitCalled struct {
	code int
}

// setupTest configures the layer for one test and captures fatal diagnostics
// in the returned hook. Settings are restored when the test ends.
func setupTest(t *testing.T, mutate func(*config.ThreadsConfig)) *test.Hook {
	t.Helper()

	logger := logrus.New()
	logger.Out = io.Discard
	logger.ExitFunc = func(code int) {
		panic(exitCalled{code: code})
	}
	hook := test.NewLocal(logger)

	cfg := config.GetDefaultConfig().Threads
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, Setup(cfg, logrus.NewEntry(logger)))

	t.Cleanup(func() {
		_ = Setup(config.GetDefaultConfig().Threads, logrus.NewEntry(logrus.StandardLogger()))
	})
	return hook
}

func debugMode(cfg *config.ThreadsConfig) {
	cfg.Debug = true
}

// catchFatal runs f and reports whether it ended in a fatal diagnostic.
func catchFatal(f func()) (trapped bool) {
	defer func() {
		if r := recover(); r != nil {
			_, trapped = r.(exitCalled)
			if !trapped {
				panic(r)
			}
		}
	}()
	f()
	return false
}

func assertFatal(t *testing.T, hook *test.Hook, action string, code syscall.Errno, f func()) {
	t.Helper()

	hook.Reset()
	if !assert.True(t, catchFatal(f), "expected a fatal error while %s", action) {
		return
	}
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.FatalLevel, entry.Level)
	assert.Equal(t, action, entry.Data["action"])
	assert.Equal(t, int(code), entry.Data["code"])
	assert.Equal(t, code.Error(), entry.Data["error"])
}
