package app

import (
	"bytes"
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/christophe-duc/mediathread/pkg/threads"
	"github.com/christophe-duc/mediathread/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate func(*config.UserConfig)) (*App, *bytes.Buffer) {
	t.Helper()

	appConfig, err := config.NewAppConfig("mediathread", "test-version", "test-commit", "test-date", "test-build-source", false, "")
	require.NoError(t, err)
	appConfig.UserConfig.Language = "en"
	if mutate != nil {
		mutate(appConfig.UserConfig)
	}

	app, err := NewApp(appConfig)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app.Out = out
	t.Cleanup(func() {
		_ = app.Close()
		_ = threads.Setup(config.GetDefaultConfig().Threads, nil)
	})
	return app, out
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t, nil)

	assert.NotNil(t, app.Config)
	assert.NotNil(t, app.Log)
	assert.NotNil(t, app.Tr)
	assert.NotNil(t, app.TaskManager)
	assert.Len(t, app.closers, 1)
}

func TestNewAppRejectsUnknownLanguage(t *testing.T) {
	appConfig, err := config.NewAppConfig("mediathread", "test-version", "test-commit", "test-date", "test-build-source", false, "")
	require.NoError(t, err)
	appConfig.UserConfig.Language = "tlh"

	_, err = NewApp(appConfig)
	assert.EqualError(t, err, "Language not found: tlh")
}

func TestTopology(t *testing.T) {
	app, out := newTestApp(t, nil)

	require.NoError(t, app.Topology(context.Background()))
	output := utils.Decolorise(out.String())
	assert.Contains(t, output, app.Tr.TopologyTitle)
	assert.Contains(t, output, app.Tr.ConfiguredCPUs)
	assert.Contains(t, output, app.Tr.UsableCPUs)
	assert.Contains(t, output, "\n  "+app.Tr.ConfiguredCPUs+": ")
	assert.Contains(t, output, "\n  "+app.Tr.UsableCPUs+": ")
}

func TestLatency(t *testing.T) {
	app, out := newTestApp(t, func(uc *config.UserConfig) {
		uc.Bench.Runs = 3
		uc.Bench.CancelAfter = 5 * time.Millisecond
	})

	require.NoError(t, app.Latency())
	output := utils.Decolorise(out.String())
	assert.Contains(t, output, app.Tr.LatencyTitle)
	assert.Contains(t, output, app.Tr.LatencyCaption)
}

func TestLatencyOutOfThreads(t *testing.T) {
	app, _ := newTestApp(t, nil)

	cfg := config.GetDefaultConfig().Threads
	cfg.MaxThreads = 1
	require.NoError(t, threads.Setup(cfg, nil))

	blocker, err := threads.Clone(func(any) any {
		for {
			threads.Msleep(1000)
		}
	}, nil, 0)
	require.NoError(t, err)
	defer func() {
		blocker.Cancel()
		blocker.Join()
	}()

	err = app.Latency()
	require.Error(t, err)
	message, known := app.KnownError(err)
	assert.True(t, known)
	assert.Equal(t, app.Tr.CreatingThreadError, message)
}

func TestWatch(t *testing.T) {
	app, out := newTestApp(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, app.Watch(ctx, 10*time.Millisecond))
	output := utils.Decolorise(out.String())
	assert.Contains(t, output, app.Tr.WatchTitle)
}

func TestAppKnownErrorHandling(t *testing.T) {
	app, _ := newTestApp(t, nil)

	tests := []struct {
		name         string
		err          error
		expectKnown  bool
		expectedText string
	}{
		{
			name:         "out of threads",
			err:          threads.WrapError(threads.ThreadError{Op: "creating thread", Code: syscall.ENOMEM}),
			expectKnown:  true,
			expectedText: app.Tr.CreatingThreadError,
		},
		{
			name:         "other thread error",
			err:          threads.ThreadError{Op: "creating thread variable", Code: syscall.EAGAIN},
			expectKnown:  false,
			expectedText: "",
		},
		{
			name:         "unknown error",
			err:          errors.New("some unknown error message"),
			expectKnown:  false,
			expectedText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, known := app.KnownError(tt.err)

			assert.Equal(t, tt.expectKnown, known)
			if tt.expectKnown {
				assert.Equal(t, tt.expectedText, text)
			} else {
				assert.Empty(t, text)
			}
		})
	}
}
