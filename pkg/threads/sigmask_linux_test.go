//go:build linux && (amd64 || arm64)

package threads

import (
	"syscall"
	"testing"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatedThreadsBlockTerminationSignals(t *testing.T) {
	type scenario struct {
		name     string
		mutate   func(*config.ThreadsConfig)
		expected bool
	}

	scenarios := []scenario{
		{"default", nil, true},
		{"keep signal mask", func(cfg *config.ThreadsConfig) { cfg.KeepSignalMask = true }, false},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			setupTest(t, s.mutate)

			th, err := Clone(func(any) any {
				blocked, err := blockedSignals()
				if err != nil {
					return err
				}
				return blocked
			}, nil, 0)
			require.NoError(t, err)

			res := th.Join()
			require.IsType(t, []syscall.Signal{}, res)
			blocked := res.([]syscall.Signal)
			for _, sig := range terminationSignals {
				assert.Equal(t, s.expected, containsSignal(blocked, sig), sig.String())
			}
		})
	}
}

func containsSignal(signals []syscall.Signal, sig syscall.Signal) bool {
	for _, s := range signals {
		if s == sig {
			return true
		}
	}
	return false
}
