package threads

import (
	"fmt"
	"syscall"
	"testing"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestThreadError(t *testing.T) {
	type scenario struct {
		err  error
		op   string
		code syscall.Errno
	}

	scenarios := []scenario{
		{
			newThreadError("creating thread", syscall.ENOMEM),
			"creating thread",
			syscall.ENOMEM,
		},
		{
			WrapError(newThreadError("creating thread variable", syscall.EAGAIN)),
			"creating thread variable",
			syscall.EAGAIN,
		},
		{
			ErrTimedOut,
			"timed-waiting on condition",
			syscall.ETIMEDOUT,
		},
	}

	for _, s := range scenarios {
		assert.EqualError(t, s.err, fmt.Sprintf("%s: %s (%d)", s.op, s.code.Error(), int(s.code)))
		assert.True(t, HasErrorCode(s.err, s.code))
		assert.False(t, HasErrorCode(s.err, syscall.EINVAL))
	}

	assert.False(t, HasErrorCode(fmt.Errorf("plain"), syscall.ENOMEM))
	assert.Nil(t, WrapError(nil))
}

func TestSetupRejectsUnknownClock(t *testing.T) {
	setupTest(t, nil)

	cfg := config.GetDefaultConfig().Threads
	cfg.Clock = "sundial"
	assert.EqualError(t, Setup(cfg, nil), "unknown clock 'sundial'")
}
