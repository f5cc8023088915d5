package threads

import (
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadVarPerThread(t *testing.T) {
	setupTest(t, debugMode)

	v, err := NewThreadVar(nil)
	require.NoError(t, err)
	defer v.Delete()

	assert.Nil(t, v.Get())
	require.NoError(t, v.Set("main"))

	th, err := Clone(func(any) any {
		before := v.Get()
		_ = v.Set("thread")
		return []any{before, v.Get()}
	}, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, []any{nil, "thread"}, th.Join())
	assert.Equal(t, "main", v.Get())

	require.NoError(t, v.Set(nil))
	assert.Nil(t, v.Get())
}

func TestThreadVarDestructors(t *testing.T) {
	setupTest(t, debugMode)

	type scenario struct {
		name     string
		entry    func(v *ThreadVar) Entry
		expected []any
	}

	scenarios := []scenario{
		{
			"thread returns",
			func(v *ThreadVar) Entry {
				return func(any) any {
					_ = v.Set(1)
					return nil
				}
			},
			[]any{1},
		},
		{
			"thread is cancelled",
			func(v *ThreadVar) Entry {
				return func(data any) any {
					_ = v.Set(2)
					Self().Cancel()
					TestCancel()
					return nil
				}
			},
			[]any{2},
		},
		{
			"value cleared",
			func(v *ThreadVar) Entry {
				return func(any) any {
					_ = v.Set(3)
					_ = v.Set(nil)
					return nil
				}
			},
			nil,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			var mu sync.Mutex
			var destroyed []any
			v, err := NewThreadVar(func(value any) {
				mu.Lock()
				destroyed = append(destroyed, value)
				mu.Unlock()
			})
			require.NoError(t, err)
			defer v.Delete()

			th, err := Clone(s.entry(v), nil, 0)
			require.NoError(t, err)
			th.Join()

			mu.Lock()
			defer mu.Unlock()
			assert.EqualValues(t, s.expected, destroyed)
			assert.Nil(t, v.Get())
		})
	}
}

func TestThreadVarDestructorRounds(t *testing.T) {
	setupTest(t, debugMode)

	calls := 0
	var v *ThreadVar
	v, err := NewThreadVar(func(value any) {
		calls++
		// keeps setting a value, so only the round limit stops it
		_ = v.Set(value.(int) + 1)
	})
	require.NoError(t, err)
	defer v.Delete()

	th, err := Clone(func(any) any {
		_ = v.Set(1)
		return nil
	}, nil, 0)
	require.NoError(t, err)
	th.Join()

	assert.Equal(t, threadVarDestructorRounds, calls)
}

func TestThreadVarLimitAndDelete(t *testing.T) {
	setupTest(t, nil)

	var created []*ThreadVar
	defer func() {
		for _, v := range created {
			v.Delete()
		}
	}()

	var err error
	for i := 0; i <= MaxThreadVars; i++ {
		var v *ThreadVar
		v, err = NewThreadVar(nil)
		if err != nil {
			break
		}
		created = append(created, v)
	}
	require.Error(t, err)
	assert.True(t, HasErrorCode(err, syscall.EAGAIN))
	assert.LessOrEqual(t, len(created), MaxThreadVars)

	last := created[len(created)-1]
	created = created[:len(created)-1]
	last.Delete()
	assert.True(t, HasErrorCode(last.Set(1), syscall.EINVAL))

	v, err := NewThreadVar(nil)
	require.NoError(t, err)
	created = append(created, v)
}
