package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsEnqueuedTask(t *testing.T) {
	q := NewQueue("maintenance", QueueConfig{Workers: 2})
	done := make(chan struct{}, 1)
	require.NoError(t, q.Register("sweep", func(context.Context) (int, error) {
		done <- struct{}{}
		return 3, nil
	}))

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("sweep"))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestQueueRejectsUnknownTaskAndLateRegistration(t *testing.T) {
	q := NewQueue("maintenance", QueueConfig{})
	assert.Error(t, q.Enqueue("sweep"), "not started")

	q.Start(context.Background())
	defer q.Stop()

	assert.Error(t, q.Enqueue("sweep"))
	assert.Error(t, q.Register("sweep", func(context.Context) (int, error) { return 0, nil }))
	assert.Error(t, q.Every(time.Second, "sweep"))
}

func TestQueueRetriesFailedTask(t *testing.T) {
	q := NewQueue("maintenance", QueueConfig{MaxRetries: 2, RetryDelay: 10 * time.Millisecond})
	var calls int32
	done := make(chan struct{})
	require.NoError(t, q.Register("cleanup", func(context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return 0, errors.New("disk busy")
		}
		close(done)
		return 1, nil
	}))

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("cleanup"))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not retried")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueEveryRunsPeriodically(t *testing.T) {
	q := NewQueue("maintenance", QueueConfig{})
	var calls int32
	require.NoError(t, q.Register("sweep", func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, nil
	}))

	q.Start(context.Background())
	require.NoError(t, q.Every(5*time.Millisecond, "sweep"))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, 5*time.Millisecond)
	q.Stop()

	assert.Error(t, q.Every(0, "sweep"))
}
