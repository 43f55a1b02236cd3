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

func TestQueueRetriesUntilSuccess(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("boom")
		}
		close(done)
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 5, RetryDelay: 5 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "1", Type: "summary"}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never succeeded")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	err := q.Enqueue(Job{ID: "1"})
	assert.Error(t, err)
}

func TestQueueTryEnqueueCoalescesByKey(t *testing.T) {
	release := make(chan struct{})
	var processed int32
	q := NewQueue("coalesce", func(ctx context.Context, job Job) error {
		<-release
		atomic.AddInt32(&processed, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})
	q.Start(context.Background())
	defer q.Stop()

	// first job occupies the worker
	require.NoError(t, q.TryEnqueue(Job{ID: "a", Key: "busy"}))
	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		_, waiting := q.pending["busy"]
		return !waiting
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, q.TryEnqueue(Job{ID: "b", Key: "school-1"}))
	require.NoError(t, q.TryEnqueue(Job{ID: "c", Key: "school-1"}))
	assert.Len(t, q.jobs, 1)

	close(release)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&processed) == 2 }, time.Second, 5*time.Millisecond)
}

func TestQueueTryEnqueueFull(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	q := NewQueue("full", func(ctx context.Context, job Job) error {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{ID: "1"}))
	require.Eventually(t, func() bool { return len(q.jobs) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.TryEnqueue(Job{ID: "2"}))

	err := q.TryEnqueue(Job{ID: "3"})
	assert.ErrorIs(t, err, ErrQueueFull)
}
