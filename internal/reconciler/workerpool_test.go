package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_AddTask(t *testing.T) {
	wp := NewWorkerPool(2)
	defer wp.Close()

	done := make(chan struct{})
	err := wp.AddTask(context.Background(), func() error {
		close(done)
		return nil
	})
	assert.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not executed")
	}
}

func TestWorkerPool_RunsTasksConcurrently(t *testing.T) {
	wp := NewWorkerPool(4)
	defer wp.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	executed := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := wp.AddTask(context.Background(), func() error {
			defer wg.Done()
			mu.Lock()
			executed++
			mu.Unlock()
			return nil
		})
		assert.NoError(t, err)
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatal("tasks did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, executed)
}

func TestWorkerPool_TaskErrorDoesNotStopWorker(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	assert.NoError(t, wp.AddTask(context.Background(), func() error {
		return errors.New("task failed")
	}))

	done := make(chan struct{})
	assert.NoError(t, wp.AddTask(context.Background(), func() error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker stopped after a failed task")
	}
}

func TestWorkerPool_AddTaskCanceledContext(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	block := make(chan struct{})
	defer close(block)

	// Occupy the only worker and fill the queue so the next AddTask
	// has to wait on the context.
	assert.NoError(t, wp.AddTask(context.Background(), func() error {
		<-block
		return nil
	}))
	assert.NoError(t, wp.AddTask(context.Background(), func() error {
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wp.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
