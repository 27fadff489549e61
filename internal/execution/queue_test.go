package execution

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fold/internal/kernel"
)

var testDevice = kernel.Device{Kind: kernel.Threaded, Index: 0, Name: "test"}

func TestQueue_BlockingRunsInline(t *testing.T) {
	q := NewQueue(testDevice, Blocking)
	defer q.Close()

	ran := false
	ev, err := q.Enqueue(func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	select {
	case <-ev.Done():
	default:
		t.Fatal("blocking enqueue returned before completion")
	}
}

func TestQueue_NonBlockingFIFO(t *testing.T) {
	q := NewQueue(testDevice, NonBlocking)
	defer q.Close()

	var mu sync.Mutex
	var order []int
	events := make([]*Event, 0, 20)
	for i := 0; i < 20; i++ {
		ev, err := q.Enqueue(func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
		events = append(events, ev)
	}

	q.Wait()
	for _, ev := range events {
		require.NoError(t, ev.Wait(context.Background()))
	}
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueue_EventCarriesError(t *testing.T) {
	errDevice := errors.New("device lost")

	for _, mode := range []Mode{Blocking, NonBlocking} {
		q := NewQueue(testDevice, mode)
		ev, err := q.Enqueue(func() error { return errDevice })
		require.NoError(t, err)
		assert.ErrorIs(t, ev.Wait(context.Background()), errDevice, mode.String())
		q.Close()
	}
}

func TestQueue_WaitHonorsContext(t *testing.T) {
	q := NewQueue(testDevice, NonBlocking)
	defer q.Close()

	release := make(chan struct{})
	ev, err := q.Enqueue(func() error {
		<-release
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, ev.Wait(ctx), context.DeadlineExceeded)

	// The task still runs to completion.
	close(release)
	assert.NoError(t, ev.Wait(context.Background()))
}

func TestQueue_Close(t *testing.T) {
	for _, mode := range []Mode{Blocking, NonBlocking} {
		q := NewQueue(testDevice, mode)

		done := false
		_, err := q.Enqueue(func() error {
			time.Sleep(5 * time.Millisecond)
			done = true
			return nil
		})
		require.NoError(t, err)

		q.Close()
		assert.True(t, done, "close must drain pending work")
		q.Close()

		_, err = q.Enqueue(func() error { return nil })
		assert.ErrorIs(t, err, ErrQueueClosed)
	}
}
