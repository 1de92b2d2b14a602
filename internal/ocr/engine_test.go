package ocr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitReturnsResult(t *testing.T) {
	text, err := await(context.Background(), func() (string, error) {
		return "recognized", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recognized", text)
}

func TestAwaitPropagatesError(t *testing.T) {
	boom := errors.New("engine crashed")
	_, err := await(context.Background(), func() (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestAwaitAbandonsCallOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	start := time.Now()
	_, err := await(ctx, func() (string, error) {
		defer close(done)
		time.Sleep(300 * time.Millisecond)
		return "too late", nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 200*time.Millisecond, "returns before the call finishes")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("abandoned call never finished")
	}
}

func TestAwaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := await(ctx, func() (string, error) {
		time.Sleep(100 * time.Millisecond)
		return "late", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
