package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceive_Value(t *testing.T) {
	t.Parallel()

	v, ok, err := Receive(context.Background(), Settle(func() int { return 7 }))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestReceive_Closed(t *testing.T) {
	t.Parallel()

	ch := make(chan int)
	close(ch)

	_, ok, err := Receive(context.Background(), ch)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReceive_ContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok, err := Receive(ctx, make(chan int))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)
}

func TestSettle_ClosesAfterValue(t *testing.T) {
	t.Parallel()

	ch := Settle(func() string { return "done" })

	assert.Equal(t, "done", <-ch)
	_, open := <-ch
	assert.False(t, open)
}

func TestFromChanFirstOrDefault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, 1, FromChanFirstOrDefault(ctx, Settle(func() int { return 1 }), -1))

	empty := make(chan int)
	close(empty)
	assert.Equal(t, -1, FromChanFirstOrDefault(ctx, empty, -1))
}
