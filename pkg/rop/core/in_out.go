package core

import (
	"context"
)

// Receive waits for the first value on ch. It returns ok=false when ch is
// closed without a value, and ctx.Err() when ctx is done first.
func Receive[T any](ctx context.Context, ch <-chan T) (v T, ok bool, err error) {
	if err = ctx.Err(); err != nil {
		return v, false, err
	}

	select {
	case v, ok = <-ch:
		return v, ok, nil
	case <-ctx.Done():
		return v, false, ctx.Err()
	}
}

// Settle runs produce in its own goroutine and delivers its value on the
// returned channel, which is buffered so the goroutine never blocks on an
// abandoned receiver. The channel is closed after the value is sent.
func Settle[T any](produce func() T) <-chan T {
	out := make(chan T, 1)

	go func() {
		defer close(out)
		out <- produce()
	}()

	return out
}

// FromChanFirstOrDefault returns the first value on out, or defaultV when out
// is closed empty or ctx is done.
func FromChanFirstOrDefault[T any](ctx context.Context, out <-chan T, defaultV T) T {
	v, ok, err := Receive(ctx, out)
	if err != nil || !ok {
		return defaultV
	}
	return v
}
