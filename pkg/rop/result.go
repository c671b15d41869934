package rop

import (
	"time"

	"github.com/google/uuid"
)

// Result is the settled outcome of a step or of a whole chain run.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// From builds a Result out of a (value, error) pair. Context cancellation
// and deadline errors become a cancelled Result.
func From[T any](r T, err error) Result[T] {
	switch {
	case err == nil:
		return Success(r)
	case IsCancellationError(err):
		return Cancel[T](err)
	default:
		return Fail[T](err)
	}
}

// WithID returns a copy of r carrying the given id, typically a run id.
func (r Result[T]) WithID(id uuid.UUID) Result[T] {
	r.id = id
	return r
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

// Unpack returns the value and error the way a plain Go call would.
func (r Result[T]) Unpack() (T, error) {
	if r.isSuccess {
		return r.result, nil
	}
	var zero T
	return zero, r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isCancel && r.err != nil
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isCancel && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
