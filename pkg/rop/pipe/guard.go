package pipe

import (
	"context"
)

// Guard decides whether a step's work runs. It is either a literal or a
// predicate over the upstream value. The zero Guard never passes; use Always.
type Guard[T any] struct {
	literal bool
	pred    func(ctx context.Context, in T) bool
}

func Always[T any]() Guard[T] {
	return Guard[T]{literal: true}
}

func Never[T any]() Guard[T] {
	return Guard[T]{}
}

func Literal[T any](pass bool) Guard[T] {
	return Guard[T]{literal: pass}
}

// When builds a predicate guard. A nil predicate behaves like Always.
func When[T any](pred func(ctx context.Context, in T) bool) Guard[T] {
	if pred == nil {
		return Always[T]()
	}
	return Guard[T]{pred: pred}
}

// Eval reports whether the guarded step should run for in.
func (g Guard[T]) Eval(ctx context.Context, in T) bool {
	if g.pred != nil {
		return g.pred(ctx, in)
	}
	return g.literal
}

func (g Guard[T]) erase() guard {
	if g.pred == nil {
		return guard{literal: g.literal}
	}
	return guard{pred: func(ctx context.Context, in any) (bool, error) {
		typed, err := cast[T](in)
		if err != nil {
			return false, err
		}
		return g.pred(ctx, typed), nil
	}}
}

// guard is the type-erased form stored on a step.
type guard struct {
	literal bool
	pred    func(ctx context.Context, in any) (bool, error)
}

func (g guard) eval(ctx context.Context, in any) (bool, error) {
	if g.pred != nil {
		return g.pred(ctx, in)
	}
	return g.literal, nil
}
