package pipe

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

const noStep = -1

// Unit is the input of a chain's head step.
type Unit struct{}

// Work is the unit of work wrapped by a step.
type Work[In, Out any] func(ctx context.Context, in In) (Out, error)

// Handler recovers from a failed step. It receives the step's error and the
// value the step was given, not what it would have produced.
type Handler[In, Out any] func(ctx context.Context, err error, upstream In) (Out, error)

// step is one arena entry. Steps are written only while the chain is built.
type step struct {
	name        string
	work        func(ctx context.Context, in any) (any, error)
	guard       guard
	stopOnFalse bool
	handler     *handler
	next        int
}

type handler struct {
	fn        func(ctx context.Context, err error, upstream any) (any, error)
	keepGoing bool
}

// chain owns every step; the head is always steps[0].
type chain struct {
	name        string
	steps       []*step
	logger      *slog.Logger
	level       slog.Level
	stopOnFalse bool

	// err is the first construction error. Runs return it without executing.
	err error
}

// Node is a handle to one step of a chain. Triggering any node runs the
// whole chain from its head.
type Node[In, Out any] struct {
	c   *chain
	idx int
}

// Start creates a new chain whose head runs work.
func Start[Out any](work func(ctx context.Context) (Out, error), opts ...Option) *Node[Unit, Out] {
	o := newOptions(opts)

	cfg := DefaultConfig()
	if o.config != nil {
		cfg = *o.config
	}

	c := &chain{
		name:        cfg.Name,
		logger:      o.logger,
		stopOnFalse: cfg.StopOnFalse,
	}

	level, err := cfg.Level()
	if err != nil {
		c.err = err
	}
	c.level = level

	head := c.add(o, "start", Always[Unit]().erase(),
		eraseWork(func(ctx context.Context, _ Unit) (Out, error) {
			return work(ctx)
		}))

	return &Node[Unit, Out]{c: c, idx: head}
}

// Append adds an unconditional step after n and returns it.
func Append[In, Mid, Out any](n *Node[In, Mid], work Work[Mid, Out], opts ...Option) *Node[Mid, Out] {
	return &Node[Mid, Out]{c: n.c, idx: n.c.link(n.idx, newOptions(opts), Always[Mid]().erase(), eraseWork(work))}
}

// AppendIf adds a guarded step after n. When the guard is false the step is
// skipped and its upstream value is passed on unchanged, or returned as the
// run's result if the step stops on false or is the last one.
func AppendIf[In, T any](n *Node[In, T], g Guard[T], work Work[T, T], opts ...Option) *Node[T, T] {
	return &Node[T, T]{c: n.c, idx: n.c.link(n.idx, newOptions(opts), g.erase(), eraseWork(work))}
}

// Then is Append for a step that keeps the value type.
func (n *Node[In, Out]) Then(work Work[Out, Out], opts ...Option) *Node[Out, Out] {
	return Append(n, work, opts...)
}

// ThenIf is AppendIf as a method.
func (n *Node[In, Out]) ThenIf(g Guard[Out], work Work[Out, Out], opts ...Option) *Node[Out, Out] {
	return AppendIf(n, g, work, opts...)
}

// OnError attaches the step's error handler. A step takes at most one; a
// second call returns ErrDuplicateHandler and leaves the first in place.
func (n *Node[In, Out]) OnError(h Handler[In, Out], opts ...HandlerOption) (*Node[In, Out], error) {
	s := n.c.steps[n.idx]
	if s.handler != nil {
		return nil, fmt.Errorf("%w: step %q", ErrDuplicateHandler, s.name)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: step %q", ErrNilHandler, s.name)
	}

	var o handlerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s.handler = &handler{
		fn: func(ctx context.Context, err error, upstream any) (any, error) {
			typed, castErr := cast[In](upstream)
			if castErr != nil {
				return nil, castErr
			}
			return h(ctx, err, typed)
		},
		keepGoing: o.keepGoing,
	}
	return n, nil
}

func (n *Node[In, Out]) Name() string {
	return n.c.steps[n.idx].name
}

// Index is the step's position in its chain; the head is 0.
func (n *Node[In, Out]) Index() int {
	return n.idx
}

// Steps lists the names of the linked steps from head to tail.
func (n *Node[In, Out]) Steps() []string {
	names := make([]string, 0, len(n.c.steps))
	for idx := 0; idx != noStep; idx = n.c.steps[idx].next {
		names = append(names, n.c.steps[idx].name)
	}
	return names
}

// link appends a step and makes it the successor of prev. A prev that
// already has a successor keeps it; the chain records ErrAlreadyLinked.
func (c *chain) link(prev int, o options, g guard, work func(context.Context, any) (any, error)) int {
	idx := c.add(o, "", g, work)

	p := c.steps[prev]
	if p.next != noStep {
		if c.err == nil {
			c.err = fmt.Errorf("%w: %q continues to %q, cannot append %q",
				ErrAlreadyLinked, p.name, c.steps[p.next].name, c.steps[idx].name)
		}
		return idx
	}
	p.next = idx
	return idx
}

func (c *chain) add(o options, defaultName string, g guard, work func(context.Context, any) (any, error)) int {
	idx := len(c.steps)

	name := o.name
	if name == "" {
		name = defaultName
	}
	if name == "" {
		name = fmt.Sprintf("step-%d", idx)
	}

	stopOnFalse := c.stopOnFalse
	if o.stopOnFalse != nil {
		stopOnFalse = *o.stopOnFalse
	}

	c.steps = append(c.steps, &step{
		name:        name,
		work:        work,
		guard:       g,
		stopOnFalse: stopOnFalse,
		next:        noStep,
	})
	return idx
}

func eraseWork[In, Out any](work Work[In, Out]) func(ctx context.Context, in any) (any, error) {
	return func(ctx context.Context, in any) (any, error) {
		typed, err := cast[In](in)
		if err != nil {
			return nil, err
		}
		return work(ctx, typed)
	}
}

// cast converts an erased value back to T. A nil value becomes T's zero value.
func cast[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %v, got %T", ErrInvalidInput, reflect.TypeOf((*T)(nil)).Elem(), v)
	}
	return typed, nil
}
