package pipe

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/ib-77/ropipe/pkg/rop"
	"github.com/ib-77/ropipe/pkg/rop/core"
)

// Resolver is anything that can run a chain and hand back its final value.
type Resolver interface {
	Resolve(ctx context.Context) (any, error)
}

// Resolve runs the chain n belongs to from its head and returns the value of
// the last step that executed, which is not necessarily n. Pending steps are
// awaited in place. Every call is an independent run.
func (n *Node[In, Out]) Resolve(ctx context.Context) (any, error) {
	return n.c.run(ctx)
}

// Drain runs the chain like Resolve and discards the value.
func (n *Node[In, Out]) Drain(ctx context.Context) error {
	_, err := n.c.run(ctx)
	return err
}

// ResolveAs resolves r and asserts the final value to R.
func ResolveAs[R any](ctx context.Context, r Resolver) (R, error) {
	var zero R

	v, err := r.Resolve(ctx)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	typed, ok := v.(R)
	if !ok {
		return zero, fmt.Errorf("%w: expected %v, got %T", ErrResultType, reflect.TypeOf((*R)(nil)).Elem(), v)
	}
	return typed, nil
}

// ResolveResult resolves r into a rop.Result stamped with the run id.
// Context cancellation surfaces as a cancelled Result.
func ResolveResult[R any](ctx context.Context, r Resolver) rop.Result[R] {
	id, ok := core.RunID(ctx)
	if !ok {
		id = uuid.New()
		ctx = core.WithRunID(ctx, id)
	}
	v, err := ResolveAs[R](ctx, r)
	return rop.From(v, err).WithID(id)
}

// ResolveAsync starts resolving r in its own goroutine and returns the
// pending outcome. The channel yields exactly one Result and is then closed.
func ResolveAsync[R any](ctx context.Context, r Resolver) <-chan rop.Result[R] {
	return core.Settle(func() rop.Result[R] {
		return ResolveResult[R](ctx, r)
	})
}

// Await turns a step that reports through a channel into a Work. The run is
// suspended until the engine delivers a Result or ctx is done. A channel
// closed without a value fails the step with ErrNoResult.
func Await[In, Out any](engine func(ctx context.Context, in In) <-chan rop.Result[Out]) Work[In, Out] {
	return func(ctx context.Context, in In) (Out, error) {
		var zero Out

		res, ok, err := core.Receive(ctx, engine(ctx, in))
		if err != nil {
			return zero, err
		}
		if !ok || res.IsEmpty() {
			return zero, ErrNoResult
		}
		return res.Unpack()
	}
}

// Async runs work in its own goroutine and reports through a channel, the
// shape Await consumes.
func Async[In, Out any](work Work[In, Out]) func(ctx context.Context, in In) <-chan rop.Result[Out] {
	return func(ctx context.Context, in In) <-chan rop.Result[Out] {
		return core.Settle(func() rop.Result[Out] {
			out, err := work(ctx, in)
			return rop.From(out, err)
		})
	}
}

func (c *chain) run(ctx context.Context) (any, error) {
	if c.err != nil {
		return nil, c.err
	}

	runID, ok := core.RunID(ctx)
	if !ok {
		runID = uuid.New()
		ctx = core.WithRunID(ctx, runID)
	}

	logger := core.Logger(ctx, c.defaultLogger()).With(
		slog.String("run_id", runID.String()),
		slog.String("chain", c.name),
	)

	var upstream any = Unit{}
	for idx := 0; ; {
		s := c.steps[idx]
		attrs := []any{slog.String("step", s.name), slog.Int("index", idx)}

		pass, err := s.guard.eval(ctx, upstream)
		if err != nil {
			return nil, c.fail(ctx, logger, runID, idx, PhaseGuard, err)
		}
		if !pass {
			if s.next == noStep || s.stopOnFalse {
				logger.Log(ctx, c.level, "chain stopped", attrs...)
				return upstream, nil
			}
			logger.Log(ctx, c.level, "step skipped", attrs...)
			idx = s.next
			continue
		}

		out, err := s.work(ctx, upstream)
		if err != nil {
			if s.handler == nil {
				return nil, c.fail(ctx, logger, runID, idx, PhaseWork, err)
			}

			recovered, herr := s.handler.fn(ctx, err, upstream)
			if herr != nil {
				return nil, c.fail(ctx, logger, runID, idx, PhaseHandler,
					fmt.Errorf("%w (recovering from: %w)", herr, err))
			}
			logger.Log(ctx, c.level, "step recovered", append(attrs, slog.Any("error", err))...)

			if !s.handler.keepGoing || s.next == noStep {
				logger.Log(ctx, c.level, "chain stopped", attrs...)
				return recovered, nil
			}
			out = recovered
		}

		if s.next == noStep {
			logger.Log(ctx, c.level, "chain finished", attrs...)
			return out, nil
		}
		upstream = out
		idx = s.next
	}
}

func (c *chain) fail(ctx context.Context, logger *slog.Logger, runID uuid.UUID, idx int, phase string, err error) error {
	s := c.steps[idx]
	logger.Log(ctx, c.level, "step failed",
		slog.String("step", s.name),
		slog.Int("index", idx),
		slog.String("phase", phase),
		slog.Any("error", err),
	)
	return &StepError{
		RunID: runID,
		Step:  s.name,
		Index: idx,
		Phase: phase,
		Err:   err,
	}
}

func (c *chain) defaultLogger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
