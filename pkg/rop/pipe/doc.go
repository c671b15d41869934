// Package pipe provides a lazy, linked chain of steps. A chain is built one
// step at a time and runs only when asked to; triggering any node runs the
// whole chain from its head, one step at a time.
//
// Key operations:
// - Start: begin a chain with a head step
// - Append/Then: add an unconditional step (Append may change the value type)
// - AppendIf/ThenIf: add a step behind a Guard; a false guard either skips the
//   step or stops the run, per StopOnFalse
// - OnError: attach the step's single error handler, optionally KeepGoing
// - Resolve/Drain: run the chain and return (or discard) the final value
// - ResolveAs/ResolveResult/ResolveAsync: typed, Result and pending accessors
// - Await/Async: steps whose result arrives later on a channel
//
// Nodes are never modified by a run, so a built chain may be resolved from
// several goroutines at once. Building and running must not overlap.
package pipe
