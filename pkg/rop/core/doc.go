// Package core contains run plumbing shared by chain executions: options
// carried through context.Context (logger, run id) and channel helpers used
// to await pending step results and to hand a run's outcome back
// asynchronously. It does not define chain semantics; package pipe does.
package core
