// Package rop holds the shared value types of the module: Result[T], the
// settled outcome of a step or chain run (success, failure or cancel, stamped
// with an id and a creation time), and small helpers for classifying errors.
//
// The lazy chain itself lives in package pipe; context-carried run options
// live in package core.
package rop
