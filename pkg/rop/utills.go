package rop

import (
	"context"
	"errors"
)

// IsCancellationError reports whether err stems from a cancelled or expired context.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
