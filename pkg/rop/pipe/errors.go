package pipe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// Construction errors.
	ErrDuplicateHandler = errors.New("pipe: error handler already attached")
	ErrNilHandler       = errors.New("pipe: nil error handler")
	ErrAlreadyLinked    = errors.New("pipe: step already has a successor")
	ErrInvalidConfig    = errors.New("pipe: invalid config")

	// Run errors.
	ErrInvalidInput = errors.New("pipe: invalid input type")
	ErrResultType   = errors.New("pipe: unexpected result type")
	ErrNoResult     = errors.New("pipe: pending step settled without a result")
)

// Phases a step can fail in.
const (
	PhaseGuard   = "guard"
	PhaseWork    = "work"
	PhaseHandler = "handler"
)

// StepError reports the first unhandled failure of a run. Err is the error
// returned by the failing function, unchanged, so errors.Is and errors.As see
// through StepError to it.
type StepError struct {
	RunID uuid.UUID
	Step  string
	Index int
	Phase string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipe: step %q (#%d) %s: %v", e.Step, e.Index, e.Phase, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
