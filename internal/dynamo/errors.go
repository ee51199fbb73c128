package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrOutOfRange indicates an index outside [0, length) of a control sequence.
	ErrOutOfRange = errors.New("dynamo: index out of range")

	// ErrLengthMismatch indicates sequences whose lengths were required to agree.
	ErrLengthMismatch = errors.New("dynamo: length mismatch")

	// ErrInvalidParameter indicates a construction parameter outside its valid range.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrMissingRelation indicates a body took part in a bucket update
	// without having its bucket relation recorded for the step.
	ErrMissingRelation = errors.New("dynamo: missing bucket relation")

	// ErrNoCurve indicates a shaped acceleration was requested from a
	// sequence that carries no shaping curve.
	ErrNoCurve = errors.New("dynamo: sequence has no shaping curve")
)

// StepError wraps an error with the time step and body that produced it.
// Body is -1 when the failure is not attributable to a single body.
type StepError struct {
	Step    int
	Body    int
	Wrapped error
}

func (e *StepError) Error() string {
	if e.Body < 0 {
		return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
	}
	return fmt.Sprintf("step %d body %d: %v", e.Step, e.Body, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
