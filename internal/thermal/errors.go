package thermal

import (
	"errors"
	"fmt"
)

// Domain errors for network construction and stepping.
var (
	// ErrInvalidParameter indicates a non-physical or malformed input value.
	ErrInvalidParameter = errors.New("thermal: invalid parameter")

	// ErrUnknownNode indicates a node id not present in the registry.
	ErrUnknownNode = errors.New("thermal: unknown node")

	// ErrUnstable indicates a step produced a non-finite temperature.
	ErrUnstable = errors.New("thermal: temperature diverged (NaN or Inf)")
)

// StepError carries the context of a numeric-instability failure: the
// internal step index, the elapsed simulation time after that step, and
// the first node whose temperature became non-finite. History recorded
// before the failing step remains valid.
type StepError struct {
	Step int
	Time float64
	Node NodeID
	Name string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): node %d (%s): %v", e.Step, e.Time, e.Node, e.Name, ErrUnstable)
}

func (e *StepError) Unwrap() error {
	return ErrUnstable
}
