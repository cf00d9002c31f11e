package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrParameterBounds indicates a configuration value is outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidMass indicates a non-positive mass for a dynamic particle.
	ErrInvalidMass = errors.New("dynamo: mass must be positive")

	// ErrInvalidSpring indicates a spring with bad stiffness, rest length,
	// damping or endpoints.
	ErrInvalidSpring = errors.New("dynamo: invalid spring")

	// ErrUnknownParticle indicates an index outside the particle arena.
	ErrUnknownParticle = errors.New("dynamo: unknown particle")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with frame context.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
