package system

import (
	"errors"
	"fmt"

	"github.com/FabianaFerreira/modified-newton/equations"
)

var (
	// ErrSingularMatrix is returned when the Jacobian determinant is below
	// SingularTolerance. It is terminal for a run.
	ErrSingularMatrix = errors.New("system: matrix is nearly singular")

	// ErrNonFinite is returned when NaN or Inf shows up in the residual, the
	// step or the iterate.
	ErrNonFinite = errors.New("system: NaN or Inf encountered")

	ErrInvalidPrecision     = errors.New("system: precision must be a non-negative number")
	ErrInvalidMaxIterations = errors.New("system: max iterations must be positive")
	ErrInvalidInitialGuess  = errors.New("system: initial guess must be finite")
)

// SolveError carries the iteration at which a run failed.
type SolveError struct {
	K     int
	Point equations.Point
	Err   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("iteration %d at (%v, %v): %v", e.K, e.Point.X, e.Point.Y, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}
