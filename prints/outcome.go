package prints

import (
	"errors"
	"fmt"
	"io"

	"github.com/FabianaFerreira/modified-newton/system"
)

// Banner lists the equations being solved.
func Banner(w io.Writer, equations []string) {
	fmt.Fprintln(w, "System of equations:")
	for i, eq := range equations {
		fmt.Fprintf(w, "%d. %s\n", i+1, eq)
	}
}

// Outcome writes the final message for a finished run.
func Outcome(w io.Writer, res system.Result) {
	switch res.Status {
	case system.Converged:
		fmt.Fprintln(w, "Solution found:")
		fmt.Fprintf(w, "x = %v\n", res.Point.X)
		fmt.Fprintf(w, "y = %v\n", res.Point.Y)
		fmt.Fprintf(w, "Precision achieved: %v\n", res.Norm)
	case system.Exhausted:
		if res.Iterations == 0 {
			fmt.Fprintln(w, "No result found: the iteration bound allows no iterations.")
			return
		}
		fmt.Fprintf(w, "No result found within %d iterations.\n", res.Iterations)
	case system.Failed:
		fmt.Fprintln(w, FailureMessage(res.Err))
	default:
		fmt.Fprintf(w, "Run ended in state %s.\n", res.Status)
	}
}

func FailureMessage(err error) string {
	switch {
	case errors.Is(err, system.ErrSingularMatrix):
		return "The matrix is nearly singular, and the system cannot be solved."
	case errors.Is(err, system.ErrNonFinite):
		return "Non-finite values encountered, the system cannot be solved."
	}
	return fmt.Sprintf("The system cannot be solved: %v", err)
}
