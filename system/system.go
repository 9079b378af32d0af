package system

import (
	"fmt"
	"math"

	"github.com/FabianaFerreira/modified-newton/equations"
)

// SingularTolerance is the smallest |det| accepted before a matrix is treated
// as singular.
const SingularTolerance = 1e-10

// LinearSolver computes A^-1 * F.
type LinearSolver func(a equations.Matrix, f equations.Vector) (equations.Vector, error)

func Determinant(a equations.Matrix) float64 {
	return a[0][0]*a[1][1] - a[0][1]*a[1][0]
}

// Inverse returns the closed-form inverse of a.
func Inverse(a equations.Matrix) (equations.Matrix, error) {
	det := Determinant(a)
	if math.IsNaN(det) || math.IsInf(det, 0) {
		return equations.Matrix{}, fmt.Errorf("determinant %v: %w", det, ErrNonFinite)
	}
	if math.Abs(det) < SingularTolerance {
		return equations.Matrix{}, fmt.Errorf("determinant %g: %w", det, ErrSingularMatrix)
	}

	return equations.Matrix{
		{a[1][1] / det, -a[0][1] / det},
		{-a[1][0] / det, a[0][0] / det},
	}, nil
}

// Solve returns A^-1 * F. The singularity check runs on every call.
func Solve(a equations.Matrix, f equations.Vector) (equations.Vector, error) {
	inv, err := Inverse(a)
	if err != nil {
		return equations.Vector{}, err
	}

	return equations.Vector{
		inv[0][0]*f[0] + inv[0][1]*f[1],
		inv[1][0]*f[0] + inv[1][1]*f[1],
	}, nil
}
