package equations

import "math"

// Point is an iterate (x, y) of the solver.
type Point struct {
	X, Y float64
}

type Vector [2]float64

// Matrix is a 2x2 matrix indexed as m[row][col]. It is a value type, so a
// copy held by the solver can't be changed by the caller.
type Matrix [2][2]float64

// System is a pair of nonlinear equations in two unknowns together with its
// analytic Jacobian.
type System interface {
	Evaluate(p Point) Vector
	Jacobian(p Point) Matrix
}

func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func (v Vector) IsFinite() bool {
	return isFinite(v[0]) && isFinite(v[1])
}

func (m Matrix) IsFinite() bool {
	return Vector(m[0]).IsFinite() && Vector(m[1]).IsFinite()
}

// MaxNorm is the Chebyshev norm: the largest absolute component.
func (v Vector) MaxNorm() float64 {
	return math.Max(math.Abs(v[0]), math.Abs(v[1]))
}

// Sub returns the component-wise difference p - q as a vector.
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
