package equations

import "math"

// TanEllipse is the system
//
//	tan(xy + 0.1) = x^2
//	x^2 + 2y^2 = 1
type TanEllipse struct{}

const shift = 0.1

func (TanEllipse) Evaluate(p Point) Vector {
	x, y := p.X, p.Y
	return Vector{
		math.Tan(x*y+shift) - x*x,
		x*x + 2*y*y - 1,
	}
}

func (TanEllipse) Jacobian(p Point) Matrix {
	x, y := p.X, p.Y
	c := math.Cos(x*y + shift)
	sec2 := 1 / (c * c)

	return Matrix{
		{sec2*y - 2*x, sec2 * x},
		{2 * x, 4 * y},
	}
}

// Describe returns the equations in the form shown to users.
func (TanEllipse) Describe() []string {
	return []string{
		"tan(xy + 0.1) = x^2",
		"x^2 + 2 * y^2 = 1",
	}
}
