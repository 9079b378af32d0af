package system

import (
	"errors"
	"math"
	"testing"

	"github.com/FabianaFerreira/modified-newton/equations"
	. "github.com/smartystreets/goconvey/convey"
)

// linear is F(p) = A p - b. One modified Newton step from anywhere lands on
// the exact solution when A and b are small integers.
type linear struct {
	a equations.Matrix
	b equations.Vector
}

func (l linear) Evaluate(p equations.Point) equations.Vector {
	return equations.Vector{
		l.a[0][0]*p.X + l.a[0][1]*p.Y - l.b[0],
		l.a[1][0]*p.X + l.a[1][1]*p.Y - l.b[1],
	}
}

func (l linear) Jacobian(equations.Point) equations.Matrix {
	return l.a
}

// blowup returns NaN residuals everywhere.
type blowup struct{}

func (blowup) Evaluate(equations.Point) equations.Vector {
	return equations.Vector{math.NaN(), 0}
}

func (blowup) Jacobian(equations.Point) equations.Matrix {
	return equations.Matrix{{1, 0}, {0, 1}}
}

func collect(m *ModifiedNewton) (Result, []Iteration) {
	var trace []Iteration
	res := m.Run(func(it Iteration) {
		trace = append(trace, it)
	})
	return res, trace
}

func TestNewModifiedNewton(t *testing.T) {
	Convey("Given invalid inputs", t, func() {
		sys := equations.TanEllipse{}

		Convey("A negative precision is rejected", func() {
			_, err := NewModifiedNewton(sys, equations.Point{X: 1, Y: 1}, -1)
			So(errors.Is(err, ErrInvalidPrecision), ShouldBeTrue)
		})

		Convey("A NaN precision is rejected", func() {
			_, err := NewModifiedNewton(sys, equations.Point{X: 1, Y: 1}, math.NaN())
			So(errors.Is(err, ErrInvalidPrecision), ShouldBeTrue)
		})

		Convey("A non-finite initial guess is rejected", func() {
			_, err := NewModifiedNewton(sys, equations.Point{X: math.Inf(1), Y: 1}, 1e-6)
			So(errors.Is(err, ErrInvalidInitialGuess), ShouldBeTrue)
		})

		Convey("A zero iteration bound is rejected", func() {
			_, err := NewModifiedNewton(sys, equations.Point{X: 1, Y: 1}, 1e-6, WithMaxIterations(0))
			So(errors.Is(err, ErrInvalidMaxIterations), ShouldBeTrue)
		})
	})
}

func TestModifiedNewtonRun(t *testing.T) {
	Convey("Given the tan/ellipse system", t, func() {
		sys := equations.TanEllipse{}

		Convey("When I start at (0.5, 0.5) with precision 1e-6 and the default bound", func() {
			m, err := NewModifiedNewton(sys, equations.Point{X: 0.5, Y: 0.5}, 1e-6)
			So(err, ShouldBeNil)
			res, trace := collect(m)

			Convey("Then it runs out of iterations after five updates", func() {
				So(res.Status, ShouldEqual, Exhausted)
				So(res.Iterations, ShouldEqual, 5)
				So(res.Err, ShouldBeNil)
				So(trace, ShouldHaveLength, 5)
			})

			Convey("And every norm is finite, non-negative and smaller than the last", func() {
				for i, it := range trace {
					So(it.K, ShouldEqual, i+1)
					So(math.IsNaN(it.Norm) || math.IsInf(it.Norm, 0), ShouldBeFalse)
					So(it.Norm, ShouldBeGreaterThanOrEqualTo, 0.0)
					if i > 0 {
						So(it.Norm, ShouldBeLessThan, trace[i-1].Norm)
					}
				}
			})

			Convey("And the first step matches the hand computation", func() {
				So(trace[0].Norm, ShouldAlmostEqual, 0.25932653394552974, 1e-12)
				So(trace[0].Point.X, ShouldAlmostEqual, 0.7593265339455297, 1e-12)
				So(trace[0].Point.Y, ShouldAlmostEqual, 0.49533673302723513, 1e-12)
			})
		})

		Convey("When I start at (0.8, 0.4) with precision 1e-3", func() {
			m, err := NewModifiedNewton(sys, equations.Point{X: 0.8, Y: 0.4}, 1e-3)
			So(err, ShouldBeNil)
			res, trace := collect(m)

			Convey("Then it converges on the fourth iteration", func() {
				So(res.Status, ShouldEqual, Converged)
				So(res.Iterations, ShouldEqual, 4)
				So(res.Norm, ShouldBeLessThanOrEqualTo, 1e-3)
				So(res.Point.X, ShouldAlmostEqual, 0.6984063900125508, 1e-9)
				So(res.Point.Y, ShouldAlmostEqual, 0.5062002341190265, 1e-9)
			})

			Convey("And no earlier iteration met the precision", func() {
				for _, it := range trace[:len(trace)-1] {
					So(it.Norm, ShouldBeGreaterThan, 1e-3)
				}
			})

			Convey("And the reported norm is the step between the last two iterates", func() {
				prev, last := trace[len(trace)-2].Point, trace[len(trace)-1].Point
				So(res.Norm, ShouldEqual, last.Sub(prev).MaxNorm())
			})
		})

		Convey("When the bound is raised to 100", func() {
			m, err := NewModifiedNewton(sys, equations.Point{X: 0.5, Y: 0.5}, 1e-6, WithMaxIterations(100))
			So(err, ShouldBeNil)
			res, _ := collect(m)

			Convey("Then the first crossing happens at iteration 37", func() {
				So(res.Status, ShouldEqual, Converged)
				So(res.Iterations, ShouldEqual, 37)
			})
		})

		Convey("When I start at the origin", func() {
			m, err := NewModifiedNewton(sys, equations.Point{}, 1e-6)
			So(err, ShouldBeNil)
			res, trace := collect(m)

			Convey("Then the run fails on the first solve with no iterations", func() {
				So(res.Status, ShouldEqual, Failed)
				So(res.Iterations, ShouldEqual, 0)
				So(trace, ShouldBeEmpty)
				So(errors.Is(res.Err, ErrSingularMatrix), ShouldBeTrue)

				var se *SolveError
				So(errors.As(res.Err, &se), ShouldBeTrue)
				So(se.K, ShouldEqual, 1)
			})
		})

		Convey("When precision is zero", func() {
			m, err := NewModifiedNewton(sys, equations.Point{X: 0.8, Y: 0.4}, 0, WithMaxIterations(20))
			So(err, ShouldBeNil)
			res, _ := collect(m)

			Convey("Then inexact steps never count as converged", func() {
				So(res.Status, ShouldEqual, Exhausted)
			})
		})

		Convey("When every solve is recorded", func() {
			initial := equations.Point{X: 0.5, Y: 0.5}
			var seen []equations.Matrix
			record := func(a equations.Matrix, f equations.Vector) (equations.Vector, error) {
				seen = append(seen, a)
				return Solve(a, f)
			}
			m, err := NewModifiedNewton(sys, initial, 1e-6, WithMaxIterations(100), WithLinearSolver(record))
			So(err, ShouldBeNil)
			collect(m)

			Convey("Then each call received the Jacobian of the initial guess", func() {
				So(len(seen), ShouldEqual, 37)
				for _, a := range seen {
					So(a, ShouldResemble, sys.Jacobian(initial))
				}
				So(m.Jacobian(), ShouldResemble, sys.Jacobian(initial))
			})
		})

		Convey("When the same run is repeated", func() {
			m1, _ := NewModifiedNewton(sys, equations.Point{X: 0.5, Y: 0.5}, 1e-6)
			m2, _ := NewModifiedNewton(sys, equations.Point{X: 0.5, Y: 0.5}, 1e-6)
			res1, trace1 := collect(m1)
			res2, trace2 := collect(m2)

			Convey("Then the traces are identical", func() {
				So(trace1, ShouldResemble, trace2)
				So(res1, ShouldResemble, res2)
			})
		})
	})

	Convey("Given a linear system with an exact solution", t, func() {
		sys := linear{a: equations.Matrix{{2, 0}, {0, 4}}, b: equations.Vector{2, 4}}

		Convey("When precision is zero", func() {
			m, err := NewModifiedNewton(sys, equations.Point{}, 0)
			So(err, ShouldBeNil)
			res, trace := collect(m)

			Convey("Then it converges only once the step is exactly zero", func() {
				So(res.Status, ShouldEqual, Converged)
				So(res.Iterations, ShouldEqual, 2)
				So(res.Norm, ShouldEqual, 0.0)
				So(res.Point, ShouldResemble, equations.Point{X: 1, Y: 1})
				So(trace[0].Norm, ShouldEqual, 1.0)
			})
		})

		Convey("When the bound is one", func() {
			m, err := NewModifiedNewton(sys, equations.Point{}, 0, WithMaxIterations(1))
			So(err, ShouldBeNil)
			res, trace := collect(m)

			Convey("Then no update runs and the result is exhausted", func() {
				So(res.Status, ShouldEqual, Exhausted)
				So(trace, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a system whose residual is NaN", t, func() {
		m, err := NewModifiedNewton(blowup{}, equations.Point{X: 1, Y: 1}, 1e-6)
		So(err, ShouldBeNil)
		res, trace := collect(m)

		Convey("Then the run fails instead of converging", func() {
			So(res.Status, ShouldEqual, Failed)
			So(errors.Is(res.Err, ErrNonFinite), ShouldBeTrue)
			So(trace, ShouldHaveLength, 1)
			So(res.Point, ShouldResemble, equations.Point{})
		})
	})
}

func TestModifiedNewtonStep(t *testing.T) {
	Convey("Given an engine and its initial state", t, func() {
		m, err := NewModifiedNewton(equations.TanEllipse{}, equations.Point{X: 0.5, Y: 0.5}, 1e-6)
		So(err, ShouldBeNil)
		s := m.Initial()

		Convey("Then it starts running at k = 1 from the guess", func() {
			So(s.K, ShouldEqual, 1)
			So(s.Status, ShouldEqual, Running)
			So(s.Point, ShouldResemble, equations.Point{X: 0.5, Y: 0.5})
		})

		Convey("When the same state is stepped twice", func() {
			next1, it1 := m.Step(s)
			next2, it2 := m.Step(s)

			Convey("Then both transitions agree and advance k", func() {
				So(next1, ShouldResemble, next2)
				So(*it1, ShouldResemble, *it2)
				So(next1.K, ShouldEqual, 2)
				So(next1.Point, ShouldResemble, it1.Point)
			})
		})

		Convey("When a terminal state is stepped", func() {
			done := State{K: 3, Status: Converged}
			next, it := m.Step(done)

			Convey("Then nothing changes", func() {
				So(next, ShouldResemble, done)
				So(it, ShouldBeNil)
			})
		})

		Convey("When k has reached the bound", func() {
			next, it := m.Step(State{K: m.MaxIterations(), Status: Running})

			Convey("Then the state becomes exhausted", func() {
				So(next.Status, ShouldEqual, Exhausted)
				So(it, ShouldBeNil)
			})
		})
	})
}

func TestStatusString(t *testing.T) {
	Convey("Statuses have readable names", t, func() {
		So(Converged.String(), ShouldEqual, "converged")
		So(Status(42).String(), ShouldEqual, "status(42)")
	})
}
