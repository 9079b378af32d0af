package system

import (
	"fmt"
	"math"

	"github.com/FabianaFerreira/modified-newton/equations"
)

// DefaultMaxIterations bounds the iteration counter k. The loop runs while
// k < max, so at most max-1 updates are made.
const DefaultMaxIterations = 6

type Status int

const (
	Running Status = iota
	Converged
	Exhausted
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is the engine state at the start of iteration K.
type State struct {
	K      int
	Point  equations.Point
	Status Status
	// Norm of the last completed step, zero before the first one.
	Norm float64
	Err  error
}

// Iteration is what one completed step reports to an Observer.
type Iteration struct {
	K     int
	F     equations.Vector
	Delta equations.Vector
	Norm  float64
	Point equations.Point
}

type Observer func(Iteration)

// Result is the terminal outcome of a run. Point and Norm are only set when
// Status is Converged; Err is only set when Status is Failed.
type Result struct {
	Status     Status
	Point      equations.Point
	Norm       float64
	Iterations int
	Err        error
}

type Option func(*ModifiedNewton)

func WithMaxIterations(n int) Option {
	return func(m *ModifiedNewton) {
		m.maxIterations = n
	}
}

// WithLinearSolver replaces Solve as the A^-1 * F routine.
func WithLinearSolver(solve LinearSolver) Option {
	return func(m *ModifiedNewton) {
		m.solve = solve
	}
}

// ModifiedNewton iterates x_{k+1} = x_k - A0^-1 F(x_k) where A0 is the
// Jacobian at the initial guess. A0 is computed once in NewModifiedNewton
// and never again.
type ModifiedNewton struct {
	sys           equations.System
	initial       equations.Point
	jacobian      equations.Matrix
	precision     float64
	maxIterations int
	solve         LinearSolver
}

func NewModifiedNewton(sys equations.System, initial equations.Point, precision float64, opts ...Option) (*ModifiedNewton, error) {
	m := &ModifiedNewton{
		sys:           sys,
		initial:       initial,
		precision:     precision,
		maxIterations: DefaultMaxIterations,
		solve:         Solve,
	}
	for _, opt := range opts {
		opt(m)
	}

	if !initial.IsFinite() {
		return nil, fmt.Errorf("(%v, %v): %w", initial.X, initial.Y, ErrInvalidInitialGuess)
	}
	if math.IsNaN(precision) || precision < 0 {
		return nil, fmt.Errorf("%v: %w", precision, ErrInvalidPrecision)
	}
	if m.maxIterations < 1 {
		return nil, fmt.Errorf("%d: %w", m.maxIterations, ErrInvalidMaxIterations)
	}
	if m.solve == nil {
		m.solve = Solve
	}

	m.jacobian = sys.Jacobian(initial)

	return m, nil
}

// Jacobian returns the frozen matrix A0.
func (m *ModifiedNewton) Jacobian() equations.Matrix {
	return m.jacobian
}

func (m *ModifiedNewton) MaxIterations() int {
	return m.maxIterations
}

func (m *ModifiedNewton) Initial() State {
	return State{K: 1, Point: m.initial, Status: Running}
}

// Step performs one transition. It does not modify the engine, so the same
// state always yields the same successor. A nil Iteration means no update
// was made.
func (m *ModifiedNewton) Step(s State) (State, *Iteration) {
	if s.Status != Running {
		return s, nil
	}
	if s.K >= m.maxIterations {
		s.Status = Exhausted
		return s, nil
	}

	f := m.sys.Evaluate(s.Point)
	delta, err := m.solve(m.jacobian, f)
	if err != nil {
		s.Status = Failed
		s.Err = &SolveError{K: s.K, Point: s.Point, Err: err}
		return s, nil
	}

	next := equations.Point{X: s.Point.X - delta[0], Y: s.Point.Y - delta[1]}
	norm := next.Sub(s.Point).MaxNorm()
	it := &Iteration{K: s.K, F: f, Delta: delta, Norm: norm, Point: next}

	// NaN compares false against the precision, so it has to be caught
	// before the convergence test.
	if !f.IsFinite() || !delta.IsFinite() || !next.IsFinite() || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return State{
			K:      s.K,
			Point:  s.Point,
			Status: Failed,
			Norm:   norm,
			Err:    &SolveError{K: s.K, Point: s.Point, Err: ErrNonFinite},
		}, it
	}

	if norm <= m.precision {
		return State{K: s.K, Point: next, Status: Converged, Norm: norm}, it
	}

	return State{K: s.K + 1, Point: next, Status: Running, Norm: norm}, it
}

// Run steps from the initial state until a terminal status, passing every
// completed iteration to observe (which may be nil).
func (m *ModifiedNewton) Run(observe Observer) Result {
	var iterations int

	s := m.Initial()
	for s.Status == Running {
		var it *Iteration
		s, it = m.Step(s)
		if it != nil {
			iterations++
			if observe != nil {
				observe(*it)
			}
		}
	}

	res := Result{Status: s.Status, Iterations: iterations, Err: s.Err}
	if s.Status == Converged {
		res.Point = s.Point
		res.Norm = s.Norm
	}

	return res
}
