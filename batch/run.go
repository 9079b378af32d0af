package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/FabianaFerreira/modified-newton/equations"
	"github.com/FabianaFerreira/modified-newton/metrics"
	"github.com/FabianaFerreira/modified-newton/prints"
	"github.com/FabianaFerreira/modified-newton/system"
)

const defaultWorkers = 4

type Options struct {
	Workers  int
	System   equations.System
	Logger   *logrus.Entry
	Recorder *metrics.Recorder
}

// Outcome is the finished run of one problem, with its full trace.
type Outcome struct {
	Problem Problem
	RunID   uuid.UUID
	Result  system.Result
	Trace   []system.Iteration
}

// Run solves every problem, at most opts.Workers at a time, and returns the
// outcomes in input order. A solver failure is an outcome; an error is only
// returned for invalid problems or a cancelled context.
func Run(ctx context.Context, problems []Problem, opts Options) ([]Outcome, error) {
	opts = withDefaults(opts)
	outcomes := make([]Outcome, len(problems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, p := range problems {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := solve(p, opts)
			if err != nil {
				return fmt.Errorf("problem %q: %w", p.Name, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func withDefaults(opts Options) Options {
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	if opts.System == nil {
		opts.System = equations.TanEllipse{}
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = logrus.NewEntry(l)
	}
	return opts
}

func solve(p Problem, opts Options) (Outcome, error) {
	var sopts []system.Option
	if p.MaxIterations != 0 {
		sopts = append(sopts, system.WithMaxIterations(p.MaxIterations))
	}

	m, err := system.NewModifiedNewton(opts.System, equations.Point{X: p.X, Y: p.Y}, p.Precision, sopts...)
	if err != nil {
		return Outcome{}, err
	}

	o := Outcome{Problem: p, RunID: uuid.New()}
	log := opts.Logger.WithFields(logrus.Fields{
		"run_id":    o.RunID.String(),
		"problem":   p.Name,
		"x0":        p.X,
		"y0":        p.Y,
		"precision": p.Precision,
	})

	o.Result = m.Run(prints.Chain(
		prints.LogObserver(log),
		func(it system.Iteration) { o.Trace = append(o.Trace, it) },
	))
	opts.Recorder.Observe(o.Result)

	done := log.WithFields(logrus.Fields{
		"status":     o.Result.Status.String(),
		"iterations": o.Result.Iterations,
	})
	if o.Result.Status == system.Failed {
		done.WithError(o.Result.Err).Warn("solve failed")
	} else {
		done.Info("solve finished")
	}

	return o, nil
}
