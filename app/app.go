// Package app runs the solver command: it gathers the inputs, solves, prints
// the traces and records metrics.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/FabianaFerreira/modified-newton/batch"
	"github.com/FabianaFerreira/modified-newton/config"
	"github.com/FabianaFerreira/modified-newton/console"
	"github.com/FabianaFerreira/modified-newton/equations"
	"github.com/FabianaFerreira/modified-newton/metrics"
	"github.com/FabianaFerreira/modified-newton/prints"
	"github.com/FabianaFerreira/modified-newton/system"
	"github.com/FabianaFerreira/modified-newton/utils"
)

const interactiveName = "x_0"

// Run executes the command. A run that fails numerically is reported on out
// and is not an error.
func Run(ctx context.Context, cfg config.Config, in io.Reader, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat, errOut)
	if err != nil {
		return err
	}
	if _, err := prints.NewTracer(cfg.TraceFormat, io.Discard); err != nil {
		return err
	}

	sys := equations.TanEllipse{}
	if !cfg.Quiet {
		prints.Banner(out, sys.Describe())
	}

	var problems []batch.Problem
	if cfg.BatchFile != "" {
		b, err := batch.Load(cfg.BatchFile)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"title": b.Title, "problems": len(b.Problems)}).Info("batch loaded")
		problems = withMaxIterations(b.Problems, cfg.MaxIterations)
	} else {
		p, err := interactiveProblem(cfg, in, out)
		if err != nil {
			return err
		}
		problems = []batch.Problem{p}
	}

	rec := metrics.NewRecorder()
	outcomes, err := batch.Run(ctx, problems, batch.Options{
		Workers:  cfg.Workers,
		System:   sys,
		Logger:   logrus.NewEntry(logger),
		Recorder: rec,
	})
	if err != nil {
		return err
	}

	results := make([]system.Result, len(outcomes))
	for i, o := range outcomes {
		if err := report(out, cfg, o); err != nil {
			return err
		}
		results[i] = o.Result
	}
	rec.SetFinalNorm(results)

	if cfg.MetricsFile != "" {
		return rec.WriteTextfile(cfg.MetricsFile)
	}
	return nil
}

func withMaxIterations(problems []batch.Problem, bound int) []batch.Problem {
	out := make([]batch.Problem, len(problems))
	for i, p := range problems {
		if p.MaxIterations == 0 {
			p.MaxIterations = bound
		}
		out[i] = p
	}
	return out
}

// interactiveProblem takes the inputs from cfg and asks for the missing ones.
func interactiveProblem(cfg config.Config, in io.Reader, out io.Writer) (batch.Problem, error) {
	p := batch.Problem{Name: interactiveName, MaxIterations: cfg.MaxIterations}
	prompt := console.NewPrompter(in, out)

	if cfg.X == "" && cfg.Y == "" && cfg.Precision == "" {
		var err error
		if p.X, p.Y, p.Precision, err = prompt.Guess(); err != nil {
			return batch.Problem{}, err
		}
		return p, nil
	}

	// Some inputs came from flags or the environment; ask only for the rest.
	if cfg.X == "" || cfg.Y == "" {
		prompt.Announce()
	}

	fields := []struct {
		text   string
		target *float64
		ask    func() (float64, error)
		name   string
	}{
		{cfg.X, &p.X, prompt.X, "x"},
		{cfg.Y, &p.Y, prompt.Y, "y"},
		{cfg.Precision, &p.Precision, prompt.Precision, "precision"},
	}
	for _, f := range fields {
		var (
			v   float64
			err error
		)
		if f.text == "" {
			v, err = f.ask()
		} else {
			v, err = utils.StringToFloat64(f.text)
		}
		if err != nil {
			return batch.Problem{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.target = v
	}

	return p, nil
}

func report(out io.Writer, cfg config.Config, o batch.Outcome) error {
	if cfg.BatchFile != "" {
		fmt.Fprintf(out, "\nProblem %s (x = %v, y = %v, E = %v)\n", o.Problem.Name, o.Problem.X, o.Problem.Y, o.Problem.Precision)
	}

	tracer, err := prints.NewTracer(cfg.TraceFormat, out)
	if err != nil {
		return err
	}
	for _, it := range o.Trace {
		tracer.Observe(it)
	}
	if err := tracer.Flush(); err != nil {
		return err
	}

	prints.Outcome(out, o.Result)
	return nil
}
