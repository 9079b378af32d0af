// Package prints renders iteration traces and run outcomes.
package prints

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/FabianaFerreira/modified-newton/system"
)

const (
	FormatLines = "lines"
	FormatTable = "table"
)

var ErrUnknownFormat = errors.New("prints: unknown trace format")

// Tracer consumes the iterations of one run. Flush must be called once the
// run is over.
type Tracer interface {
	Observe(it system.Iteration)
	Flush() error
}

func NewTracer(format string, w io.Writer) (Tracer, error) {
	switch format {
	case FormatLines, "":
		return &LineTracer{w: w}, nil
	case FormatTable:
		return NewTableTracer(w), nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// LineTracer writes each iteration as soon as it is observed.
type LineTracer struct {
	w io.Writer
}

func (t *LineTracer) Observe(it system.Iteration) {
	fmt.Fprintf(t.w, "Iteration %d:\n", it.K)
	fmt.Fprintf(t.w, "F(x, y) = [%v, %v]\n", it.F[0], it.F[1])
	fmt.Fprintf(t.w, "Norm = %v\n", it.Norm)
	fmt.Fprintf(t.w, "\nx = %v, y = %v\n", it.Point.X, it.Point.Y)
	fmt.Fprintln(t.w, "-----------------------")
}

func (t *LineTracer) Flush() error {
	return nil
}

// TableTracer buffers rows and renders them on Flush.
type TableTracer struct {
	w    io.Writer
	tw   table.Writer
	rows int
}

func NewTableTracer(w io.Writer) *TableTracer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"k", "f1", "f2", "norm", "x", "y"})

	return &TableTracer{w: w, tw: tw}
}

func (t *TableTracer) Observe(it system.Iteration) {
	t.tw.AppendRow(table.Row{it.K, it.F[0], it.F[1], it.Norm, it.Point.X, it.Point.Y})
	t.rows++
}

func (t *TableTracer) Flush() error {
	if t.rows == 0 {
		return nil
	}
	_, err := fmt.Fprintln(t.w, t.tw.Render())
	return err
}
