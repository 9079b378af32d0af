package batch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FabianaFerreira/modified-newton/utils"
)

// ParseNetlist reads the line format
//
//	title
//	* comment
//	name x0 y0 precision [maxIterations]
func ParseNetlist(r io.Reader) (*Batch, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	b := &Batch{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// First line is the title
		if lineNo == 1 {
			b.Title = line
			continue
		}
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		p, err := processLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := b.add(p); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read netlist: %w", err)
	}
	if len(b.Problems) == 0 {
		return nil, ErrEmpty
	}

	return b, nil
}

func processLine(line string) (Problem, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 && len(fields) != 5 {
		return Problem{}, fmt.Errorf("%q: want 4 or 5 fields, got %d: %w", line, len(fields), ErrMalformedLine)
	}

	p := Problem{Name: fields[0]}
	targets := []*float64{&p.X, &p.Y, &p.Precision}
	for i, target := range targets {
		v, err := utils.StringToFloat64(fields[i+1])
		if err != nil {
			return Problem{}, fmt.Errorf("%q: %v: %w", line, err, ErrMalformedLine)
		}
		*target = v
	}

	if len(fields) == 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Problem{}, fmt.Errorf("%q: %v: %w", line, err, ErrMalformedLine)
		}
		p.MaxIterations = n
	}

	return p, nil
}
