// Package batch loads lists of independent initial guesses and solves them
// concurrently.
package batch

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	maxProblems   = 1000
	maxNameLength = 32
)

var (
	ErrEmpty         = errors.New("batch: no problems")
	ErrTooMany       = errors.New("batch: too many problems")
	ErrDuplicateName = errors.New("batch: duplicate problem name")
	ErrNameTooLong   = errors.New("batch: problem name too long")
	ErrMalformedLine = errors.New("batch: malformed line")
	ErrInvalid       = errors.New("batch: invalid problem")
)

// Problem is one solver run. MaxIterations of zero means the solver default.
type Problem struct {
	Name          string  `yaml:"name"`
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Precision     float64 `yaml:"precision"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
}

type Batch struct {
	Title    string    `yaml:"title"`
	Problems []Problem `yaml:"problems"`

	// position of each name in Problems
	index map[string]int
}

func (b *Batch) add(p Problem) error {
	if len(b.Problems) >= maxProblems {
		return fmt.Errorf("maximum number of problems is %d: %w", maxProblems, ErrTooMany)
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("#%d", len(b.Problems)+1)
	}
	if len(p.Name) > maxNameLength {
		return fmt.Errorf("%q is longer than %d: %w", p.Name, maxNameLength, ErrNameTooLong)
	}
	if at, dup := b.index[p.Name]; dup {
		return fmt.Errorf("%q already defined as problem %d: %w", p.Name, at+1, ErrDuplicateName)
	}
	if err := p.validate(); err != nil {
		return err
	}

	if b.index == nil {
		b.index = make(map[string]int)
	}
	b.index[p.Name] = len(b.Problems)
	b.Problems = append(b.Problems, p)

	return nil
}

// validate rejects what the solver would refuse, so a bad entry fails at
// load time instead of aborting a running batch.
func (p Problem) validate() error {
	switch {
	case !finite(p.X) || !finite(p.Y):
		return fmt.Errorf("%q: initial guess (%v, %v) must be finite: %w", p.Name, p.X, p.Y, ErrInvalid)
	case math.IsNaN(p.Precision) || p.Precision < 0:
		return fmt.Errorf("%q: precision %v must be non-negative: %w", p.Name, p.Precision, ErrInvalid)
	case p.MaxIterations < 0:
		return fmt.Errorf("%q: max iterations %d must not be negative: %w", p.Name, p.MaxIterations, ErrInvalid)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Load reads a batch file. YAML is picked by extension; any other file is
// read as a netlist.
func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return Parse(data, path)
}

func Parse(data []byte, filename string) (*Batch, error) {
	if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return parseYAML(data)
	}
	return ParseNetlist(strings.NewReader(string(data)))
}

func parseYAML(data []byte) (*Batch, error) {
	var doc Batch
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	b := &Batch{Title: doc.Title}
	for i, p := range doc.Problems {
		if err := b.add(p); err != nil {
			return nil, fmt.Errorf("problem %d: %w", i+1, err)
		}
	}
	if len(b.Problems) == 0 {
		return nil, ErrEmpty
	}

	return b, nil
}
