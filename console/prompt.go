// Package console reads the solver inputs from an interactive terminal.
package console

import (
	"bufio"
	"fmt"
	"io"

	"github.com/FabianaFerreira/modified-newton/utils"
)

const (
	retryDouble = "Invalid input. Please enter a valid double number: "
	retryNumber = "Invalid input. Please enter a valid number: "
)

type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanLines)

	return &Prompter{scanner: scanner, out: out}
}

// Float writes label and reads lines until one parses as a finite number.
// Each rejected line is answered with retry.
func (p *Prompter) Float(label, retry string) (float64, error) {
	fmt.Fprint(p.out, label)

	for p.scanner.Scan() {
		v, err := utils.StringToFloat64(p.scanner.Text())
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, retry)
	}

	if err := p.scanner.Err(); err != nil {
		return 0, fmt.Errorf("read %q: %w", label, err)
	}
	return 0, fmt.Errorf("read %q: %w", label, io.ErrUnexpectedEOF)
}

// X asks for the x component of the initial approximation.
func (p *Prompter) X() (float64, error) {
	return p.Float("x: ", retryDouble)
}

func (p *Prompter) Y() (float64, error) {
	return p.Float("y: ", retryDouble)
}

func (p *Prompter) Precision() (float64, error) {
	return p.Float("\nEnter a precision E: ", retryNumber)
}

// Announce introduces the initial approximation prompts.
func (p *Prompter) Announce() {
	fmt.Fprintln(p.out, "\nEnter an initial approximation for vector x_0.")
}

// Guess runs the full dialogue: the initial approximation x, y and then the
// precision E.
func (p *Prompter) Guess() (x, y, eps float64, err error) {
	p.Announce()
	if x, err = p.X(); err != nil {
		return 0, 0, 0, err
	}
	if y, err = p.Y(); err != nil {
		return 0, 0, 0, err
	}
	if eps, err = p.Precision(); err != nil {
		return 0, 0, 0, err
	}
	return x, y, eps, nil
}
