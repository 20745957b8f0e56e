package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
)

// ErrNoInput is returned when the reader is exhausted before a valid value
// was entered.
var ErrNoInput = errors.New("input: no more input")

const invalidPrefix = "Non-valid input. "

// Provider collects validated integration parameters from line-based text
// input, re-prompting until each value is acceptable.
type Provider struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewProvider(r io.Reader, w io.Writer) *Provider {
	return &Provider{scanner: bufio.NewScanner(r), out: w}
}

func (p *Provider) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return p.scanner.Text(), nil
}

// Float prompts until the line parses as a finite number.
func (p *Provider) Float(prompt string) (float64, error) {
	fmt.Fprint(p.out, prompt)
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		v, err := ParseFloat(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprint(p.out, invalidPrefix+prompt)
	}
}

// Int prompts until the line parses as an integer accepted by valid.
func (p *Provider) Int(prompt string, valid func(int) bool) (int, error) {
	fmt.Fprint(p.out, prompt)
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		v, err := ParseInt(line)
		if err == nil && (valid == nil || valid(v)) {
			return v, nil
		}
		fmt.Fprint(p.out, invalidPrefix+prompt)
	}
}

// EquationID accepts only ids present in ids.
func (p *Provider) EquationID(ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, errors.New("input: no equations to choose from")
	}
	lo, hi := slices.Min(ids), slices.Max(ids)
	prompt := fmt.Sprintf("Please enter an equation id (from %d to %d): ", lo, hi)
	return p.Int(prompt, func(v int) bool { return slices.Contains(ids, v) })
}

func (p *Provider) LowerLimit() (float64, error) {
	return p.Float("Please enter lower limit of the integral (double number): ")
}

func (p *Provider) UpperLimit() (float64, error) {
	return p.Float("Please enter upper limit of the integral (double number): ")
}

// Bounds asks for both limits again until lower < upper.
func (p *Provider) Bounds() (float64, float64, error) {
	for {
		lower, err := p.LowerLimit()
		if err != nil {
			return 0, 0, err
		}
		upper, err := p.UpperLimit()
		if err != nil {
			return 0, 0, err
		}
		if lower < upper {
			return lower, upper, nil
		}
		fmt.Fprintln(p.out, invalidPrefix+"Lower limit must be < upper limit.")
	}
}

func (p *Provider) IntervalsAmount() (int, error) {
	return p.Int("Please enter an amount of subintervals (even integer above 0): ", ValidIntervals)
}

// Params is everything the provider collects for one calculation.
type Params struct {
	Equation  int
	Lower     float64
	Upper     float64
	Intervals int
}

// Collect asks for the equation, the bounds and the subinterval count, in
// that order.
func (p *Provider) Collect(ids []int) (Params, error) {
	var params Params
	var err error

	if params.Equation, err = p.EquationID(ids); err != nil {
		return params, err
	}
	if params.Lower, params.Upper, err = p.Bounds(); err != nil {
		return params, err
	}
	if params.Intervals, err = p.IntervalsAmount(); err != nil {
		return params, err
	}
	return params, nil
}
