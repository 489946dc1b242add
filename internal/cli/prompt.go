package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"zakat/internal/core"
)

// Prompter reads operator input line by line. Invalid input re-prompts
// until a valid value or end of input.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line prints the prompt and returns the next input line, trimmed.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Date keeps asking until the operator enters a valid YYYY-MM-DD date.
func (p *Prompter) Date(prompt string) (time.Time, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return time.Time{}, err
		}
		t, err := core.ParseDate(s)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid date. Use the YYYY-MM-DD format.")
			continue
		}
		return t, nil
	}
}

// ID keeps asking until the operator enters a positive whole number.
func (p *Prompter) ID(prompt string) (int64, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			fmt.Fprintln(p.out, "Enter a valid positive id.")
			continue
		}
		return id, nil
	}
}

// Decimal keeps asking until parse succeeds. A comma decimal separator is
// accepted ("2,5" reads as 2.5).
func (p *Prompter) Decimal(prompt string, parse func(string) (decimal.Decimal, error)) (decimal.Decimal, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return decimal.Decimal{}, err
		}
		d, err := parse(s)
		if err != nil {
			fmt.Fprintln(p.out, "Enter a valid number (for example 2 or 2.5).")
			continue
		}
		return d, nil
	}
}

// Confirm asks a y/n question; anything other than y or Y declines.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	s, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, "y"), nil
}
