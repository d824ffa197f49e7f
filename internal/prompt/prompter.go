package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input ends before a question is answered.
var ErrNoInput = errors.New("input closed before an answer was given")

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing
// questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Printf writes a formatted message to the prompt output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Ask writes question and returns the answer with surrounding whitespace removed.
// A final line without a newline is accepted; end of input before any text
// returns ErrNoInput.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question until it gets "y", "yes", "n" or "no"
// (case-insensitive). Other answers are rejected and the question is repeated.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		answer, err := p.Ask(question + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "input not understood")
	}
}
