package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrNotANumber is returned by an Input when the next token is not an integer.
var ErrNotANumber = errors.New("not a number")

// Input reads one integer answer for a prompt label. It returns io.EOF
// when no more input will arrive.
type Input interface {
	ReadInt(label string) (int, error)
}

// ScanInput reads whitespace separated tokens, so "2 3" answers two
// prompts at once, the same way a stream extraction would.
type ScanInput struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewScanInput(r io.Reader, out io.Writer) *ScanInput {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	if out == nil {
		out = io.Discard
	}
	return &ScanInput{scanner: scanner, out: out}
}

func (in *ScanInput) ReadInt(label string) (int, error) {
	if label != "" {
		if _, err := io.WriteString(in.out, label); err != nil {
			return 0, err
		}
	}
	if !in.scanner.Scan() {
		if err := in.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	token := in.scanner.Text()
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, token)
	}
	return n, nil
}

// PromptInput asks through promptui, validating as the user types.
type PromptInput struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (p *PromptInput) ReadInt(label string) (int, error) {
	prompt := promptui.Prompt{
		Label:    promptLabel(label),
		Validate: validateInt,
		Stdin:    p.Stdin,
		Stdout:   p.Stdout,
	}
	value, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
			return 0, io.EOF
		}
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, value)
	}
	return n, nil
}

// promptui draws its own colon after the label.
func promptLabel(label string) string {
	label = strings.TrimSpace(label)
	return strings.TrimSuffix(strings.TrimSuffix(label, "?"), ":")
}

func validateInt(input string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(input)); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}
