// Package confirm asks the user yes/no questions.
//
// Commands take a Func rather than reading stdin themselves so tests and
// library callers can answer prompts programmatically.
package confirm

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bmad-code/agent-teams/pkg/errors"
)

// Func asks prompt and reports whether the user agreed.
type Func func(prompt string) (bool, error)

// Yes agrees to every prompt.
func Yes(string) (bool, error) { return true, nil }

// No declines every prompt.
func No(string) (bool, error) { return false, nil }

// Console reads answers line by line from an input stream.
type Console struct {
	mu         sync.Mutex
	in         *bufio.Reader
	out        io.Writer
	defaultYes bool
}

// NewConsole returns a Console that prompts on out and reads from in.
// An empty answer declines.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// WithDefaultYes makes an empty answer agree.
func (c *Console) WithDefaultYes() *Console {
	c.defaultYes = true
	return c
}

// Confirm asks prompt. End of input counts as a refusal, so running
// without a terminal never agrees to anything by accident.
func (c *Console) Confirm(prompt string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	suffix := "[y/N]"
	if c.defaultYes {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(c.out, "%s %s ", prompt, suffix)

	response, err := c.in.ReadString('\n')
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			if strings.TrimSpace(response) == "" {
				fmt.Fprintln(c.out)
				return false, nil
			}
		} else {
			return false, errors.Wrap(err, errors.ErrIOFailure, "reading response")
		}
	}

	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return c.defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// Func returns c.Confirm as a Func.
func (c *Console) Func() Func {
	return c.Confirm
}
