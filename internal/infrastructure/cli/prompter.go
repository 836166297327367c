package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/pieronoviello/natsh/internal/ports"
)

// TerminalPrompter collects interactive answers from the same reader the
// REPL uses, so buffered input is never lost between the two.
type TerminalPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	stdinFd     int
	interactive bool
}

// NewTerminalPrompter wraps the shared stdin reader.
func NewTerminalPrompter(in *bufio.Reader, out io.Writer) *TerminalPrompter {
	fd := int(os.Stdin.Fd())
	return &TerminalPrompter{
		in:          in,
		out:         out,
		stdinFd:     fd,
		interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}
}

// Confirm implements ports.ConfirmationPrompter. Only a bare "y" (any case)
// affirms; everything else, including a read failure, declines.
func (p *TerminalPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}

// ReadSecret reads a line without echo when stdin is a terminal.
func (p *TerminalPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if p.interactive {
		raw, err := term.ReadPassword(p.stdinFd)
		fmt.Fprintln(p.out)
		if err == nil {
			return strings.TrimSpace(string(raw)), nil
		}
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var _ ports.ConfirmationPrompter = (*TerminalPrompter)(nil)
