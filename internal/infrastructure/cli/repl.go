package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pieronoviello/natsh/internal/application/session"
	"github.com/pieronoviello/natsh/internal/domain"
)

// REPL is the read-eval-print loop around the session dispatcher. When stdin
// is not a terminal (piped input) the prompt and banner are suppressed and
// the loop ends at EOF.
type REPL struct {
	svc         *session.Service
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewREPL builds the loop over the shared stdin reader.
func NewREPL(svc *session.Service, in *bufio.Reader, out io.Writer, interactive bool) *REPL {
	return &REPL{svc: svc, in: in, out: out, interactive: interactive}
}

// Run processes lines until exit or EOF. Ctrl+C cancels the line being
// handled (killing a running child or aborting a provider request) but never
// the loop itself.
func (r *REPL) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	if r.interactive {
		r.printBanner()
	}

	for {
		if r.interactive {
			fmt.Fprintf(r.out, "natsh:%s> ", filepath.Base(r.svc.State.WorkingDir))
		}

		line, readErr := r.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		atEOF := errors.Is(readErr, io.EOF)
		if atEOF && strings.TrimSpace(line) == "" {
			break
		}

		// drain any interrupt delivered while we sat at the prompt
		select {
		case <-sigCh:
			fmt.Fprintln(r.out)
			continue
		default:
		}

		lineCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-done:
			}
		}()
		outcome := r.svc.HandleLine(lineCtx, line)
		close(done)
		cancel()

		if outcome.Kind == domain.OutcomeExited {
			break
		}
		if atEOF {
			break
		}
	}

	if r.interactive {
		fmt.Fprintln(r.out, "Bye!")
	}
	return nil
}

func (r *REPL) printBanner() {
	cfg := r.svc.State.Config
	fmt.Fprintf(r.out, "natsh %s - type what you want in plain language\n", domain.Version)
	fmt.Fprintf(r.out, "Provider: %s (%s). !help for commands, exit to quit.\n\n",
		cfg.Provider, cfg.ActiveModel())
}
