// Package executor runs resolved shell commands as child processes.
package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"

	"github.com/pieronoviello/natsh/internal/ports"
)

// LocalExecutor spawns the platform shell with the child's stdio connected
// to the current terminal, so the user sees live output and interactive
// children keep working. Directory changes never reach it: the dispatcher
// handles cd in-process.
type LocalExecutor struct {
	shell string
	flag  string
}

// NewLocalExecutor picks the platform shell; an empty shell argument uses
// $SHELL, then /bin/sh (cmd.exe on Windows).
func NewLocalExecutor(shell string) *LocalExecutor {
	if runtime.GOOS == "windows" {
		return &LocalExecutor{shell: "cmd", flag: "/C"}
	}
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{shell: shell, flag: "-c"}
}

// Run implements ports.CommandExecutor. It blocks until the child exits and
// returns the child's exit code; a non-zero exit is not an error here, the
// dispatcher reports it. Context cancellation kills the child.
func (e *LocalExecutor) Run(ctx context.Context, command string, dir string) (int, error) {
	cmd := exec.CommandContext(ctx, e.shell, e.flag, command)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
