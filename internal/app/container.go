// Package app wires the infrastructure adapters into a ready-to-run session.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pieronoviello/natsh/internal/application/session"
	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/infrastructure/ai"
	"github.com/pieronoviello/natsh/internal/infrastructure/config"
	"github.com/pieronoviello/natsh/internal/infrastructure/executor"
	"github.com/pieronoviello/natsh/internal/infrastructure/history"
	"github.com/pieronoviello/natsh/internal/infrastructure/security"
	"github.com/pieronoviello/natsh/internal/pkg/logger"
	"github.com/pieronoviello/natsh/internal/ports"
)

// Options carries the knobs the command line exposes plus the interactive
// surfaces only the CLI layer can provide.
type Options struct {
	ConfigPath string
	Verbose    bool
	Out        io.Writer
	Prompter   ports.ConfirmationPrompter
}

// Container holds the wired dependency graph.
type Container struct {
	Session *session.Service
	Logger  *logger.ZapLogger
}

// Build performs dependency injection: every adapter is constructed here and
// nowhere else. A broken config or history backend degrades with a warning
// instead of refusing to start; only an invalid rules file is fatal, because
// running without the safety gate the user configured would be worse.
func Build(opts Options) (*Container, error) {
	stateDir := config.StateDir()

	cfgStore := config.NewStore(opts.ConfigPath)
	cfg, err := cfgStore.Load()
	if err != nil {
		fmt.Fprintf(opts.Out, "natsh: %v (using defaults)\n", err)
	}

	log := logger.NewFile(filepath.Join(stateDir, "natsh.log"), opts.Verbose)

	classifier, err := security.NewClassifier(filepath.Join(stateDir, "rules.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading danger rules: %w", err)
	}

	secrets := config.NewEnvFileStore("")
	histStore := history.NewSQLiteStore(filepath.Join(stateDir, "history.db"), cfg.MaxHistory)

	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = stateDir
	}

	svc := session.NewService(cfg, workingDir, session.Deps{
		Config:     cfgStore,
		Secrets:    secrets,
		Providers:  ai.NewFactory(secrets),
		Classifier: classifier,
		Executor:   executor.NewLocalExecutor(""),
		History:    histStore,
		Prompter:   opts.Prompter,
		Logger:     log,
		Out:        opts.Out,
		StateDir:   stateDir,
	})

	log.Info("session started", map[string]interface{}{
		"session_id": svc.State.ID,
		"provider":   string(cfg.Provider),
		"model":      cfg.ActiveModel(),
		"version":    domain.Version,
	})
	return &Container{Session: svc, Logger: log}, nil
}

// Close flushes buffered log entries.
func (c *Container) Close() {
	c.Logger.Sync()
}
