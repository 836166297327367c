// Package session implements the interactive dispatcher: it classifies each
// input line and drives translation, safety gating, execution and history.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// Service is the session dispatcher. It owns the mutable session state
// (active config, working directory) and is the only component that touches
// more than one port per input line.
type Service struct {
	State      *domain.SessionState
	Config     ports.ConfigStore
	Secrets    ports.SecretStore
	Providers  ports.ProviderFactory
	Classifier ports.SafetyClassifier
	Executor   ports.CommandExecutor
	History    ports.HistoryStore
	Prompter   ports.ConfirmationPrompter
	Logger     ports.Logger
	Out        io.Writer

	// StateDir is removed wholesale by !uninstall.
	StateDir string
	// ReleaseEndpoint is queried by !update; overridable in tests.
	ReleaseEndpoint string
	HTTPClient      *http.Client

	now func() time.Time
}

// Deps bundles everything the dispatcher needs.
type Deps struct {
	Config     ports.ConfigStore
	Secrets    ports.SecretStore
	Providers  ports.ProviderFactory
	Classifier ports.SafetyClassifier
	Executor   ports.CommandExecutor
	History    ports.HistoryStore
	Prompter   ports.ConfirmationPrompter
	Logger     ports.Logger
	Out        io.Writer
	StateDir   string
}

const defaultReleaseEndpoint = "https://api.github.com/repos/pieronoviello/natsh/releases/latest"

// NewService creates a dispatcher with a fresh session identity. The working
// directory starts at the process cwd and thereafter moves only via cd.
func NewService(cfg domain.Config, workingDir string, d Deps) *Service {
	return &Service{
		State: &domain.SessionState{
			ID:         uuid.NewString(),
			Config:     cfg,
			WorkingDir: workingDir,
		},
		Config:          d.Config,
		Secrets:         d.Secrets,
		Providers:       d.Providers,
		Classifier:      d.Classifier,
		Executor:        d.Executor,
		History:         d.History,
		Prompter:        d.Prompter,
		Logger:          d.Logger,
		Out:             d.Out,
		StateDir:        d.StateDir,
		ReleaseEndpoint: defaultReleaseEndpoint,
		HTTPClient:      &http.Client{Timeout: domain.DefaultHTTPTimeout},
		now:             time.Now,
	}
}

// HandleLine processes exactly one raw input line and reports what happened.
// Every failure is reported inline and folded into the outcome; the caller's
// loop ends only on an exited outcome.
func (s *Service) HandleLine(ctx context.Context, raw string) domain.Outcome {
	intent, rest := s.classify(strings.TrimSpace(raw))

	switch intent {
	case domain.IntentNoop:
		return domain.Outcome{Kind: domain.OutcomeNoop}
	case domain.IntentExit:
		return domain.Outcome{Kind: domain.OutcomeExited}
	case domain.IntentExplain:
		return s.explain(ctx, rest)
	case domain.IntentAliasDefine:
		return s.defineAlias(rest)
	case domain.IntentMeta:
		return s.runMeta(ctx, rest)
	case domain.IntentDirect:
		resolved := domain.ResolveAlias(rest, s.State.Config.Aliases)
		return s.runResolved(ctx, rest, resolved)
	default:
		return s.translate(ctx, rest)
	}
}

// classify maps a trimmed input line to an intent plus the payload the
// handler needs. The checks run in priority order and the first match wins.
func (s *Service) classify(input string) (domain.Intent, string) {
	if input == "" {
		return domain.IntentNoop, ""
	}
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return domain.IntentExit, ""
	}
	if strings.HasPrefix(input, "?") {
		return domain.IntentExplain, strings.TrimSpace(input[1:])
	}
	if strings.HasPrefix(input, "!") {
		rest := strings.TrimSpace(input[1:])
		if rest == "" {
			return domain.IntentNoop, ""
		}
		switch strings.ToLower(firstToken(rest)) {
		case "alias":
			return domain.IntentAliasDefine, strings.TrimSpace(strings.TrimPrefix(rest, firstToken(rest)))
		case "help", "api", "provider", "model", "history", "config", "aliases", "update", "uninstall":
			return domain.IntentMeta, rest
		}
		return domain.IntentDirect, rest
	}
	if _, ok := s.State.Config.Aliases[firstToken(input)]; ok {
		return domain.IntentDirect, input
	}
	return domain.IntentTranslate, input
}

// runResolved is the single execution path shared by direct input, alias
// expansion and accepted translations. Directory changes are applied
// in-process; everything else goes through the safety gate and the executor.
func (s *Service) runResolved(ctx context.Context, input, command string) domain.Outcome {
	if target, isChdir := parseChdir(command); isChdir {
		return s.changeDir(input, command, target)
	}

	assessment := s.Classifier.Classify(command)
	if assessment.Dangerous() && s.State.Config.SafeMode {
		if !s.confirmDanger(command, assessment) {
			s.record(input, command, false, 0)
			fmt.Fprintln(s.Out, "Declined.")
			return domain.Outcome{Kind: domain.OutcomeDeclined}
		}
	}

	code, err := s.Executor.Run(ctx, command, s.State.WorkingDir)
	s.record(input, command, true, code)
	if err != nil {
		fmt.Fprintf(s.Out, "natsh: %v\n", err)
		return domain.Outcome{Kind: domain.OutcomeError, ExitCode: code, Err: err}
	}
	if code != 0 {
		fmt.Fprintf(s.Out, "exit status %d\n", code)
	}
	s.Logger.Debug("command finished", map[string]interface{}{
		"command": command,
		"exit":    code,
	})
	return domain.Outcome{Kind: domain.OutcomeExecuted, ExitCode: code}
}

// confirmDanger shows the candidate with the matched reasons and asks for an
// explicit yes. Read failures count as a decline.
func (s *Service) confirmDanger(command string, assessment domain.Assessment) bool {
	fmt.Fprintf(s.Out, "\n[!] This command looks dangerous:\n    %s\n", command)
	for _, reason := range assessment.Reasons {
		fmt.Fprintf(s.Out, "    - %s\n", reason)
	}
	ok, err := s.Prompter.Confirm("Run it anyway? [y/N] ")
	if err != nil {
		return false
	}
	return ok
}

// changeDir mutates the session working directory without touching the
// process cwd; the executor receives the session directory on every run.
func (s *Service) changeDir(input, command, target string) domain.Outcome {
	resolved := target
	if resolved == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(s.Out, "cd: %v\n", err)
			return domain.Outcome{Kind: domain.OutcomeError, Err: err}
		}
		resolved = home
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(s.State.WorkingDir, resolved)
	}
	resolved = filepath.Clean(resolved)

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory: %s", resolved)
		}
		fmt.Fprintf(s.Out, "cd: %v\n", err)
		s.record(input, command, true, 1)
		return domain.Outcome{Kind: domain.OutcomeError, ExitCode: 1, Err: err}
	}

	s.State.WorkingDir = resolved
	s.record(input, command, true, 0)
	return domain.Outcome{Kind: domain.OutcomeExecuted}
}

// parseChdir recognizes a plain cd invocation. Anything with shell operators
// stays with the real shell, because cd inside a pipeline has no session
// effect anyway.
func parseChdir(command string) (target string, ok bool) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "cd" {
		return "", true
	}
	if !strings.HasPrefix(trimmed, "cd ") {
		return "", false
	}
	if strings.ContainsAny(trimmed, "|&;><") {
		return "", false
	}
	arg := strings.TrimSpace(trimmed[len("cd "):])
	arg = strings.Trim(arg, `"'`)
	if arg == "~" {
		return "", true
	}
	if strings.HasPrefix(arg, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			arg = filepath.Join(home, arg[2:])
		}
	}
	return os.ExpandEnv(arg), true
}

// translate sends the line to the active provider, echoes the proposal and
// hands it to the shared execution path. Provider failures leave no history
// entry because nothing was resolved.
func (s *Service) translate(ctx context.Context, input string) domain.Outcome {
	provider, err := s.activeProvider()
	if err != nil {
		return s.reportProviderError(err)
	}

	recent, err := s.History.Tail(domain.PromptHistoryContext)
	if err != nil {
		recent = nil
	}
	command, err := provider.Translate(ctx, domain.TranslationRequest{
		Prompt:     input,
		WorkingDir: s.State.WorkingDir,
		OSHint:     runtime.GOOS,
		Recent:     recent,
	})
	if err != nil {
		return s.reportProviderError(err)
	}
	if command == "" {
		fmt.Fprintln(s.Out, "Could not come up with a command for that.")
		return domain.Outcome{Kind: domain.OutcomeError, Text: "empty translation"}
	}

	fmt.Fprintf(s.Out, "-> %s\n", command)
	return s.runResolved(ctx, input, command)
}

// explain asks the provider to describe a literal command. Nothing executes
// and nothing is recorded.
func (s *Service) explain(ctx context.Context, command string) domain.Outcome {
	if command == "" {
		fmt.Fprintln(s.Out, "Usage: ?<command>   e.g. ?tar -xzf file.tar.gz")
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}
	provider, err := s.activeProvider()
	if err != nil {
		return s.reportProviderError(err)
	}
	text, err := provider.Explain(ctx, command)
	if err != nil {
		return s.reportProviderError(err)
	}
	fmt.Fprintf(s.Out, "\n%s\n\n", strings.TrimSpace(text))
	return domain.Outcome{Kind: domain.OutcomeExplained, Text: text}
}

func (s *Service) activeProvider() (ports.Provider, error) {
	cfg := s.State.Config
	return s.Providers.ForProvider(cfg.Provider, cfg.ActiveModel())
}

// reportProviderError prints a friendly line for the known failure shapes.
// A canceled request is deliberately silent: the user hit Ctrl+C.
func (s *Service) reportProviderError(err error) domain.Outcome {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(s.Out)
		return domain.Outcome{Kind: domain.OutcomeNoop}
	case errors.Is(err, domain.ErrMissingCredential):
		fmt.Fprintf(s.Out, "No API key for %s. Run !api to set one.\n", s.State.Config.Provider)
	default:
		fmt.Fprintf(s.Out, "natsh: %v\n", err)
	}
	s.Logger.Error("provider request failed", err, map[string]interface{}{
		"provider": string(s.State.Config.Provider),
	})
	return domain.Outcome{Kind: domain.OutcomeError, Err: err}
}

// record appends one history entry. Append errors are logged, never fatal,
// and never silently swallowed.
func (s *Service) record(input, command string, executed bool, exitCode int) {
	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Input:     input,
		Command:   command,
		Executed:  executed,
		ExitCode:  exitCode,
		Cwd:       s.State.WorkingDir,
	}
	if err := s.History.Append(entry); err != nil {
		fmt.Fprintf(s.Out, "natsh: history not saved: %v\n", err)
		s.Logger.Warn("history append failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// saveConfig persists the live config and surfaces write failures without
// rolling back the in-memory change.
func (s *Service) saveConfig() {
	if err := s.Config.Save(s.State.Config); err != nil {
		fmt.Fprintf(s.Out, "natsh: config not saved: %v\n", err)
		s.Logger.Error("config save failed", err, nil)
	}
}

func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
