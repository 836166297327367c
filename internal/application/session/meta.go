package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pieronoviello/natsh/internal/domain"
)

// runMeta dispatches a bang command. rest arrives with the leading "!"
// stripped and is guaranteed non-empty with a known first token.
func (s *Service) runMeta(ctx context.Context, rest string) domain.Outcome {
	fields := strings.Fields(rest)
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "help":
		s.printHelp()
		return domain.Outcome{Kind: domain.OutcomeNoop}
	case "api":
		return s.metaAPI(args)
	case "provider":
		return s.metaProvider(args)
	case "model":
		return s.metaModel(args)
	case "history":
		return s.metaHistory(args)
	case "config":
		return s.metaConfig()
	case "aliases":
		return s.metaAliases()
	case "update":
		return s.metaUpdate(ctx)
	case "uninstall":
		return s.metaUninstall()
	}
	return s.usageError(fmt.Sprintf("unknown command: !%s", fields[0]))
}

// defineAlias handles "!alias name=command".
func (s *Service) defineAlias(rest string) domain.Outcome {
	name, command, found := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	command = strings.TrimSpace(command)
	if !found || name == "" || command == "" {
		return s.usageError("Usage: !alias name=command")
	}
	if !domain.ValidAliasName(name) {
		return s.usageError(fmt.Sprintf("%q is reserved and cannot be an alias", name))
	}

	s.State.Config.Aliases[name] = command
	s.saveConfig()
	fmt.Fprintf(s.Out, "Alias set: %s -> %s\n", name, command)
	return domain.Outcome{Kind: domain.OutcomeConfigChanged}
}

func (s *Service) metaAPI(args []string) domain.Outcome {
	provider := s.State.Config.Provider
	if len(args) > 0 {
		provider = domain.ProviderName(strings.ToLower(args[0]))
		if !provider.Valid() {
			return s.usageError(fmt.Sprintf("unknown provider %q; choose one of %s", args[0], providerList()))
		}
	}

	fmt.Fprintf(s.Out, "Get a key at %s\n", provider.ConsoleURL())
	key, err := s.Prompter.ReadSecret(fmt.Sprintf("API key for %s: ", provider))
	if err != nil {
		return s.failure(fmt.Sprintf("could not read key: %v", err))
	}
	key = strings.TrimSpace(key)
	if key == "" {
		fmt.Fprintln(s.Out, "No key entered, nothing changed.")
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}
	if err := s.Secrets.Set(provider, key); err != nil {
		return s.failure(fmt.Sprintf("could not store key: %v", err))
	}
	fmt.Fprintf(s.Out, "API key for %s saved.\n", provider)
	return domain.Outcome{Kind: domain.OutcomeConfigChanged}
}

func (s *Service) metaProvider(args []string) domain.Outcome {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "Provider: %s (model %s)\n", s.State.Config.Provider, s.State.Config.ActiveModel())
		fmt.Fprintf(s.Out, "Available: %s\n", providerList())
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}

	provider := domain.ProviderName(strings.ToLower(args[0]))
	if !provider.Valid() {
		return s.usageError(fmt.Sprintf("unknown provider %q; choose one of %s", args[0], providerList()))
	}

	s.State.Config.Provider = provider
	s.saveConfig()
	fmt.Fprintf(s.Out, "Switched to %s (model %s)\n", provider, s.State.Config.ActiveModel())
	if _, ok := s.Secrets.Get(provider); !ok {
		fmt.Fprintf(s.Out, "No API key for %s yet. Run !api %s to set one.\n", provider, provider)
	}
	return domain.Outcome{Kind: domain.OutcomeConfigChanged}
}

func (s *Service) metaModel(args []string) domain.Outcome {
	provider := s.State.Config.Provider
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "Model for %s: %s (default %s)\n",
			provider, s.State.Config.ActiveModel(), domain.DefaultModels()[provider])
		fmt.Fprintln(s.Out, "Usage: !model <name> or !model default")
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}

	model := args[0]
	if strings.EqualFold(model, "default") {
		model = domain.DefaultModels()[provider]
	}
	s.State.Config.Model[provider] = model
	s.saveConfig()
	fmt.Fprintf(s.Out, "Model for %s set to %s\n", provider, model)
	return domain.Outcome{Kind: domain.OutcomeConfigChanged}
}

func (s *Service) metaHistory(args []string) domain.Outcome {
	limit := domain.DefaultHistoryDisplay
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.History.Tail(limit)
	if err != nil {
		return s.failure(fmt.Sprintf("could not read history: %v", err))
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.Out, "History is empty.")
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}
	for _, entry := range entries {
		marker := "+"
		if !entry.Executed {
			marker = "-"
		}
		fmt.Fprintf(s.Out, "[%s] %-14s %s\n", marker, humanize.Time(entry.Timestamp), entry.Command)
	}
	return domain.Outcome{Kind: domain.OutcomeNoop}
}

// metaConfig prints the live configuration plus which keys exist, without
// ever printing key material.
func (s *Service) metaConfig() domain.Outcome {
	data, err := json.MarshalIndent(s.State.Config, "", "  ")
	if err != nil {
		return s.failure(fmt.Sprintf("could not render config: %v", err))
	}
	fmt.Fprintf(s.Out, "%s\n", data)
	fmt.Fprintf(s.Out, "Config file: %s\n", s.Config.Path())
	fmt.Fprintln(s.Out, "API keys:")
	for _, provider := range domain.KnownProviders() {
		status := "not set"
		if _, ok := s.Secrets.Get(provider); ok {
			status = "set"
		}
		fmt.Fprintf(s.Out, "  %-8s %s\n", provider, status)
	}
	return domain.Outcome{Kind: domain.OutcomeNoop}
}

func (s *Service) metaAliases() domain.Outcome {
	aliases := s.State.Config.Aliases
	if len(aliases) == 0 {
		fmt.Fprintln(s.Out, "No aliases defined. Add one with !alias name=command")
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.Out, "%-12s %s\n", name, aliases[name])
	}
	return domain.Outcome{Kind: domain.OutcomeNoop}
}

// metaUpdate checks the latest published release tag against the running
// version. It never installs anything.
func (s *Service) metaUpdate(ctx context.Context) domain.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ReleaseEndpoint, nil)
	if err != nil {
		return s.failure(fmt.Sprintf("update check failed: %v", err))
	}
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return s.failure(fmt.Sprintf("update check failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return s.failure(fmt.Sprintf("update check failed: HTTP %d", resp.StatusCode))
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return s.failure(fmt.Sprintf("update check failed: %v", err))
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" || latest == domain.Version {
		fmt.Fprintf(s.Out, "natsh %s is up to date.\n", domain.Version)
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}
	fmt.Fprintf(s.Out, "Update available: %s (running %s). Re-run the install script to upgrade.\n",
		latest, domain.Version)
	return domain.Outcome{Kind: domain.OutcomeNoop}
}

// metaUninstall removes the whole state directory after confirmation and
// ends the session.
func (s *Service) metaUninstall() domain.Outcome {
	fmt.Fprintf(s.Out, "This removes %s including config, keys and history.\n", s.StateDir)
	ok, err := s.Prompter.Confirm("Uninstall natsh? [y/N] ")
	if err != nil || !ok {
		fmt.Fprintln(s.Out, "Cancelled.")
		return domain.Outcome{Kind: domain.OutcomeNoop}
	}
	if err := os.RemoveAll(s.StateDir); err != nil {
		return s.failure(fmt.Sprintf("could not remove %s: %v", s.StateDir, err))
	}
	fmt.Fprintln(s.Out, "Removed. Delete the natsh binary to finish.")
	return domain.Outcome{Kind: domain.OutcomeExited}
}

func (s *Service) printHelp() {
	fmt.Fprintf(s.Out, `natsh %s - describe what you want, get a shell command

  <anything>          translate natural language into a command
  !<command>          run a command directly, no translation
  ?<command>          explain what a command does
  exit | quit         leave

  !help               this text
  !api [provider]     store an API key
  !provider [name]    show or switch provider (%s)
  !model [name]       show or set the model; "default" resets it
  !history [n]        show recent commands
  !config             show the active configuration
  !alias name=cmd     define a shortcut
  !aliases            list shortcuts
  !update             check for a newer release
  !uninstall          remove all natsh state
`, domain.Version, providerList())
}

// usageError prints the message and reports a malformed or unknown command.
func (s *Service) usageError(msg string) domain.Outcome {
	fmt.Fprintln(s.Out, msg)
	return domain.Outcome{Kind: domain.OutcomeError, Text: msg, Err: domain.ErrUnknownCommand}
}

// failure prints the message and reports an operational error.
func (s *Service) failure(msg string) domain.Outcome {
	fmt.Fprintln(s.Out, msg)
	return domain.Outcome{Kind: domain.OutcomeError, Text: msg}
}

func providerList() string {
	names := make([]string, 0, 3)
	for _, p := range domain.KnownProviders() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
