// Package cli provides the command-line entry point and the interactive
// terminal adapters.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pieronoviello/natsh/internal/app"
	"github.com/pieronoviello/natsh/internal/domain"
)

// NewRootCommand builds the natsh command. Running it with no arguments
// starts the interactive session.
func NewRootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "natsh",
		Short: "Natural language shell",
		Long: `natsh is an interactive shell that turns plain-language requests into
shell commands using an AI provider, with a safety gate in front of
anything destructive.`,
		Version:       domain.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin := bufio.NewReader(os.Stdin)
			out := cmd.OutOrStdout()

			container, err := app.Build(app.Options{
				ConfigPath: configPath,
				Verbose:    verbose || os.Getenv("NATSH_DEBUG") != "",
				Out:        out,
				Prompter:   NewTerminalPrompter(stdin, out),
			})
			if err != nil {
				return err
			}
			defer container.Close()

			interactive := isatty.IsTerminal(os.Stdin.Fd())
			return NewREPL(container.Session, stdin, out, interactive).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.natsh/config.json)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "write debug entries to the log file")

	cmd.AddCommand(newVersionCommand(), newConfigCommand(), newHistoryCommand())
	return cmd
}

// Execute runs the root command with the given base context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
