package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/infrastructure/config"
	"github.com/pieronoviello/natsh/internal/infrastructure/history"
)

// newVersionCommand prints the running version.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the natsh version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "natsh %s\n", domain.Version)
			return nil
		},
	}
}

// newConfigCommand dumps the effective configuration without starting a
// session. API key material never appears here; keys live in a separate file.
func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore("")
			cfg, err := store.Load()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "natsh: %v (showing defaults)\n", err)
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", store.Path())
			return nil
		},
	}
}

// newHistoryCommand lists recent commands without starting a session.
func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history [n]",
		Short: "Show recent commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := domain.DefaultHistoryDisplay
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid count %q", args[0])
				}
				limit = n
			}

			store := history.NewSQLiteStore(filepath.Join(config.StateDir(), "history.db"), 0)
			entries, err := store.Tail(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "History is empty.")
				return nil
			}
			for _, entry := range entries {
				marker := "+"
				if !entry.Executed {
					marker = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %-14s %s\n", marker, humanize.Time(entry.Timestamp), entry.Command)
			}
			return nil
		},
	}
}
