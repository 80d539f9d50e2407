// Package main provides the entry point for the wf CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handlebauer/workflowy-scraper/internal/config"
	"github.com/handlebauer/workflowy-scraper/internal/envfile"
	"github.com/handlebauer/workflowy-scraper/internal/logging"
	"github.com/handlebauer/workflowy-scraper/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// isVerbose reads the --verbose persistent flag.
func isVerbose(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "verbose") == "true"
}

// persistentFlag looks a flag up on cmd, then on the root.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds the printer for cmd, honoring --json and --color.
// Errors and progress go to the command's stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	colored := output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), colored).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(reportError),
	)
	return output.GetExitCode(err)
}

// reportError prints errors that no command has reported yet, such as
// unknown flags. Commands print their own ExitErrors through the printer.
func reportError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// newRootCmd creates the root command for the wf CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdInternal(nil)
}

// newRootCmdInternal creates the root command with optional dependency
// injection. A nil deps uses the real config store and HTTP client.
func newRootCmdInternal(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wf",
		Short: "Fetch, filter and export WorkFlowy trees",
		Long: `wf - Fetch, filter and export WorkFlowy trees.

wf downloads your WorkFlowy outline with a browser session id, optionally
keeps only the bullets whose name matches a pattern, and writes the result
as JSON, YAML or Markdown.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				return fail(newPrinter(cmd), output.NewUserError("no command specified. Run 'wf --help' for usage"))
			}
			return cmd.Help()
		},
	}

	// Load .env.local, .env and the global env file for the session id.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logger, err := logging.New(cmd.ErrOrStderr(), logging.ResolveLevel(isVerbose(cmd)))
		if err != nil {
			return fail(newPrinter(cmd), output.NewUserErrorWithCause(err.Error(), err))
		}
		setLogger(cmd, logger)

		applied, errs := loadEnvFiles()
		if len(applied) > 0 {
			logger.Debug("loaded env files", zap.Strings("keys", applied))
		}
		for _, err := range errs {
			logger.Warn("skipping env file", zap.Error(err))
		}
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, _ []string) {
		_ = loggerFrom(cmd).Sync()
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs to stderr")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, d)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-directory override, gitignored)
//  2. $CWD/.env         (per-directory)
//  3. ~/.config/wf/env  (global fallback)
func loadEnvFiles() ([]string, []error) {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	return envfile.LoadAll(paths...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "account", Title: "Account Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, d *deps) {
	// Core commands: export, trees, show
	addGroupedCommand(cmd, newExportCmdInternal(d), "core")
	addGroupedCommand(cmd, newTreesCmdInternal(d), "core")
	addGroupedCommand(cmd, newShowCmdInternal(d), "core")

	// Account commands: fetch, login
	addGroupedCommand(cmd, newFetchCmdInternal(d), "account")
	addGroupedCommand(cmd, newLoginCmdInternal(d), "account")

	// Agent commands: serve
	addGroupedCommand(cmd, newServeCmdInternal(d), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
