package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handlebauer/workflowy-scraper/internal/config"
	"github.com/handlebauer/workflowy-scraper/internal/output"
)

// newLoginCmdInternal creates the login command.
func newLoginCmdInternal(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "login <session-id>",
		Short: "Save a WorkFlowy session id to the config file",
		Long: `Save a WorkFlowy session id for later commands.

Copy the value of the "sessionid" cookie from a logged-in browser session on
workflowy.com. The id is merged into the config file; other settings there
are kept. $WORKFLOWY_SESSION_ID still takes precedence when set.

Examples:
  wf login 7x2k...   # stores it in ~/.config/wf/config.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, d, args[0])
		},
	}
}

// runLogin executes the login command.
func runLogin(cmd *cobra.Command, d *deps, sessionID string) error {
	printer := newPrinter(cmd)

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fail(printer, output.NewUserError("session id must not be empty"))
	}

	store := d.configStore()
	if err := store.Merge(config.Config{SessionID: sessionID}); err != nil {
		return fail(printer, output.NewSystemErrorWithCause(
			fmt.Sprintf("failed to save config %s: %v", store.Path(), err), err))
	}

	return printer.Success(map[string]any{
		"message": "Saved session id to " + store.Path(),
		"path":    store.Path(),
	})
}
