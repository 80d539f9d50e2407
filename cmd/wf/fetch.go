package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handlebauer/workflowy-scraper/internal/export"
)

// newFetchCmdInternal creates the fetch command.
func newFetchCmdInternal(d *deps) *cobra.Command {
	var outFlag string
	var sessionFlag string

	cmd := &cobra.Command{
		Use:   "fetch --out <path>",
		Short: "Download the raw WorkFlowy payload to a file",
		Long: `Download the full initialization payload and save the response body
byte for byte.

The saved file can be used later with --file on export, trees and show,
without contacting WorkFlowy again.

Examples:
  wf fetch --out ./data/workflowy-raw.json
  WORKFLOWY_SESSION_ID=abc wf fetch -o raw.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, d, outFlag, sessionFlag)
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file path")
	cmd.Flags().StringVar(&sessionFlag, "session", "", "WorkFlowy session id (default: $WORKFLOWY_SESSION_ID, then config)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// runFetch executes the fetch command.
func runFetch(cmd *cobra.Command, d *deps, outFlag, sessionFlag string) error {
	printer := newPrinter(cmd)

	src := newSource(cmd, printer, d, sourceFlags{session: sessionFlag})
	data, body, err := src.fetchPayload(cmd.Context())
	if err != nil {
		return fail(printer, err)
	}

	written, err := export.WriteToFile(body, outFlag)
	if err != nil {
		return fail(printer, err)
	}

	nodes := export.TotalNodeCount(export.CollectAuxRoots(data))
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Saved %d nodes to %s", nodes, outFlag),
		"path":    outFlag,
		"bytes":   written,
		"nodes":   nodes,
	})
}
