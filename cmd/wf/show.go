package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handlebauer/workflowy-scraper/internal/export"
	"github.com/handlebauer/workflowy-scraper/internal/markup"
	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/preview"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// newShowCmdInternal creates the show command.
func newShowCmdInternal(d *deps) *cobra.Command {
	var flags sourceFlags
	var rawFlag bool

	cmd := &cobra.Command{
		Use:   "show <tree-name>",
		Short: "Display one shared tree as Markdown",
		Long: `Display one shared tree, selected by name, as a Markdown document.

On a terminal the document is rendered with colors and wrapping. When piped,
or with --raw, the Markdown source is printed.

Examples:
  wf show "Team Roadmap"
  wf show Reading --file raw.json --raw > reading.md
  wf show Reading --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, d, flags, args[0], rawFlag)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print Markdown source even on a terminal")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, d *deps, flags sourceFlags, name string, rawFlag bool) error {
	printer := newPrinter(cmd)

	data, err := newSource(cmd, printer, d, flags).load(cmd.Context())
	if err != nil {
		return fail(printer, err)
	}

	info, ok := workflowy.FindAuxTree(data, name)
	if !ok {
		return fail(printer, output.NewUserError(fmt.Sprintf("no shared tree named %q", name)).
			WithHint("Run `wf trees` to list the available trees."))
	}

	root := info.Root()
	markdown := export.BuildSectionMarkdown(root)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"name":     markup.Strip(root.Name),
			"nodes":    workflowy.CountNodes([]*workflowy.Node{root}),
			"markdown": markdown,
		})
	}

	if err := preview.Write(cmd.OutOrStdout(), markdown, printer.IsTTY() && !rawFlag); err != nil {
		return fail(printer, output.NewSystemErrorWithCause(fmt.Sprintf("failed to render preview: %v", err), err))
	}
	return nil
}
