package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// newTreesCmdInternal creates the trees command.
func newTreesCmdInternal(d *deps) *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "trees",
		Short: "List shared trees with their node counts",
		Long: `List the shared (team and shared-link) trees in the account.

Examples:
  wf trees
  wf trees --file raw.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrees(cmd, d, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runTrees executes the trees command.
func runTrees(cmd *cobra.Command, d *deps, flags sourceFlags) error {
	printer := newPrinter(cmd)

	data, err := newSource(cmd, printer, d, flags).load(cmd.Context())
	if err != nil {
		return fail(printer, err)
	}

	trees := workflowy.SummarizeAuxTrees(data)
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count": len(trees),
			"trees": trees,
		})
	}

	if len(trees) == 0 {
		printer.Println("No shared trees found")
		return nil
	}

	rows := make([][]string, 0, len(trees))
	for _, tree := range trees {
		rows = append(rows, []string{tree.Name, strconv.Itoa(tree.Nodes)})
	}
	printer.Table([]string{"NAME", "NODES"}, rows)
	return nil
}
