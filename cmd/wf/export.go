package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handlebauer/workflowy-scraper/internal/export"
	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// Export formats.
const (
	formatJSON     = "json"
	formatMarkdown = "md"
	formatYAML     = "yaml"
)

// exportFlags holds the export command's flag values.
type exportFlags struct {
	source     sourceFlags
	outDir     string
	outFile    string
	splitDir   string
	format     string
	exact      bool
	startsWith bool
	regex      bool
	all        bool
}

// mode returns the match mode selected by --exact, --starts-with or --regex.
func (f *exportFlags) mode() workflowy.MatchMode {
	switch {
	case f.exact:
		return workflowy.ModeExact
	case f.startsWith:
		return workflowy.ModeStartsWith
	case f.regex:
		return workflowy.ModeRegex
	default:
		return workflowy.ModeContains
	}
}

func (f *exportFlags) modeFlagSet() bool {
	return f.exact || f.startsWith || f.regex
}

// newExportCmdInternal creates the export command. A nil deps uses the real
// config store and HTTP client.
func newExportCmdInternal(d *deps) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [pattern]",
		Short: "Export trees as JSON, YAML or Markdown",
		Long: `Export shared trees, optionally keeping only bullets whose name matches a pattern.

A matching bullet is exported with its whole subtree; bullets below a match are
not searched again. Names are compared after removing formatting markup.

Examples:
  wf export --out ./export                    # workflowy.json + workflowy.md
  wf export Bug --out ./bugs                  # bullets containing "Bug"
  wf export "^Q[1-4]" --regex --out-file q.md # one Markdown file
  wf export --all --format yaml               # main and shared trees to stdout
  wf export --split ./sections                # one Markdown file per tree
  wf export --file saved.json --exact Inbox   # filter a saved payload`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}
			return runExport(cmd, d, flags, pattern)
		},
	}

	flags.source.register(cmd)
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "Write workflowy.json and workflowy.md into this directory")
	cmd.Flags().StringVar(&flags.outFile, "out-file", "", "Write a single file in the format given by --format")
	cmd.Flags().StringVar(&flags.splitDir, "split", "", "Write one Markdown file per root into this directory")
	cmd.Flags().StringVar(&flags.format, "format", "",
		"Output format for --out-file and stdout: json, md or yaml (default: from --out-file extension, else md; json with --json)")
	cmd.Flags().BoolVar(&flags.exact, "exact", false, "Match node names exactly")
	cmd.Flags().BoolVar(&flags.startsWith, "starts-with", false, "Match node names starting with the pattern")
	cmd.Flags().BoolVar(&flags.regex, "regex", false, "Treat the pattern as a regular expression")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Include the main tree, not only shared trees")

	cmd.MarkFlagsMutuallyExclusive("out", "out-file", "split")
	cmd.MarkFlagsMutuallyExclusive("exact", "starts-with", "regex")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, d *deps, flags exportFlags, pattern string) error {
	printer := newPrinter(cmd)
	logger := loggerFrom(cmd)

	if flags.format != "" && (flags.outDir != "" || flags.splitDir != "") {
		return fail(printer, output.NewUserError("--format applies only to --out-file and stdout output").
			WithHint("--out always writes workflowy.json and workflowy.md; --split always writes Markdown."))
	}

	format, err := resolveFormat(flags.format, flags.outFile, printer.IsJSON())
	if err != nil {
		return fail(printer, err)
	}

	matcher, err := buildMatcher(flags, pattern)
	if err != nil {
		return fail(printer, err)
	}

	data, err := newSource(cmd, printer, d, flags.source).load(cmd.Context())
	if err != nil {
		return fail(printer, err)
	}

	roots := export.CollectAuxRoots(data)
	if flags.all {
		roots = export.CollectAllRoots(data)
	}

	if matcher != nil {
		logger.Debug("filtering",
			zap.Stringer("mode", matcher.Mode()),
			zap.String("pattern", matcher.Pattern()),
			zap.Int("roots", len(roots)),
		)
		roots = workflowy.Query(roots, matcher)
		printer.Stderr("Matched %d node(s) for %s %q\n", len(roots), matcher.Mode(), matcher.Pattern())
	}

	switch {
	case flags.splitDir != "":
		return writeSplit(printer, roots, flags.splitDir)
	case flags.outDir != "":
		return writeDirectory(printer, roots, flags.outDir)
	case flags.outFile != "":
		return writeSingleFile(printer, roots, format, flags.outFile)
	default:
		return writeStdout(printer, roots, format)
	}
}

// resolveFormat validates --format or infers it from the output file name.
func resolveFormat(formatFlag, outFile string, jsonMode bool) (string, error) {
	format := strings.ToLower(formatFlag)
	if format == "" {
		format = formatFromPath(outFile)
	}
	if format == "" {
		format = formatMarkdown
		if jsonMode {
			format = formatJSON
		}
	}

	switch format {
	case formatJSON, formatMarkdown, formatYAML:
		return format, nil
	case "markdown":
		return formatMarkdown, nil
	case "yml":
		return formatYAML, nil
	default:
		return "", output.NewUserError(fmt.Sprintf("--format must be 'json', 'md' or 'yaml', got %q", formatFlag))
	}
}

// formatFromPath maps a file extension to a format, or "" when unknown.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".md", ".markdown":
		return formatMarkdown
	case ".yaml", ".yml":
		return formatYAML
	default:
		return ""
	}
}

// buildMatcher compiles the pattern. Returns nil when no pattern was given.
func buildMatcher(flags exportFlags, pattern string) (*workflowy.Matcher, error) {
	if pattern == "" {
		if flags.modeFlagSet() {
			return nil, output.NewUserError(fmt.Sprintf("--%s requires a pattern", flags.mode()))
		}
		return nil, nil
	}

	matcher, err := workflowy.NewMatcher(flags.mode(), pattern)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return matcher, nil
}

// render serializes roots in format.
func render(roots []*workflowy.Node, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		return export.BuildJSON(roots)
	case formatYAML:
		return export.BuildYAML(roots)
	default:
		return []byte(export.BuildMarkdown(roots)), nil
	}
}

// writeStdout prints the rendered forest.
func writeStdout(printer *output.Printer, roots []*workflowy.Node, format string) error {
	if format == formatJSON {
		if err := export.FormatJSON(printer, roots); err != nil {
			return fail(printer, err)
		}
		return nil
	}

	content, err := render(roots, format)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause(fmt.Sprintf("failed to render %s: %v", format, err), err))
	}
	printer.Write(content)
	return nil
}

// writeSingleFile writes the rendered forest to path.
func writeSingleFile(printer *output.Printer, roots []*workflowy.Node, format, path string) error {
	content, err := render(roots, format)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause(fmt.Sprintf("failed to render %s: %v", format, err), err))
	}

	written, err := export.WriteToFile(content, path)
	if err != nil {
		return fail(printer, err)
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Exported %d nodes to %s", export.TotalNodeCount(roots), path),
		"path":    path,
		"format":  format,
		"bytes":   written,
		"nodes":   export.TotalNodeCount(roots),
	})
}

// writeDirectory writes workflowy.json and workflowy.md into dir.
func writeDirectory(printer *output.Printer, roots []*workflowy.Node, dir string) error {
	result, err := export.WriteOutput(roots, dir)
	if err != nil {
		return fail(printer, err)
	}

	return printer.Success(map[string]any{
		"message":        fmt.Sprintf("Exported %d nodes to %s", result.Nodes, dir),
		"json_path":      result.JSONPath,
		"markdown_path":  result.MarkdownPath,
		"json_bytes":     result.JSONBytes,
		"markdown_bytes": result.MarkdownBytes,
		"nodes":          result.Nodes,
	})
}

// writeSplit writes one Markdown file per root into dir.
func writeSplit(printer *output.Printer, roots []*workflowy.Node, dir string) error {
	paths, err := export.WriteSections(roots, dir)
	if err != nil {
		return fail(printer, err)
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Wrote %d section files to %s", len(paths), dir),
		"files":   paths,
		"nodes":   export.TotalNodeCount(roots),
	})
}
