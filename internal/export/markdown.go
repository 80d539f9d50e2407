package export

import (
	"strings"

	"github.com/handlebauer/workflowy-scraper/internal/markup"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

const indentUnit = "  "

// NodeToMarkdown renders node and its subtree as nested bullets starting at
// depth. Completed nodes get a "- [x]" bullet. A note is rendered as a block
// quote one level deeper than its node. The result has no trailing newline.
func NodeToMarkdown(node *workflowy.Node, depth int) string {
	var builder strings.Builder
	writeNode(&builder, node, depth)
	return builder.String()
}

func writeNode(builder *strings.Builder, node *workflowy.Node, depth int) {
	builder.WriteString(strings.Repeat(indentUnit, depth))
	if node.IsCompleted() {
		builder.WriteString("- [x] ")
	} else {
		builder.WriteString("- ")
	}
	builder.WriteString(markup.Strip(node.Name))

	if node.Note != "" {
		quote := strings.Repeat(indentUnit, depth+1) + "> "
		builder.WriteString("\n")
		builder.WriteString(quote)
		builder.WriteString(strings.ReplaceAll(markup.Strip(node.Note), "\n", "\n"+quote))
	}

	for _, child := range node.Children {
		builder.WriteString("\n")
		writeNode(builder, child, depth+1)
	}
}

// BuildMarkdown renders every root at depth 0, one after another, ending with
// a single newline.
func BuildMarkdown(roots []*workflowy.Node) string {
	parts := make([]string, 0, len(roots))
	for _, root := range roots {
		parts = append(parts, NodeToMarkdown(root, 0))
	}
	return strings.Join(parts, "\n") + "\n"
}

// BuildSectionMarkdown renders node as a standalone document: its name as the
// title, its note as a block quote, and its children as top-level bullets.
func BuildSectionMarkdown(node *workflowy.Node) string {
	parts := []string{"# " + markup.Strip(node.Name), ""}

	if node.Note != "" {
		note := strings.ReplaceAll(markup.Strip(node.Note), "\n", "\n> ")
		parts = append(parts, "> "+note, "")
	}

	for _, child := range node.Children {
		parts = append(parts, NodeToMarkdown(child, 0))
	}

	parts = append(parts, "")
	return strings.Join(parts, "\n")
}
