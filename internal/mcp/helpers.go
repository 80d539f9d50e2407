package mcp

import (
	"github.com/handlebauer/workflowy-scraper/internal/markup"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// toNodeSummaries flattens matched nodes into non-recursive summaries.
func toNodeSummaries(nodes []*workflowy.Node) []NodeSummary {
	result := make([]NodeSummary, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, NodeSummary{
			ID:        node.ID,
			Name:      markup.Strip(node.Name),
			Children:  len(node.Children),
			Nodes:     workflowy.CountNodes([]*workflowy.Node{node}),
			Completed: node.IsCompleted(),
		})
	}
	return result
}

// toTreeSummaries converts auxiliary tree summaries to tool output.
func toTreeSummaries(data *workflowy.InitData) []TreeSummary {
	trees := workflowy.SummarizeAuxTrees(data)
	result := make([]TreeSummary, 0, len(trees))
	for _, tree := range trees {
		result = append(result, TreeSummary{Name: tree.Name, Nodes: tree.Nodes})
	}
	return result
}
