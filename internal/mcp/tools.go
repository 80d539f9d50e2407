package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/handlebauer/workflowy-scraper/internal/export"
	"github.com/handlebauer/workflowy-scraper/internal/markup"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// --- Shared types ---

// TreeSummary names one shared tree.
type TreeSummary struct {
	Name  string `json:"name"  jsonschema:"tree name with markup removed"`
	Nodes int    `json:"nodes" jsonschema:"number of bullets including the root"`
}

// NodeSummary is a flat view of a matched bullet.
type NodeSummary struct {
	ID        string `json:"id"        jsonschema:"WorkFlowy bullet ID"`
	Name      string `json:"name"      jsonschema:"bullet name with markup removed"`
	Children  int    `json:"children"  jsonschema:"number of direct children"`
	Nodes     int    `json:"nodes"     jsonschema:"number of bullets in the subtree including this one"`
	Completed bool   `json:"completed" jsonschema:"whether the bullet is checked off"`
}

// --- list_trees tool ---

// ListTreesInput is the input for the list_trees tool (no parameters needed).
type ListTreesInput struct{}

// ListTreesOutput is the output for the list_trees tool.
type ListTreesOutput struct {
	Count int           `json:"count" jsonschema:"number of shared trees"`
	Trees []TreeSummary `json:"trees" jsonschema:"shared trees in account order"`
}

func handleListTrees(src *source) mcp.ToolHandlerFor[ListTreesInput, ListTreesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListTreesInput) (*mcp.CallToolResult, ListTreesOutput, error) {
		data, err := src.get(ctx)
		if err != nil {
			return nil, ListTreesOutput{}, fmt.Errorf("loading WorkFlowy data: %w", err)
		}

		trees := toTreeSummaries(data)
		return nil, ListTreesOutput{Count: len(trees), Trees: trees}, nil
	}
}

// --- show_tree tool ---

// ShowTreeInput is the input for the show_tree tool.
type ShowTreeInput struct {
	Name string `json:"name" jsonschema:"shared tree name, compared after removing markup"`
}

// ShowTreeOutput is the output for the show_tree tool.
type ShowTreeOutput struct {
	Name     string `json:"name"     jsonschema:"tree name"`
	Nodes    int    `json:"nodes"    jsonschema:"number of bullets in the tree"`
	Markdown string `json:"markdown" jsonschema:"the tree rendered as a Markdown document"`
}

func handleShowTree(src *source) mcp.ToolHandlerFor[ShowTreeInput, ShowTreeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ShowTreeInput) (*mcp.CallToolResult, ShowTreeOutput, error) {
		if input.Name == "" {
			return nil, ShowTreeOutput{}, errors.New("name is required")
		}

		data, err := src.get(ctx)
		if err != nil {
			return nil, ShowTreeOutput{}, fmt.Errorf("loading WorkFlowy data: %w", err)
		}

		info, ok := workflowy.FindAuxTree(data, input.Name)
		if !ok {
			return nil, ShowTreeOutput{}, fmt.Errorf("no shared tree named %q", input.Name)
		}

		root := info.Root()
		return nil, ShowTreeOutput{
			Name:     markup.Strip(root.Name),
			Nodes:    workflowy.CountNodes([]*workflowy.Node{root}),
			Markdown: export.BuildSectionMarkdown(root),
		}, nil
	}
}
