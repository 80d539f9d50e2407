package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/handlebauer/workflowy-scraper/internal/export"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// QueryTreeInput is the input for the query_tree tool.
type QueryTreeInput struct {
	Pattern string `json:"pattern"        jsonschema:"text or regular expression matched against bullet names"`
	Mode    string `json:"mode,omitempty" jsonschema:"contains (default), exact, starts-with or regex"`
	All     bool   `json:"all,omitempty"  jsonschema:"search the main tree as well as shared trees"`
}

// QueryTreeOutput is the output for the query_tree tool.
type QueryTreeOutput struct {
	Count    int           `json:"count"    jsonschema:"number of matched bullets"`
	Matches  []NodeSummary `json:"matches"  jsonschema:"matched bullets in document order"`
	Markdown string        `json:"markdown" jsonschema:"matched subtrees rendered as Markdown"`
}

func handleQueryTree(src *source) mcp.ToolHandlerFor[QueryTreeInput, QueryTreeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryTreeInput) (*mcp.CallToolResult, QueryTreeOutput, error) {
		if input.Pattern == "" {
			return nil, QueryTreeOutput{}, errors.New("pattern is required")
		}

		mode, err := workflowy.ParseMatchMode(input.Mode)
		if err != nil {
			return nil, QueryTreeOutput{}, err
		}
		matcher, err := workflowy.NewMatcher(mode, input.Pattern)
		if err != nil {
			return nil, QueryTreeOutput{}, err
		}

		data, err := src.get(ctx)
		if err != nil {
			return nil, QueryTreeOutput{}, fmt.Errorf("loading WorkFlowy data: %w", err)
		}

		roots := export.CollectAuxRoots(data)
		if input.All {
			roots = export.CollectAllRoots(data)
		}

		matches := workflowy.Query(roots, matcher)
		out := QueryTreeOutput{
			Count:   len(matches),
			Matches: toNodeSummaries(matches),
		}
		if len(matches) > 0 {
			out.Markdown = export.BuildMarkdown(matches)
		}
		return nil, out, nil
	}
}
