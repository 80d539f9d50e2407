package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	wfmcp "github.com/handlebauer/workflowy-scraper/internal/mcp"
)

// newServeCmdInternal creates the serve command for running as an MCP server.
func newServeCmdInternal(d *deps) *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run wf as a Model Context Protocol (MCP) server over stdio.

This exposes read-only WorkFlowy queries as MCP tools that any MCP-capable
agent environment can use. The outline is fetched on the first tool call
and reused afterwards.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "workflowy": {
        "command": "wf",
        "args": ["serve"]
      }
    }
  }

Available tools: list_trees, query_tree, show_tree`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol, so no spinner.
			src := &source{deps: d, flags: flags, logger: loggerFrom(cmd)}
			server := wfmcp.NewServer(buildVersion(), src.load)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	flags.register(cmd)
	return cmd
}
