// Package mcp provides a Model Context Protocol server for wf.
// It exposes read-only WorkFlowy tree queries as MCP tools.
package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// Loader returns the initialization data the tools operate on.
type Loader func(ctx context.Context) (*workflowy.InitData, error)

// NewServer creates an MCP server with all wf tools registered.
// load is called on the first tool call; a successful result is reused for
// the lifetime of the server.
func NewServer(version string, load Loader) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wf",
		Version: version,
	}, nil)
	registerTools(server, newSource(load))
	return server
}

// source caches the first successful load. Failed loads are retried on the
// next call.
type source struct {
	load Loader

	mu   sync.Mutex
	data *workflowy.InitData
}

func newSource(load Loader) *source {
	return &source{load: load}
}

func (s *source) get(ctx context.Context) (*workflowy.InitData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data != nil {
		return s.data, nil
	}
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.data = data
	return data, nil
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all wf tools to the server.
func registerTools(server *mcp.Server, src *source) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_trees",
		Description: "List the shared (auxiliary) WorkFlowy trees by name with their node counts.",
		Annotations: readOnlyAnnotations(),
	}, handleListTrees(src))

	mcp.AddTool(server, &mcp.Tool{
		Name: "query_tree",
		Description: "Find bullets whose name matches a pattern. Mode is contains (default), exact, starts-with or regex. " +
			"A matching bullet is returned with its whole subtree and its descendants are not searched separately. " +
			"Searches shared trees only unless all=true.",
		Annotations: readOnlyAnnotations(),
	}, handleQueryTree(src))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_tree",
		Description: "Render one shared tree, selected by name, as a Markdown document.",
		Annotations: readOnlyAnnotations(),
	}, handleShowTree(src))
}
