// Package mcp exposes the bridge over the Model Context Protocol, so
// that MCP-speaking host applications can trigger command invocations.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tkoster/scriptbridge"
	"github.com/tkoster/scriptbridge/internal/bridge"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	svc  *bridge.Service
	ictx bridge.InvocationContext // host identity used for every tool call
}

// NewServer creates an MCP server with all bridge tools registered.
// ictx supplies the username and host version recorded for invocations
// made through this server.
func NewServer(svc *bridge.Service, ictx bridge.InvocationContext) *mcp.Server {
	h := &handler{svc: svc, ictx: ictx}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "scriptbridge", Version: scriptbridge.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "bridge_commands",
		Description: "List the configured script commands with their script paths.",
	}, h.commandsHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "bridge_invoke",
		Description: `Invoke a configured script command and return its outcome.

The outcome is one of succeeded, cancelled, or failed, plus any message the
script produced. Every completed invocation is appended to the shared usage log.`,
	}, h.invokeHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "bridge_history",
		Description: "List recent invocations made through this server, newest first.",
	}, h.historyHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
