package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type commandsParams struct{}

func (h *handler) commandsHandler(ctx context.Context, req *mcp.CallToolRequest, params commandsParams) (*mcp.CallToolResult, any, error) {
	cmds := h.svc.Config.Commands
	if len(cmds) == 0 {
		return textResult("No commands configured.\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Commands (%d):\n", len(cmds))
	for _, c := range cmds {
		fmt.Fprintf(&b, "  %-20s %s\n", c.Name, c.ResolveScript(h.svc.Root))
	}
	return textResult(b.String())
}

type historyParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries to return. Defaults to all retained entries."`
}

func (h *handler) historyHandler(ctx context.Context, req *mcp.CallToolRequest, params historyParams) (*mcp.CallToolResult, any, error) {
	if h.svc.History == nil {
		return textResult("History is not enabled.\n")
	}

	entries := h.svc.History.Recent(params.Limit)
	if len(entries) == 0 {
		return textResult("No invocations yet.\n")
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %-20s %-9s %s\n",
			e.Time.Format("2006-01-02 15:04:05"), e.Command, e.Outcome, e.Script)
	}
	return textResult(b.String())
}
