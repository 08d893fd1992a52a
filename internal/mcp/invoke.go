package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type invokeParams struct {
	Command string `json:"command,omitempty" jsonschema:"Name of the configured command to invoke, as listed by bridge_commands."`
}

func (h *handler) invokeHandler(ctx context.Context, req *mcp.CallToolRequest, params invokeParams) (*mcp.CallToolResult, any, error) {
	if params.Command == "" {
		return errorResult("command is required")
	}

	out, msg, err := h.svc.InvokeCommand(ctx, h.ictx, params.Command)
	if err != nil {
		return errorResult(fmt.Sprintf("invoke failed: %v", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Outcome: %s\n", out)
	if msg != "" {
		fmt.Fprintf(&b, "Message:\n%s\n", msg)
	}
	return textResult(b.String())
}
