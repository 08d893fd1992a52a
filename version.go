// Package scriptbridge holds build metadata shared by the CLI and the
// MCP server.
package scriptbridge

// Version is the scriptbridge release version.
const Version = "0.2.0"
