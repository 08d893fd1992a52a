package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	brmcp "github.com/tkoster/scriptbridge/internal/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the bridge over the Model Context Protocol",
	Long: `Mcp starts an MCP server exposing the bridge_invoke, bridge_commands,
and bridge_history tools. By default it speaks MCP over stdio; with --http it
serves the streamable HTTP transport instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, ictx, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := brmcp.NewServer(svc, ictx)

		if mcpHTTPAddr != "" {
			return serveHTTP(ctx, server, mcpHTTPAddr)
		}
		return server.Run(ctx, &mcpsdk.StdioTransport{})
	},
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve MCP over HTTP on this address (e.g. :9090)")
	rootCmd.AddCommand(mcpCmd)
}
