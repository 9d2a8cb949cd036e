package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/roster/pkg/adapters/mcp"
)

// MCPOptions configures the mcp command.
type MCPOptions struct {
	Transport string // "stdio" or "sse"
	Addr      string
	BaseURL   string
}

// ServeMCP exposes the configured session to MCP clients.
func ServeMCP(ctx context.Context, env *Env, opts MCPOptions) error {
	srv := mcp.NewServer(env.Sessions(), env.Config.Session, mcp.WithLogger(env.Logger))

	switch opts.Transport {
	case "", "stdio":
		env.Logger.Info("Starting roster MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		if opts.BaseURL == "" {
			opts.BaseURL = "http://localhost" + opts.Addr
		}
		err := srv.ServeSSE(ctx, opts.Addr, opts.BaseURL)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		env.Logger.Info("MCP server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport)
}
