package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/fieldprint/internal/config"
	"github.com/aretw0/fieldprint/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// NewMCPServer wires both extractors, and the scripts when any are
// registered, into the MCP adapter.
func NewMCPServer(cfg *config.Config, logger *slog.Logger) (*mcp.Server, error) {
	extractors, err := newExtractors(cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	tools := make([]mcp.Extractor, 0, len(extractors))
	for _, ext := range extractors {
		tools = append(tools, ext)
	}

	opts := []mcp.Option{mcp.WithLogger(logger)}
	scripts, err := newProcessRunner(cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	if len(scripts.Names()) > 0 {
		opts = append(opts, mcp.WithScripts(scripts))
	}
	return mcp.NewServer(tools, opts...), nil
}

// ServeMCP runs the MCP server on the chosen transport.
func ServeMCP(ctx context.Context, cfg *config.Config, transport string, port int, logger *slog.Logger) error {
	srv, err := NewMCPServer(cfg, logger)
	if err != nil {
		return err
	}

	switch transport {
	case TransportStdio:
		logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		logger.Info("starting MCP server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q, supported: %s, %s", transport, TransportStdio, TransportSSE)
	}
}
