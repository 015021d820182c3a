package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/fieldprint"
	"github.com/aretw0/fieldprint/internal/cli"
	"github.com/aretw0/fieldprint/internal/presentation/tui"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the scripts as MCP tools: convert, greet and, when scripts are
registered, run_script.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Stdout carries JSON-RPC on stdio.
		if transport == cli.TransportSSE {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(fieldprint.Version), fmt.Sprintf("MCP server (SSE) on :%d", port))
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		if err := cli.ServeMCP(sm.Context(), cfg, transport, port, logger); err != nil {
			logger.Error("MCP Server execution failed", "err", err)
			sm.Stop()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
