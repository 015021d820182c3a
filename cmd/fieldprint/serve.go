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

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve both scripts over HTTP",
	Long: `Starts an HTTP server that runs the scripts the way a CGI host does:
the query string is the argument record and the request body (or, for GET,
the query string again) is standard input.

  GET|POST /run/{variant}    full script output
  GET      /apply/{variant}  one record as JSON (?record=...)
  POST     /scripts/{name}   run a registered external script
  GET      /health, /info, /metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}

		tui.PrintBanner(os.Stdout, strings.TrimSpace(fieldprint.Version), "HTTP server on "+cfg.HTTP.Addr())

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		if err := cli.Serve(sm.Context(), cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			sm.Stop()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8081, "Port to listen on")
}
