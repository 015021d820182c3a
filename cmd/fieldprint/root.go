package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/fieldprint/internal/cli"
	"github.com/aretw0/fieldprint/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fieldprint",
	Short: "fieldprint extracts the value of key=value records and prints a derived line",
	Long: `fieldprint reads key=value records from standard input and from its first
argument, extracts the value and prints a derived line for each valid record:

  conversor  adds 273 to an integer value (Celsius to Kelvin)
  nombre     greets the value ("Hola <value>!")

Invalid records are skipped silently; use --log-level debug to see why.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to the config file (default ./"+config.DefaultPath+" if present)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("json", false, "Print one JSON object per record instead of banners")
	flags.Bool("strict", false, "Exit with status 1 when any record fails")
	flags.String("form", "", "Record form: plain (key=value) or query (var=X&...)")
	flags.String("field", "", "Query-string field read in query form")
	flags.String("mode", "", "What a failed stdin line does: continue or abandon")
	flags.Duration("timeout", 0, "Wait for each stdin line at most this long (0 waits forever)")
	flags.String("color", "", "Banner colors: auto, always or never")
}

// loadConfig reads the config file and lets explicitly set flags win over it.
func loadConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("json") {
		loaded.JSON, _ = flags.GetBool("json")
	}
	if flags.Changed("strict") {
		loaded.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("form") {
		loaded.Form, _ = flags.GetString("form")
	}
	if flags.Changed("field") {
		loaded.Field, _ = flags.GetString("field")
	}
	if flags.Changed("mode") {
		loaded.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("timeout") {
		var d time.Duration
		d, _ = flags.GetDuration("timeout")
		loaded.InputTimeout = d
	}
	if flags.Changed("color") {
		loaded.Color, _ = flags.GetString("color")
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := cli.NewLogger(loaded)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	cfg, logger = loaded, l
	return nil
}
