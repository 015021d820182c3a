package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fieldprint/internal/cli"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <script> <record>",
	Short: "Run a registered external script on a record",
	Long: `Runs a script from the scripts allow-list of the config file. The record
is written to the script's standard input and passed as its last argument.
The script's exit code becomes fieldprint's.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		code, err := cli.ExecScript(sm.Context(), cfg, args[0], args[1], os.Stdout, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if code != cli.ExitOK {
			sm.Stop()
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
