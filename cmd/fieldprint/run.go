package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fieldprint/internal/cli"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [record]",
	Short: "Add the Kelvin offset to integer records",
	Long: `Reads temp=<int> records from standard input until EOF or the input timeout,
then the first argument, and prints <int>+273 for each valid one.`,
	Example: `  printf 'temp=0\ntemp=25\n' | fieldprint convert temp=100`,
	Args:    cobra.ArbitraryArgs,
	Run:     runVariant(domain.VariantConversor),
}

var greetCmd = &cobra.Command{
	Use:     "greet [record]",
	Short:   "Greet the name in each record",
	Example: `  echo name=Ana | fieldprint greet name=Luis`,
	Args:    cobra.ArbitraryArgs,
	Run:     runVariant(domain.VariantNombre),
}

func runVariant(variant domain.Variant) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("offset") {
			cfg.Offset, _ = cmd.Flags().GetInt64("offset")
		}
		if cmd.Flags().Changed("greeting") {
			cfg.Greeting, _ = cmd.Flags().GetString("greeting")
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		code, err := cli.RunScript(sm.Context(), cli.RunOptions{
			Config:  cfg,
			Variant: variant,
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Args:    args,
			Logger:  logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if code != cli.ExitOK {
			sm.Stop()
			os.Exit(code)
		}
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(greetCmd)

	convertCmd.Flags().Int64("offset", domain.DefaultOffset, "Integer added to each value")
	greetCmd.Flags().String("greeting", domain.DefaultGreeting, "Greeting format, %s is the value")

	// Without a subcommand, run the variant named in the config file.
	rootCmd.Run = runVariant("")
}
