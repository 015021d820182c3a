package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fieldprint/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a config file for errors",
	Long:  `Decodes the config file strictly (unknown keys are errors) and validates its values.`,
	Args:  cobra.MaximumNArgs(1),
	// The file under test must not be loaded implicitly first.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path = config.DefaultPath
		}

		if _, err := config.Load(path); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s is valid\n", path)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
