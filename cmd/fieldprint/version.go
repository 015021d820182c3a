package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fieldprint"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fieldprint",
	// No config needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fieldprint version %s\n", strings.TrimSpace(fieldprint.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
