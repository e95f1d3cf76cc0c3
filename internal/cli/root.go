// Package cli implements the command-line interface for the Love Monster CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/ometa/lovemonster-cli-go/internal/core"
	"github.com/spf13/cobra"
)

// Global flags
var (
	verbose bool
	quiet   bool
	raw     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "lovemonster",
	Short:   "Love Monster CLI – send and browse peer recognition",
	Long:    `A command-line utility for sending, browsing, and checking Love Monster recognition messages.`,
	Version: core.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress messages")
	rootCmd.PersistentFlags().BoolVar(&raw, "raw", false, "Emit raw JSON instead of text")
}
