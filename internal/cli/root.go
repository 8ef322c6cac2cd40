// Package cli implements the Daily Check command-line interface using Cobra.
// Each subcommand maps to one tracker capability (log, progress, goals, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dailycheck",
	Short: "Daily Check — Track your sales activity",
	Long: `Daily Check is a local-first sales activity tracker.
Log contacts, videos, appointments, and contracts; watch goals, streaks,
and commissions without a server or an account.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
