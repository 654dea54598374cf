// Package cli implements the partrack command-line interface using
// Cobra. Each subcommand maps to one tracker workflow (log, report,
// streaks, prospects, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var userID string

var rootCmd = &cobra.Command{
	Use:   "partrack",
	Short: "partrack — Track daily sales activity against par",
	Long: `partrack scores daily sales activity, tracks streaks, and measures
your week against a daily point target (par).

Log activity from the terminal, or run 'partrack serve' for the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	def := os.Getenv("PARTRACK_USER")
	if def == "" {
		def = "me"
	}
	rootCmd.PersistentFlags().StringVar(&userID, "user", def, "User to act as (or set PARTRACK_USER)")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
