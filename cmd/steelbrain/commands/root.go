package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "steelbrain",
	Short: "Steel import decision pipeline",
	Long: `Steelbrain CLI

Business intelligence for a steel importer: detects demand
opportunities in public tenders, gates purchases on market risk,
selects suppliers and routes deliveries.

Usage:
  go run ./cmd/steelbrain [command]

Examples:
  go run ./cmd/steelbrain run
  go run ./cmd/steelbrain run --scenario "Crisis: port strike"
  go run ./cmd/steelbrain api
  go run ./cmd/steelbrain scheduler`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
