// Package cli implements the prodhub CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prodhub",
	Short: "Control panel for a suite of desktop productivity tools",
	Long: `Productivity Hub launches, stops, and configures a fixed set of
desktop productivity tools from one place. Running it with no arguments
opens the interactive dashboard.`,
	RunE: runDashboard,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(apikeyCmd)
	rootCmd.AddCommand(licenseCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(trayCmd)
	rootCmd.AddCommand(versionCmd)
}
