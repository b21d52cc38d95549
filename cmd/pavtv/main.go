// Package main is the entry point for the pavtv CLI.
//
// The bridge can be used as a library (SDK) or driven from this binary.
//
// Usage:
//
//	pavtv watch                      # Follow the local viewer
//	pavtv watch --tui                # Same, in a terminal UI
//	pavtv replays [player]           # Query the master replay catalog
//	pavtv launch                     # Start the viewer via Steam
//	pavtv validate -c config.yaml    # Validate a configuration file
//	pavtv version                    # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "pavtv",
	Short: "Telemetry bridge for the Pavlov TV replay viewer",
	Long: `pavtv bridges the Pavlov TV replay viewer's local HTTP API into a
stream of typed updates plus a derived connection-health state.

Quick start:
  1. Start Pavlov TV (or run: pavtv launch)
  2. Run: pavtv watch --tui
  3. Load a replay: pavtv replays, then pick an id in the viewer`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this pavtv binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pavtv %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
