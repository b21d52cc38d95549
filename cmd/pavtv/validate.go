package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavtv/pavtv/config"
)

// validateCmd validates a config file without starting the engine.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a pavtv configuration file without starting the engine.

This command parses the YAML, expands environment variables, and
validates all fields. It's useful for CI/CD pipelines or pre-deployment
checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  pavtv validate -c bridge.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// exercise the option builder too; a config that parses but cannot
	// build is still invalid
	if _, err := config.BuildOptions(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Print(cfg.Summary())
	return nil
}
