package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pavtv/pavtv/config"
	"github.com/pavtv/pavtv/internal/process"
)

// launchCmd starts the viewer via Steam.
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the viewer via Steam and wait for it",
	Long: `Start the Pavlov TV viewer through its Steam URL and wait until the
process is running.

The process list is re-checked every 250ms until the viewer appears or
the wait times out.

Example:
  pavtv launch
  pavtv launch --wait 2m
  pavtv launch --close`,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().StringP("config", "c", "", "path to config file")
	launchCmd.Flags().Duration("wait", time.Minute, "how long to wait for the process")
	launchCmd.Flags().Bool("close", false, "terminate the viewer instead of launching it")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	logger := newLogger(false)

	var names []string
	appID := config.DefaultSteamAppID
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		names = cfg.ProcessNames
		appID = cfg.SteamApp()
	}

	watcher := process.NewWatcher(names, logger)

	if doClose, _ := cmd.Flags().GetBool("close"); doClose {
		if err := watcher.Close(); err != nil {
			return fmt.Errorf("failed to close viewer: %w", err)
		}
		fmt.Println("terminate signal sent")
		return nil
	}

	if watcher.IsRunning() {
		fmt.Println("viewer already running")
		return nil
	}

	wait, _ := cmd.Flags().GetDuration("wait")
	if err := watcher.Launch(cmd.Context(), nil, wait, appID); err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}

	fmt.Println("viewer is running")
	return nil
}
