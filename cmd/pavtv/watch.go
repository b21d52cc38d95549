package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pavtv/pavtv"
	"github.com/pavtv/pavtv/config"
	"github.com/pavtv/pavtv/internal/tui"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// watchCmd runs the engine against the local viewer.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the local viewer's telemetry",
	Long: `Follow the local Pavlov TV viewer's telemetry.

Without --tui state changes and failed polls are logged as JSON to
stderr; successful polls are logged at debug level, below the info level
used here, so they do not appear.
With --tui a terminal view shows the connection state, replay clock,
match status, and killfeed.

The command runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  pavtv watch
  pavtv watch --tui
  pavtv watch -c bridge.yaml --url http://localhost:1234/`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to config file")
	watchCmd.Flags().String("url", "", "viewer base URL (overrides config)")
	watchCmd.Flags().Bool("tui", false, "render a terminal UI instead of logging")
}

func runWatch(cmd *cobra.Command, args []string) error {
	useTUI, _ := cmd.Flags().GetBool("tui")
	logger := newLogger(useTUI)

	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	opts = append(opts, pavtv.WithLogger(logger))

	eng, err := pavtv.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	if !useTUI {
		eng.SetSink(pavtv.NewLogSink(logger))

		if err := eng.Start(); err != nil {
			return fmt.Errorf("failed to start engine: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		eng.Stop()
		logger.Info("shutdown complete")
		return nil
	}

	program := tea.NewProgram(tui.NewModel(), tea.WithAltScreen())
	eng.SetSink(tui.NewSink(program))

	if err := eng.Start(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	defer eng.Stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// optionsFromFlags builds engine options from the optional config file
// plus flag overrides.
func optionsFromFlags(cmd *cobra.Command) ([]pavtv.Option, error) {
	var opts []pavtv.Option

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		opts, err = config.BuildOptions(cfg)
		if err != nil {
			return nil, err
		}
	}

	if rawURL, _ := cmd.Flags().GetString("url"); rawURL != "" {
		opts = append(opts, pavtv.WithBaseURL(rawURL))
	}

	return opts, nil
}
