package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pavtv/pavtv/catalog"
	"github.com/pavtv/pavtv/config"
)

// replaysCmd lists replays from the master catalog.
var replaysCmd = &cobra.Command{
	Use:   "replays [player]",
	Short: "List replays from the master catalog",
	Long: `List replays from the master replay catalog, newest first.

With a player argument the listing is filtered to replays that player
appears in. The ids printed here can be loaded into the viewer.

Example:
  pavtv replays
  pavtv replays "some player"
  pavtv replays --catalog https://tv.vankrupt.net/ --limit 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplays,
}

func init() {
	rootCmd.AddCommand(replaysCmd)

	replaysCmd.Flags().StringP("config", "c", "", "path to config file")
	replaysCmd.Flags().String("catalog", "", "catalog base URL (overrides config)")
	replaysCmd.Flags().Int("limit", 25, "maximum rows to print (0 for all)")
}

func runReplays(cmd *cobra.Command, args []string) error {
	logger := newLogger(true)

	catalogURL, _ := cmd.Flags().GetString("catalog")
	if path, _ := cmd.Flags().GetString("config"); path != "" && catalogURL == "" {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		catalogURL = cfg.CatalogURL
	}

	var player string
	if len(args) == 1 {
		player = args[0]
	}

	client := catalog.NewClient(catalogURL, logger)
	defer client.Close()

	replays, err := client.List(cmd.Context(), player)
	if err != nil {
		return fmt.Errorf("catalog query failed: %w", err)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(replays) > limit {
		replays = replays[:limit]
	}

	if len(replays) == 0 {
		fmt.Println("no replays found")
		return nil
	}

	fmt.Printf("%-26s %-20s %-14s %-8s %s\n", "ID", "MAP", "MODE", "LIVE", "CREATED")
	for _, r := range replays {
		live := ""
		if r.Live {
			live = "live"
		}
		fmt.Printf("%-26s %-20s %-14s %-8s %s\n",
			r.ID, r.MapName, r.GameMode, live, r.Created.Local().Format(time.DateTime))
	}
	return nil
}
