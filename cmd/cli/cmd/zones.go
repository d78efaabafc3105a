// Package cmd - zones command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"titlequote/adapters/feed"
	"titlequote/internal/config"
	"titlequote/internal/errors"
)

// zonesCmd lists the zones and cities the rate feed covers
var zonesCmd = &cobra.Command{
	Use:   "zones [zone]",
	Short: "List quotable zones, or the cities of one zone",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := feed.Open(config.Get().Feed)
		if err != nil {
			return fmt.Errorf("failed to open rate feed: %w", err)
		}
		rateFeed, err := feed.LoadFeed(context.Background(), src)
		if err != nil {
			return fmt.Errorf("failed to load rate feed: %w", err)
		}
		geo := rateFeed.Geography()

		if len(args) == 0 {
			for _, zone := range geo.Zones() {
				fmt.Println(zone)
			}
			return nil
		}

		zone := args[0]
		if !geo.HasZone(zone) {
			return errors.Newf(errors.TypeGeography, "unknown zone: %s", zone)
		}
		for _, city := range geo.Cities(zone) {
			fmt.Println(city)
		}
		return nil
	},
}
