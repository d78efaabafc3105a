// Package cmd - feed command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"titlequote/adapters/feed"
	"titlequote/internal/config"
)

// feedCmd prints metadata about the configured rate feed
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show rate feed snapshot metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := feed.Open(config.Get().Feed)
		if err != nil {
			return fmt.Errorf("failed to open rate feed: %w", err)
		}
		rateFeed, err := feed.LoadFeed(context.Background(), src)
		if err != nil {
			return fmt.Errorf("failed to load rate feed: %w", err)
		}

		fmt.Printf("Snapshot:     %s\n", rateFeed.ID())
		fmt.Printf("Content hash: %s\n", rateFeed.ContentHash())
		fmt.Println("Tables:")
		counts := rateFeed.Counts()
		for _, name := range []string{
			"rate_tiers", "escrow_resale", "escrow_refinance",
			"transfer_tax", "endorsements", "fees", "zones",
		} {
			fmt.Printf("  %-18s %d rows\n", name, counts[name])
		}
		return nil
	},
}
