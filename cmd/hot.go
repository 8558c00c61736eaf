package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reddit_reply_bot/config"
	"reddit_reply_bot/logging"
)

// Reddit caps listings at 100 items.
const maxListingLimit = 100

var flagHotLimit int

// feedOnly skips model settings for commands that never talk to the LLM.
func feedOnly(c *config.Config) {
	c.LLM.Provider = "mock"
}

var hotCmd = &cobra.Command{
	Use:   "hot",
	Short: "List the titles of the community's hot posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHotLimit < 1 || flagHotLimit > maxListingLimit {
			return fmt.Errorf("--limit must be between 1 and %d, got %d", maxListingLimit, flagHotLimit)
		}
		cfg, err := loadConfig(feedOnly)
		if err != nil {
			return err
		}
		logger, err := logging.New(flagVerbose || cfg.Debug)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		client, err := newRedditClient(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("connecting to reddit: %w", err)
		}
		posts, err := client.HotPosts(cmd.Context(), cfg.Feed.Community, flagHotLimit)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No hot posts.")
			return nil
		}
		for _, p := range posts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.ID, p.Title)
		}
		return nil
	},
}

func init() {
	hotCmd.Flags().IntVar(&flagHotLimit, "limit", 10, "number of hot posts to list (1-100)")
}
