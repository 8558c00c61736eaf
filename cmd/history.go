package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reddit_reply_bot/ledger"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recent replies recorded in the state file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHistoryLimit < 1 {
			return fmt.Errorf("--limit must be at least 1, got %d", flagHistoryLimit)
		}
		cfg, err := loadConfig(feedOnly)
		if err != nil {
			return err
		}
		if cfg.StatePath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Reply history is disabled (state_path is not set).")
			return nil
		}

		l, err := ledger.Open(cfg.StatePath)
		if err != nil {
			return err
		}
		defer l.Close()

		entries, err := l.Recent(cmd.Context(), flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No replies recorded.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
				e.RepliedAt.Local().Format(time.DateTime), e.PostID, e.CommentID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of replies to list")
}
