package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reddit_reply_bot/bot"
	"reddit_reply_bot/config"
	"reddit_reply_bot/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagLimit   int
	flagPost    string
	flagDryRun  bool
	flagMock    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "reddit-reply-bot",
	Short: "Reply to a subreddit post in a persona's voice",
	Long: `reddit-reply-bot fetches the newest posts of a subreddit, picks one, asks a language
model to write a reply in the configured persona's style and posts it as a comment.

Each invocation produces at most one reply and exits.`,
	SilenceUsage: true,
	RunE:         runReply,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logs")

	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "number of new posts to fetch (overrides feed.batch_size)")
	rootCmd.Flags().StringVar(&flagPost, "post", "", "reply to this post id instead of selecting from new posts")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "generate the reply but do not post it")
	rootCmd.Flags().BoolVar(&flagMock, "mock", false, "use the offline mock model instead of the configured provider")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hotCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reddit-reply-bot %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runReply(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(func(c *config.Config) {
		if flagLimit > 0 {
			c.Feed.BatchSize = flagLimit
		}
		if flagMock {
			c.LLM.Provider = "mock"
		}
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(flagVerbose || cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	outcome, err := runOnce(ctx, cfg, runOptions{PostID: flagPost, DryRun: flagDryRun}, logger)
	if err != nil {
		logger.Error("run failed", zap.Stringer("kind", bot.KindOf(err)), zap.Error(err))
		return err
	}
	logger.Info("run finished", zap.String("status", string(outcome.Status)), zap.String("post_id", outcome.PostID))
	fmt.Fprintln(cmd.OutOrStdout(), outcome.Message())
	return nil
}

func loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(flagConfig, overrides...)
	if err != nil {
		return nil, bot.Fail(bot.KindConfig, "loading config", err)
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
