package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reddit_reply_bot/bot"
	"reddit_reply_bot/config"
	"reddit_reply_bot/generator"
	"reddit_reply_bot/ledger"
	"reddit_reply_bot/reddit"
)

type runOptions struct {
	PostID string
	DryRun bool
}

// runOnce wires the clients from cfg and performs a single run.
func runOnce(ctx context.Context, cfg *config.Config, opts runOptions, logger *zap.Logger) (bot.Outcome, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return bot.Outcome{}, bot.Fail(bot.KindConfig, "building llm client", err)
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		return bot.Outcome{}, bot.Fail(bot.KindConfig, "building generator", err)
	}

	policy, err := bot.ParsePolicy(cfg.Selection.Policy)
	if err != nil {
		return bot.Outcome{}, bot.Fail(bot.KindConfig, "reading selection policy", err)
	}

	store, closeStore, err := openLedger(cfg.StatePath)
	if err != nil {
		return bot.Outcome{}, bot.Fail(bot.KindState, "opening reply ledger", err)
	}
	defer closeStore() //nolint:errcheck

	client, err := newRedditClient(ctx, cfg, logger)
	if err != nil {
		return bot.Outcome{}, bot.Fail(bot.KindFetch, "connecting to reddit", err)
	}

	runner, err := bot.NewRunner(client, agent, store, bot.Options{
		Community: cfg.Feed.Community,
		BatchSize: cfg.Feed.BatchSize,
		Persona: generator.Persona{
			Name:        cfg.Persona.Name,
			Description: cfg.Persona.Description,
			Corpus:      generator.StyleCorpus(cfg.Persona.StyleCorpus),
		},
		Policy: policy,
		Index:  cfg.Selection.Index,
		Post: bot.PostOptions{
			StripMarkdown: cfg.Reply.StripMarkdown,
			DryRun:        opts.DryRun,
		},
	}, logger)
	if err != nil {
		return bot.Outcome{}, bot.Fail(bot.KindConfig, "building runner", err)
	}

	if opts.PostID != "" {
		return runner.RunPost(ctx, opts.PostID)
	}
	return runner.Run(ctx)
}

func buildLLM(cfg *config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Referer:  cfg.LLM.Referer,
		Title:    cfg.LLM.Title,
		Timeout:  cfg.LLMTimeout(),
	}
	switch cfg.LLM.Provider {
	case "mock":
		return generator.MockLLM{}, nil
	case "openrouter", "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func newRedditClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*reddit.Client, error) {
	return reddit.New(ctx, reddit.Config{
		ClientID:     cfg.Feed.ClientID,
		ClientSecret: cfg.Feed.ClientSecret,
		UserAgent:    cfg.Feed.UserAgent,
		Username:     cfg.Feed.Username,
		Password:     cfg.Feed.Password,
		TokenURL:     cfg.Feed.TokenURL,
		APIBase:      cfg.Feed.APIBase,
		Timeout:      cfg.FeedTimeout(),
	}, nil, logger)
}

// openLedger returns a no-op ledger when no state path is configured.
func openLedger(path string) (bot.Ledger, func() error, error) {
	if path == "" {
		return bot.NopLedger{}, func() error { return nil }, nil
	}
	l, err := ledger.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return l, l.Close, nil
}
