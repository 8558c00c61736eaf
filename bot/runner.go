package bot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"reddit_reply_bot/generator"
	"reddit_reply_bot/reddit"
)

// DefaultBatchSize is how many new posts a run looks at when none is configured.
const DefaultBatchSize = 5

// Options configure a Runner.
type Options struct {
	Community string
	BatchSize int
	Persona   generator.Persona
	Policy    Policy
	Index     int
	Post      PostOptions
}

// Runner produces at most one reply per invocation.
type Runner struct {
	feed     FeedClient
	gen      Generator
	ledger   Ledger
	selector Selector
	poster   *Poster
	opts     Options
	logger   *zap.Logger
}

func NewRunner(feed FeedClient, gen Generator, ledger Ledger, opts Options, logger *zap.Logger) (*Runner, error) {
	if feed == nil {
		return nil, errors.New("feed client is required")
	}
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if opts.Community == "" {
		return nil, errors.New("community is required")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Policy == "" {
		opts.Policy = PolicyOldestUnreplied
	}
	if ledger == nil {
		ledger = NopLedger{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		feed:     feed,
		gen:      gen,
		ledger:   ledger,
		selector: Selector{Policy: opts.Policy, Index: opts.Index, Ledger: ledger},
		poster:   NewPoster(feed, ledger, opts.Post, logger),
		opts:     opts,
		logger:   logger,
	}, nil
}

// Run fetches the newest batch from the community and replies to one selected post.
// The returned error is non-nil only for fatal failures (fetch, generation, ledger).
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	r.logger.Info("fetching new posts",
		zap.String("community", r.opts.Community),
		zap.Int("limit", r.opts.BatchSize))

	posts, err := r.feed.NewPosts(ctx, r.opts.Community, r.opts.BatchSize)
	if err != nil {
		return Outcome{}, Fail(KindFetch, "listing new posts", err)
	}
	if len(posts) == 0 {
		r.logger.Info("no new posts")
		return Outcome{Status: StatusNoPosts}, nil
	}

	post, reason, err := r.selector.Select(ctx, posts)
	if err != nil {
		return Outcome{}, err
	}
	if post == nil {
		r.logger.Info("no eligible post", zap.String("reason", reason), zap.Int("batch", len(posts)))
		return Outcome{Status: StatusNoEligiblePost, Reason: reason}, nil
	}
	return r.reply(ctx, *post)
}

// RunPost replies to one explicit post, skipping listing and selection.
func (r *Runner) RunPost(ctx context.Context, postID string) (Outcome, error) {
	post, err := r.feed.Post(ctx, postID)
	if err != nil {
		return Outcome{}, Fail(KindFetch, "fetching post", err)
	}
	replied, err := r.ledger.HasReplied(ctx, post.ID)
	if err != nil {
		return Outcome{}, Fail(KindState, "checking reply ledger", err)
	}
	if replied {
		reason := fmt.Sprintf("post %s already replied to", post.ID)
		r.logger.Info("no eligible post", zap.String("reason", reason))
		return Outcome{Status: StatusNoEligiblePost, PostID: post.ID, Reason: reason}, nil
	}
	return r.reply(ctx, post)
}

func (r *Runner) reply(ctx context.Context, post reddit.Post) (Outcome, error) {
	log := r.logger.With(zap.String("post_id", post.ID))

	title, body := extractContent(post)
	prompt := generator.BuildReplyPrompt(r.opts.Persona, title, body)
	log.Debug("prompt composed", zap.String("title", title), zap.Int("prompt_chars", len(prompt)))

	raw, err := r.gen.Reply(ctx, prompt)
	if err != nil {
		return Outcome{PostID: post.ID}, Fail(KindGenerate, "generating reply to "+post.ID, err)
	}
	log.Debug("reply generated", zap.Int("chars", len(raw)))

	return r.poster.Post(ctx, post, raw), nil
}
