package bot

import (
	"context"

	"go.uber.org/zap"

	"reddit_reply_bot/generator"
	"reddit_reply_bot/reddit"
)

const reasonEmpty = "empty after normalization"

// PostOptions tune how a generated reply is cleaned up and whether it is sent.
type PostOptions struct {
	StripMarkdown bool
	DryRun        bool
}

// Poster validates generated text and submits it. Failures here never abort a run.
type Poster struct {
	sub    Submitter
	ledger Ledger
	opts   PostOptions
	logger *zap.Logger
}

func NewPoster(sub Submitter, ledger Ledger, opts PostOptions, logger *zap.Logger) *Poster {
	if ledger == nil {
		ledger = NopLedger{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poster{sub: sub, ledger: ledger, opts: opts, logger: logger}
}

// Post submits the normalized reply at most once and reports what happened.
func (p *Poster) Post(ctx context.Context, post reddit.Post, raw string) Outcome {
	log := p.logger.With(zap.String("post_id", post.ID))

	text := generator.Normalize(raw, p.opts.StripMarkdown)
	if text == "" {
		log.Warn("reply discarded", zap.String("reason", reasonEmpty))
		return Outcome{Status: StatusEmptyReply, PostID: post.ID, Reason: reasonEmpty}
	}
	if p.opts.DryRun {
		log.Info("dry run, reply not submitted", zap.Int("chars", len(text)))
		return Outcome{Status: StatusDryRun, PostID: post.ID, Reply: text}
	}

	comment, err := p.sub.Reply(ctx, post.ID, text)
	if err != nil {
		log.Error("reply submission failed", zap.Error(err))
		return Outcome{Status: StatusPostFailed, PostID: post.ID, Reply: text, Reason: err.Error()}
	}
	log.Info("reply posted", zap.String("comment_id", comment.ID))

	if err := p.ledger.MarkReplied(ctx, post.ID, comment.ID); err != nil {
		log.Warn("could not record reply", zap.Error(err))
	}
	return Outcome{Status: StatusPosted, PostID: post.ID, Reply: text, Comment: &comment}
}
