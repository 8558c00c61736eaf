// Package bot drives one reply run: fetch a batch, pick a post, generate a reply, post it.
package bot

import (
	"context"

	"reddit_reply_bot/reddit"
)

// Submitter posts a reply to a post.
type Submitter interface {
	Reply(ctx context.Context, postID, text string) (reddit.Comment, error)
}

// FeedClient is the part of the Reddit client a run needs.
type FeedClient interface {
	Submitter
	NewPosts(ctx context.Context, community string, limit int) ([]reddit.Post, error)
	Post(ctx context.Context, id string) (reddit.Post, error)
}

// Generator turns a prompt into raw model output.
type Generator interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// Ledger remembers which posts already got a reply.
type Ledger interface {
	HasReplied(ctx context.Context, postID string) (bool, error)
	MarkReplied(ctx context.Context, postID, commentID string) error
}

// NopLedger remembers nothing; every post counts as unreplied.
type NopLedger struct{}

func (NopLedger) HasReplied(context.Context, string) (bool, error) { return false, nil }
func (NopLedger) MarkReplied(context.Context, string, string) error { return nil }
