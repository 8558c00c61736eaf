package bot

import (
	"context"
	"fmt"

	"reddit_reply_bot/reddit"
)

// Policy decides which post of a fetched batch gets the reply.
type Policy string

const (
	// PolicyIndex picks a fixed position in the batch (0 is the newest).
	PolicyIndex Policy = "index"
	// PolicyNewest picks the newest post not yet replied to.
	PolicyNewest Policy = "newest"
	// PolicyOldestUnreplied picks the oldest post not yet replied to.
	PolicyOldestUnreplied Policy = "oldest-unreplied"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyIndex, PolicyNewest, PolicyOldestUnreplied:
		return p, nil
	default:
		return "", fmt.Errorf("unknown selection policy %q (valid: index, newest, oldest-unreplied)", s)
	}
}

// Selector applies a Policy to a batch ordered newest first.
type Selector struct {
	Policy Policy
	Index  int
	Ledger Ledger
}

// Select returns the chosen post, or nil and the reason nothing was chosen.
func (s Selector) Select(ctx context.Context, batch []reddit.Post) (*reddit.Post, string, error) {
	switch s.Policy {
	case PolicyIndex:
		if s.Index < 0 || s.Index >= len(batch) {
			return nil, fmt.Sprintf("index %d outside batch of %d", s.Index, len(batch)), nil
		}
		p := batch[s.Index]
		replied, err := s.replied(ctx, p.ID)
		if err != nil {
			return nil, "", err
		}
		if replied {
			return nil, fmt.Sprintf("post %s already replied to", p.ID), nil
		}
		return &p, "", nil
	case PolicyNewest:
		for i := 0; i < len(batch); i++ {
			if p, err := s.pick(ctx, batch[i]); p != nil || err != nil {
				return p, "", err
			}
		}
	case PolicyOldestUnreplied, "":
		for i := len(batch) - 1; i >= 0; i-- {
			if p, err := s.pick(ctx, batch[i]); p != nil || err != nil {
				return p, "", err
			}
		}
	default:
		return nil, "", Fail(KindConfig, "selecting post", fmt.Errorf("unknown selection policy %q", s.Policy))
	}
	return nil, "every post in the batch was already replied to", nil
}

func (s Selector) pick(ctx context.Context, p reddit.Post) (*reddit.Post, error) {
	replied, err := s.replied(ctx, p.ID)
	if err != nil || replied {
		return nil, err
	}
	return &p, nil
}

func (s Selector) replied(ctx context.Context, postID string) (bool, error) {
	if s.Ledger == nil {
		return false, nil
	}
	ok, err := s.Ledger.HasReplied(ctx, postID)
	if err != nil {
		return false, Fail(KindState, "checking reply ledger", err)
	}
	return ok, nil
}
