package bot

import (
	"fmt"

	"reddit_reply_bot/reddit"
)

// Status is how a run ended when it did not fail fatally.
type Status string

const (
	StatusPosted         Status = "posted"
	StatusNoPosts        Status = "no_posts"
	StatusNoEligiblePost Status = "no_eligible_post"
	StatusEmptyReply     Status = "empty_reply"
	StatusPostFailed     Status = "post_failed"
	StatusDryRun         Status = "dry_run"
)

// Outcome is the result of one run. Comment is set only for StatusPosted.
type Outcome struct {
	Status  Status
	PostID  string
	Reply   string
	Comment *reddit.Comment
	Reason  string
}

// Message renders a human-readable status line.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusPosted:
		return fmt.Sprintf("Comment created successfully! Comment ID: %s", o.Comment.ID)
	case StatusNoPosts:
		return "No new posts."
	case StatusNoEligiblePost:
		return fmt.Sprintf("No post to reply to: %s", o.Reason)
	case StatusEmptyReply:
		return fmt.Sprintf("Skipped post %s: reply was %s", o.PostID, o.Reason)
	case StatusPostFailed:
		return fmt.Sprintf("An error occurred replying to %s: %s", o.PostID, o.Reason)
	case StatusDryRun:
		return fmt.Sprintf("Dry run, would reply to %s with:\n%s", o.PostID, o.Reply)
	default:
		return string(o.Status)
	}
}
