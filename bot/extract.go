package bot

import "reddit_reply_bot/reddit"

// extractContent returns the text the prompt is built from. Link posts have no body.
func extractContent(p reddit.Post) (title, body string) {
	return p.Title, p.Body
}
