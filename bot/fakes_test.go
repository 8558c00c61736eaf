package bot

import (
	"context"
	"fmt"

	"reddit_reply_bot/reddit"
)

type fakeFeed struct {
	batch     []reddit.Post
	listErr   error
	byID      map[string]reddit.Post
	replyErr  error
	listCalls int
	replies   []submitted
}

type submitted struct {
	PostID string
	Text   string
}

func (f *fakeFeed) NewPosts(_ context.Context, _ string, limit int) ([]reddit.Post, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.batch) > limit {
		return f.batch[:limit], nil
	}
	return f.batch, nil
}

func (f *fakeFeed) Post(_ context.Context, id string) (reddit.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return reddit.Post{}, fmt.Errorf("%w: %s", reddit.ErrPostNotFound, id)
	}
	return p, nil
}

func (f *fakeFeed) Reply(_ context.Context, postID, text string) (reddit.Comment, error) {
	f.replies = append(f.replies, submitted{PostID: postID, Text: text})
	if f.replyErr != nil {
		return reddit.Comment{}, f.replyErr
	}
	return reddit.Comment{ID: "c_" + postID, FullName: "t1_c_" + postID}, nil
}

type fakeGen struct {
	out     string
	err     error
	prompts []string
}

func (g *fakeGen) Reply(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.out, g.err
}

type memLedger struct {
	replied map[string]string
	err     error
}

func newMemLedger(ids ...string) *memLedger {
	l := &memLedger{replied: map[string]string{}}
	for _, id := range ids {
		l.replied[id] = "old"
	}
	return l
}

func (l *memLedger) HasReplied(_ context.Context, postID string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	_, ok := l.replied[postID]
	return ok, nil
}

func (l *memLedger) MarkReplied(_ context.Context, postID, commentID string) error {
	if l.err != nil {
		return l.err
	}
	l.replied[postID] = commentID
	return nil
}

// batchOf builds posts p1..pn ordered newest first, as Reddit returns them.
func batchOf(n int) []reddit.Post {
	posts := make([]reddit.Post, n)
	for i := range posts {
		id := fmt.Sprintf("p%d", i+1)
		posts[i] = reddit.Post{ID: id, Title: "Title " + id, Body: "Body " + id}
	}
	return posts
}
