package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reddit_reply_bot/generator"
	"reddit_reply_bot/reddit"
)

var testPersona = generator.Persona{
	Name:        "David Quayle",
	Description: "a cheerful YouTube vlogger",
	Corpus:      generator.StyleCorpus{"As always, work hard and be nice to people."},
}

func newTestRunner(t *testing.T, feed *fakeFeed, gen *fakeGen, ledger Ledger, opts Options) *Runner {
	t.Helper()
	if opts.Community == "" {
		opts.Community = "DavidQuayleVlogs"
	}
	opts.Persona = testPersona
	r, err := NewRunner(feed, gen, ledger, opts, nil)
	require.NoError(t, err)
	return r
}

func TestRunFixedIndexScenario(t *testing.T) {
	batch := batchOf(5)
	batch[4].Title = "Great video!"
	batch[4].Body = ""
	feed := &fakeFeed{batch: batch}
	gen := &fakeGen{out: "  Thanks!  "}
	r := newTestRunner(t, feed, gen, nil, Options{Policy: PolicyIndex, Index: 4})

	out, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.HasSuffix(gen.prompts[0], "Title: Great video!\n\nBody: \n"), gen.prompts[0])
	assert.Equal(t, []submitted{{PostID: "p5", Text: "Thanks!"}}, feed.replies)
	assert.Equal(t, StatusPosted, out.Status)
	assert.Equal(t, "p5", out.PostID)
	require.NotNil(t, out.Comment)
	assert.Equal(t, "Comment created successfully! Comment ID: c_p5", out.Message())
}

func TestRunEmptyBatch(t *testing.T) {
	feed := &fakeFeed{}
	gen := &fakeGen{out: "unused"}
	r := newTestRunner(t, feed, gen, nil, Options{})

	out, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusNoPosts, out.Status)
	assert.Empty(t, gen.prompts)
	assert.Empty(t, feed.replies)
	assert.Equal(t, "No new posts.", out.Message())
}

func TestRunGeneratorErrorIsFatal(t *testing.T) {
	boom := errors.New("model unavailable")
	feed := &fakeFeed{batch: batchOf(3)}
	r := newTestRunner(t, feed, &fakeGen{err: boom}, nil, Options{})

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, KindGenerate, KindOf(err))
	assert.Empty(t, feed.replies)
}

func TestRunFetchErrorIsFatal(t *testing.T) {
	feed := &fakeFeed{listErr: errors.New("503")}
	gen := &fakeGen{out: "x"}
	r := newTestRunner(t, feed, gen, nil, Options{})

	_, err := r.Run(context.Background())
	assert.Equal(t, KindFetch, KindOf(err))
	assert.Empty(t, gen.prompts)
}

func TestRunEmptyReplyIsSoft(t *testing.T) {
	feed := &fakeFeed{batch: batchOf(2)}
	r := newTestRunner(t, feed, &fakeGen{out: ""}, nil, Options{})

	out, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusEmptyReply, out.Status)
	assert.Nil(t, out.Comment)
	assert.Empty(t, feed.replies)
}

func TestRunPostFailureIsSoft(t *testing.T) {
	feed := &fakeFeed{batch: batchOf(2), replyErr: errors.New("RATELIMIT")}
	r := newTestRunner(t, feed, &fakeGen{out: "hi"}, nil, Options{})

	out, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusPostFailed, out.Status)
	assert.Contains(t, out.Message(), "RATELIMIT")
}

func TestRunDefaultBatchAndPolicy(t *testing.T) {
	feed := &fakeFeed{batch: batchOf(8)}
	r := newTestRunner(t, feed, &fakeGen{out: "hi"}, nil, Options{})

	out, err := r.Run(context.Background())
	require.NoError(t, err)
	// five newest fetched, oldest of them chosen
	assert.Equal(t, "p5", out.PostID)
}

func TestRunSkipsRepliedAcrossRuns(t *testing.T) {
	feed := &fakeFeed{batch: batchOf(2)}
	ledger := newMemLedger()
	r := newTestRunner(t, feed, &fakeGen{out: "hi"}, ledger, Options{})

	first, err := r.Run(context.Background())
	require.NoError(t, err)
	second, err := r.Run(context.Background())
	require.NoError(t, err)
	third, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "p2", first.PostID)
	assert.Equal(t, "p1", second.PostID)
	assert.Equal(t, StatusNoEligiblePost, third.Status)
	assert.Len(t, feed.replies, 2)
}

func TestRunPost(t *testing.T) {
	feed := &fakeFeed{byID: map[string]reddit.Post{"abc": {ID: "abc", Title: "Hello"}}}
	gen := &fakeGen{out: " hey "}
	r := newTestRunner(t, feed, gen, nil, Options{})

	out, err := r.RunPost(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, StatusPosted, out.Status)
	assert.Equal(t, 0, feed.listCalls)
	assert.Equal(t, []submitted{{PostID: "abc", Text: "hey"}}, feed.replies)
}

func TestRunPostAlreadyReplied(t *testing.T) {
	feed := &fakeFeed{byID: map[string]reddit.Post{"abc": {ID: "abc"}}}
	gen := &fakeGen{out: "x"}
	r := newTestRunner(t, feed, gen, newMemLedger("abc"), Options{})

	out, err := r.RunPost(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, StatusNoEligiblePost, out.Status)
	assert.Empty(t, gen.prompts)
}

func TestRunPostNotFound(t *testing.T) {
	r := newTestRunner(t, &fakeFeed{}, &fakeGen{}, nil, Options{})

	_, err := r.RunPost(context.Background(), "missing")
	assert.ErrorIs(t, err, reddit.ErrPostNotFound)
	assert.Equal(t, KindFetch, KindOf(err))
}

func TestNewRunnerValidation(t *testing.T) {
	_, err := NewRunner(nil, &fakeGen{}, nil, Options{Community: "x"}, nil)
	assert.Error(t, err)
	_, err = NewRunner(&fakeFeed{}, nil, nil, Options{Community: "x"}, nil)
	assert.Error(t, err)
	_, err = NewRunner(&fakeFeed{}, &fakeGen{}, nil, Options{}, nil)
	assert.Error(t, err)
}

func TestErrorFormatting(t *testing.T) {
	err := Fail(KindGenerate, "generating reply to p1", errors.New("timeout"))
	assert.EqualError(t, err, "generating reply to p1: timeout")
	assert.Nil(t, Fail(KindFetch, "op", nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, "generate", KindGenerate.String())
}
