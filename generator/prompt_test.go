package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPersona(corpus ...string) Persona {
	return Persona{
		Name:        "David Quayle",
		Description: "a cheerful YouTube vlogger",
		Corpus:      corpus,
	}
}

func TestBuildReplyPromptOrder(t *testing.T) {
	cases := []struct {
		name   string
		corpus []string
		title  string
		body   string
	}{
		{"with corpus", []string{"Work hard and be nice to people.", "Beep."}, "Great video!", "Loved it"},
		{"no corpus", nil, "Great video!", "Loved it"},
		{"blank corpus", []string{"  ", ""}, "t", "b"},
		{"empty title and body", []string{"quote"}, "", ""},
		{"title mentions Body:", nil, "Body: surprise", "actual body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPersona(tc.corpus...)
			prompt := BuildReplyPrompt(p, tc.title, tc.body)
			instr := p.Instructions()

			assert.Equal(t, 1, strings.Count(prompt, instr))
			instrAt := strings.Index(prompt, instr)

			styleAt := strings.Index(prompt, styleFraming)
			if len(p.Corpus.Lines()) > 0 {
				require.GreaterOrEqual(t, styleAt, 0)
				assert.Less(t, styleAt, instrAt)
			} else {
				assert.Equal(t, -1, styleAt)
			}

			titleAt := strings.Index(prompt[instrAt:], "\n\nTitle: ")
			require.GreaterOrEqual(t, titleAt, 0)
			bodyAt := strings.LastIndex(prompt, "\n\nBody: ")
			assert.Less(t, instrAt+titleAt, bodyAt)
		})
	}
}

func TestBuildReplyPromptEmptyBody(t *testing.T) {
	prompt := BuildReplyPrompt(testPersona("Beep."), "Great video!", "")
	assert.True(t, strings.HasSuffix(prompt, "Title: Great video!\n\nBody: \n"), prompt)
}

func TestBuildReplyPromptStyleBlock(t *testing.T) {
	prompt := BuildReplyPrompt(testPersona(" first ", "", "second"), "t", "b")
	assert.True(t, strings.HasPrefix(prompt, "Mimic the following style:\nfirst\nsecond\n\nYou are David Quayle"), prompt)
}

func TestInstructionsContent(t *testing.T) {
	instr := testPersona().Instructions()
	for _, want := range []string{
		"You are David Quayle, a cheerful YouTube vlogger.",
		"as David Quayle would",
		"No commentary",
		"bold, italics",
		"plain, conversational text",
		"two paragraphs",
	} {
		assert.Contains(t, instr, want)
	}

	noDesc := Persona{Name: "Bot"}.Instructions()
	assert.True(t, strings.HasPrefix(noDesc, "You are Bot.\n"))
}
