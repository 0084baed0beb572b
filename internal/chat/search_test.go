package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnippetShortText(t *testing.T) {
	snippet, pos, ok := buildSnippet("I have a headache", "headache")
	require.True(t, ok)
	assert.Equal(t, "I have a headache", snippet)
	assert.Equal(t, 9, pos)
}

func TestBuildSnippetTruncatesWithEllipses(t *testing.T) {
	text := strings.Repeat("a", 50) + "headache" + strings.Repeat("b", 50)

	snippet, pos, ok := buildSnippet(text, "headache")
	require.True(t, ok)
	assert.Equal(t, 50, pos)
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.Contains(t, snippet, "headache")
	// 20 chars of context either side plus the ellipses
	assert.Equal(t, 3+20+len("headache")+20+3, len(snippet))
}

func TestBuildSnippetCaseInsensitive(t *testing.T) {
	snippet, _, ok := buildSnippet("Severe HEADACHE today", "headache")
	require.True(t, ok)
	assert.Contains(t, snippet, "HEADACHE")
}

func TestBuildSnippetNoMatch(t *testing.T) {
	_, _, ok := buildSnippet("all about diet", "headache")
	assert.False(t, ok)

	_, _, ok = buildSnippet("anything", "")
	assert.False(t, ok)
}

func TestMatchTranscriptTitleOnly(t *testing.T) {
	tr := &Transcript{
		ID:    "c1",
		Title: "Migraine advice",
		Messages: []Message{
			{Text: "hello", Sender: SenderUser},
		},
	}

	res, ok := matchTranscript(tr, "migraine")
	require.True(t, ok)
	assert.Empty(t, res.MatchingMessages)
	assert.Equal(t, 0, res.MatchCount)
	assert.Equal(t, "hello", res.Preview)
}

func TestMatchTranscriptMessagePreview(t *testing.T) {
	tr := &Transcript{
		ID:    "c1",
		Title: "General",
		Messages: []Message{
			{Text: "my migraine is back", Sender: SenderUser},
			{Text: "sorry to hear that", Sender: SenderBot},
		},
	}

	res, ok := matchTranscript(tr, "migraine")
	require.True(t, ok)
	require.Len(t, res.MatchingMessages, 1)
	assert.Equal(t, res.MatchingMessages[0].Snippet, res.Preview)
	assert.Equal(t, 2, res.MessageCount)
}

func TestMatchTranscriptNoMatch(t *testing.T) {
	tr := &Transcript{ID: "c1", Title: "General"}

	_, ok := matchTranscript(tr, "migraine")
	assert.False(t, ok)
}

func TestLastMessageTextEmpty(t *testing.T) {
	assert.Equal(t, "New chat", lastMessageText(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_done\\`, escapeLike(`100%_done\`))
}
