package chat

import "strings"

// snippetContext is how many characters of context surround a match.
const snippetContext = 20

// buildSnippet returns a snippet of text around the first case-insensitive
// occurrence of query, with ellipses where the text was truncated. ok is
// false when query does not occur.
func buildSnippet(text, query string) (snippet string, pos int, ok bool) {
	if query == "" {
		return "", 0, false
	}
	pos = strings.Index(strings.ToLower(text), strings.ToLower(query))
	if pos < 0 {
		return "", 0, false
	}

	start := pos - snippetContext
	if start < 0 {
		start = 0
	}
	end := pos + len(query) + snippetContext
	if end > len(text) {
		end = len(text)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(text[start:end])
	if end < len(text) {
		b.WriteString("...")
	}
	return b.String(), pos, true
}

// matchTranscript computes the search result for one transcript, or ok=false
// when neither title nor any message matches.
func matchTranscript(t *Transcript, query string) (SearchResult, bool) {
	titleHit := strings.Contains(strings.ToLower(t.Title), strings.ToLower(query))

	var matching []MatchingMessage
	for _, msg := range t.Messages {
		if snippet, pos, ok := buildSnippet(msg.Text, query); ok {
			matching = append(matching, MatchingMessage{
				Text:          msg.Text,
				Snippet:       snippet,
				Sender:        msg.Sender,
				Timestamp:     msg.Timestamp,
				MatchPosition: pos,
			})
		}
	}

	if !titleHit && len(matching) == 0 {
		return SearchResult{}, false
	}

	preview := lastMessageText(t.Messages)
	if len(matching) > 0 {
		preview = matching[0].Snippet
	}

	return SearchResult{
		ChatID:           t.ID,
		Title:            t.Title,
		LastMessage:      preview,
		Preview:          preview,
		MatchingMessages: matching,
		UpdatedAt:        t.UpdatedAt,
		MessageCount:     len(t.Messages),
		MatchCount:       len(matching),
	}, true
}

func lastMessageText(messages []Message) string {
	if len(messages) == 0 {
		return "New chat"
	}
	return messages[len(messages)-1].Text
}

// escapeLike escapes SQL LIKE wildcards in a user-supplied query.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
