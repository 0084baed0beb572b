// Package chatbot turns an inbound patient message into a bot reply. The
// resolver matches against the keyword snapshot; the orchestrator wires
// language handling, entity extraction and transcript persistence around it.
package chatbot

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/wellnesscare/wellness-platform/internal/keywords"
)

const (
	// FallbackResponse is returned when no keyword clears the threshold.
	FallbackResponse = "I'm here to help with your health and wellness questions. Could you please provide more details?"

	// multiResponseLeadIn opens a bulleted reply when a keyword carries
	// several responses.
	multiResponseLeadIn = "Here's what I can share:"
)

// Resolver matches messages against a keyword snapshot. The threshold is
// exclusive: a fuzzy score must strictly exceed it.
type Resolver struct {
	threshold float64
}

// NewResolver creates a resolver with the given fuzzy threshold.
func NewResolver(threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = 0.6
	}
	return &Resolver{threshold: threshold}
}

// Resolve produces the reply for message against snapshot. It is a pure
// function: the snapshot is read once and never mutated.
//
// The exact pass is first-match-wins in snapshot order, not longest-match,
// so overlapping keywords like "pain" and "chest pain" resolve to whichever
// was stored first. The fuzzy pass keeps the first keyword seen with the
// strictly highest ratio.
func (r *Resolver) Resolve(message string, snapshot keywords.Snapshot) string {
	lowered := strings.ToLower(message)

	for _, entry := range snapshot {
		if strings.Contains(lowered, entry.Keyword) {
			return formatResponses(entry.Responses)
		}
	}

	var (
		best      []string
		bestRatio float64
	)
	for _, entry := range snapshot {
		ratio := similarity(lowered, entry.Keyword)
		if ratio > bestRatio && ratio > r.threshold {
			bestRatio = ratio
			best = entry.Responses
		}
	}
	if best != nil {
		return formatResponses(best)
	}

	return FallbackResponse
}

// similarity is the Ratcliff/Obershelp ratio over characters, in [0, 1].
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

func formatResponses(responses []string) string {
	switch len(responses) {
	case 0:
		return FallbackResponse
	case 1:
		return responses[0]
	}

	var b strings.Builder
	b.WriteString(multiResponseLeadIn)
	for _, response := range responses {
		b.WriteString("\n• ")
		b.WriteString(response)
	}
	return b.String()
}
