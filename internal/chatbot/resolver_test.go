package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wellnesscare/wellness-platform/internal/keywords"
)

func snapshotOf(entries ...keywords.Entry) keywords.Snapshot {
	return keywords.Snapshot(entries)
}

func TestResolveExactSubstring(t *testing.T) {
	snap := snapshotOf(
		keywords.Entry{Keyword: "fever", Responses: []string{"Rest and hydrate."}},
	)

	got := NewResolver(0.6).Resolve("I have a fever", snap)
	assert.Equal(t, "Rest and hydrate.", got)
}

func TestResolveCaseFoldsMessage(t *testing.T) {
	snap := snapshotOf(
		keywords.Entry{Keyword: "fever", Responses: []string{"Rest and hydrate."}},
	)

	got := NewResolver(0.6).Resolve("I Have A FEVER", snap)
	assert.Equal(t, "Rest and hydrate.", got)
}

func TestResolveFirstMatchWinsInSnapshotOrder(t *testing.T) {
	// "pain" was stored first, so it wins over the longer "chest pain"
	snap := snapshotOf(
		keywords.Entry{Keyword: "pain", Responses: []string{"General pain advice."}},
		keywords.Entry{Keyword: "chest pain", Responses: []string{"Call 911 immediately."}},
	)

	got := NewResolver(0.6).Resolve("I have chest pain", snap)
	assert.Equal(t, "General pain advice.", got)

	reversed := snapshotOf(snap[1], snap[0])
	got = NewResolver(0.6).Resolve("I have chest pain", reversed)
	assert.Equal(t, "Call 911 immediately.", got)
}

func TestResolveMultipleResponsesBulleted(t *testing.T) {
	snap := snapshotOf(
		keywords.Entry{Keyword: "diet", Responses: []string{"Eat vegetables.", "Avoid sugar."}},
	)

	got := NewResolver(0.6).Resolve("tell me about diet", snap)
	assert.Equal(t, "Here's what I can share:\n• Eat vegetables.\n• Avoid sugar.", got)
}

func TestResolveFuzzyFallback(t *testing.T) {
	snap := snapshotOf(
		keywords.Entry{Keyword: "fever", Responses: []string{"Rest and hydrate."}},
	)

	// "fevr" is not a substring match but scores 0.89 against "fever"
	got := NewResolver(0.6).Resolve("fevr", snap)
	assert.Equal(t, "Rest and hydrate.", got)
}

func TestResolveThresholdIsExclusive(t *testing.T) {
	// "abdcxyz" vs "abc" scores exactly 0.6 and must not be selected
	snap := snapshotOf(
		keywords.Entry{Keyword: "abc", Responses: []string{"matched"}},
	)

	assert.InDelta(t, 0.6, similarity("abdcxyz", "abc"), 1e-9)
	got := NewResolver(0.6).Resolve("abdcxyz", snap)
	assert.Equal(t, FallbackResponse, got)
}

func TestResolveFuzzyFirstSeenWinsOnTie(t *testing.T) {
	// both keywords score identically against the message; the first entry
	// is kept because later candidates only replace on a strict improvement
	snap := snapshotOf(
		keywords.Entry{Keyword: "fevex", Responses: []string{"first"}},
		keywords.Entry{Keyword: "fevey", Responses: []string{"second"}},
	)

	assert.Equal(t, similarity("fevez", "fevex"), similarity("fevez", "fevey"))
	got := NewResolver(0.6).Resolve("fevez", snap)
	assert.Equal(t, "first", got)
}

func TestResolveNoMatchReturnsFallback(t *testing.T) {
	snap := snapshotOf(
		keywords.Entry{Keyword: "fever", Responses: []string{"Rest and hydrate."}},
	)

	got := NewResolver(0.6).Resolve("completely unrelated topic", snap)
	assert.Equal(t, FallbackResponse, got)
}

func TestResolveEmptySnapshot(t *testing.T) {
	got := NewResolver(0.6).Resolve("anything", nil)
	assert.Equal(t, FallbackResponse, got)
}
