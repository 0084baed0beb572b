// Package entities surfaces health-related terms mentioned in user
// messages so responses can acknowledge them.
package entities

import (
	"context"
	"regexp"
	"strings"
)

// Extractor identifies health entities in a message. Implementations must
// be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// symptomPattern matches the common symptom and condition vocabulary.
var symptomPattern = regexp.MustCompile(`\b(headache|fever|cough|cold|stress|pain|fatigue|asthma|diabetes)\b`)

// healthTerms flags entity candidates that carry a medical word.
var healthTerms = []string{
	"pain", "fever", "infection", "cough", "disease",
	"tablet", "medicine", "ache", "pressure",
}

// tokenPattern splits a message into word tokens for lexicon scanning.
var tokenPattern = regexp.MustCompile(`[a-zA-Z]+`)

// LexiconExtractor recognizes entities with a fixed vocabulary and pattern
// scan. It needs no network and is the default extractor.
type LexiconExtractor struct{}

// Extract returns the distinct entities found in text, in order of first
// occurrence.
func (LexiconExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	lowered := strings.ToLower(text)

	var (
		found []string
		seen  = make(map[string]struct{})
	)
	add := func(entity string) {
		if entity == "" {
			return
		}
		if _, ok := seen[entity]; ok {
			return
		}
		seen[entity] = struct{}{}
		found = append(found, entity)
	}

	for _, token := range tokenPattern.FindAllString(lowered, -1) {
		for _, term := range healthTerms {
			if strings.Contains(token, term) {
				add(token)
				break
			}
		}
	}
	for _, match := range symptomPattern.FindAllString(lowered, -1) {
		add(match)
	}

	return found, nil
}
