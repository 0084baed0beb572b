package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconExtractFindsSymptoms(t *testing.T) {
	found, err := LexiconExtractor{}.Extract(context.Background(), "I have a headache and a slight fever")
	require.NoError(t, err)
	assert.Equal(t, []string{"headache", "fever"}, found)
}

func TestLexiconExtractMatchesHealthTerms(t *testing.T) {
	found, err := LexiconExtractor{}.Extract(context.Background(), "should I take a painkiller tablet?")
	require.NoError(t, err)
	assert.Contains(t, found, "painkiller")
	assert.Contains(t, found, "tablet")
}

func TestLexiconExtractDeduplicates(t *testing.T) {
	found, err := LexiconExtractor{}.Extract(context.Background(), "Fever fever FEVER")
	require.NoError(t, err)
	assert.Equal(t, []string{"fever"}, found)
}

func TestLexiconExtractNoEntities(t *testing.T) {
	found, err := LexiconExtractor{}.Extract(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestParseEntityList(t *testing.T) {
	assert.Equal(t, []string{"headache", "ibuprofen"}, parseEntityList(" Headache, ibuprofen ,headache"))
	assert.Nil(t, parseEntityList("NONE"))
	assert.Nil(t, parseEntityList("  "))
}

func TestNewGeminiExtractorRequiresKey(t *testing.T) {
	_, err := NewGeminiExtractor(context.Background(), "", "")
	assert.Error(t, err)
}
