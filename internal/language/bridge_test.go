package language

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopDetectReportsCanonical(t *testing.T) {
	det, err := Noop{}.Detect(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "en", det.Language)
	assert.True(t, det.Reliable)

	det, err = Noop{CanonicalLanguage: "es"}.Detect(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "es", det.Language)
}

func TestNoopTranslatePassesThrough(t *testing.T) {
	tr, err := Noop{}.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "hola", tr.Text)
	assert.False(t, tr.Degraded)
}

func TestNewGoogleBridgeRequiresKey(t *testing.T) {
	_, err := NewGoogleBridge(context.Background(), "", 0)
	assert.Error(t, err)
}
