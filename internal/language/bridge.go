// Package language detects the language of inbound messages and translates
// them to and from the canonical language the response rules are written in.
package language

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the translation backend cannot be reached
var ErrUnavailable = errors.New("translation unavailable")

// Detection is the outcome of language identification for one text.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Reliable   bool    `json:"reliable"`
}

// Translation carries translated text. Degraded is set when the backend
// failed and the original text was passed through untranslated.
type Translation struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Bridge is the translation boundary. Implementations must be safe for
// concurrent use.
type Bridge interface {
	// Detect identifies the language of text.
	Detect(ctx context.Context, text string) (Detection, error)
	// Translate converts text from source to target. Implementations may
	// pass an empty source to let the backend detect it.
	Translate(ctx context.Context, text, source, target string) (Translation, error)
}

// Noop is a Bridge that treats every message as already canonical. Used
// when no translation backend is configured.
type Noop struct {
	// CanonicalLanguage is reported for every detection. Defaults to "en".
	CanonicalLanguage string
}

func (n Noop) language() string {
	if n.CanonicalLanguage == "" {
		return "en"
	}
	return n.CanonicalLanguage
}

// Detect reports the canonical language with full confidence.
func (n Noop) Detect(ctx context.Context, text string) (Detection, error) {
	return Detection{Language: n.language(), Confidence: 1, Reliable: true}, nil
}

// Translate returns the text unchanged.
func (n Noop) Translate(ctx context.Context, text, source, target string) (Translation, error) {
	return Translation{Text: text, Source: source, Target: target}, nil
}
