package language

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

// GoogleBridge implements Bridge on the Google Translate v2 API.
type GoogleBridge struct {
	svc     *translate.Service
	timeout time.Duration
}

// NewGoogleBridge builds a bridge authenticated with an API key. timeout
// bounds every backend call.
func NewGoogleBridge(ctx context.Context, apiKey string, timeout time.Duration) (*GoogleBridge, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("language: api key required")
	}
	svc, err := translate.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("language: init translate service: %w", err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GoogleBridge{svc: svc, timeout: timeout}, nil
}

// Detect identifies the language of text.
func (g *GoogleBridge) Detect(ctx context.Context, text string) (Detection, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.svc.Detections.List([]string{text}).Context(ctx).Do()
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Detections) == 0 || len(resp.Detections[0]) == 0 {
		return Detection{}, fmt.Errorf("%w: empty detection response", ErrUnavailable)
	}

	item := resp.Detections[0][0]
	return Detection{
		Language:   item.Language,
		Confidence: item.Confidence,
		Reliable:   item.IsReliable,
	}, nil
}

// Translate converts text from source to target.
func (g *GoogleBridge) Translate(ctx context.Context, text, source, target string) (Translation, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	call := g.svc.Translations.List([]string{text}, target).Format("text").Context(ctx)
	if source != "" {
		call = call.Source(source)
	}
	resp, err := call.Do()
	if err != nil {
		return Translation{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Translations) == 0 {
		return Translation{}, fmt.Errorf("%w: empty translation response", ErrUnavailable)
	}

	return Translation{
		Text:   resp.Translations[0].TranslatedText,
		Source: source,
		Target: target,
	}, nil
}
