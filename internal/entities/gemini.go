package entities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const extractionPrompt = "You label health-related entities in user messages. " +
	"Reply with a comma-separated list of the symptoms, conditions, medications " +
	"and body parts mentioned, lowercased. Reply with NONE when there are none. " +
	"Do not add anything else."

// GeminiExtractor asks a Gemini model to label health entities. It falls
// back to the lexicon when the model call fails, so extraction never blocks
// a reply.
type GeminiExtractor struct {
	client   *genai.Client
	modelID  string
	fallback LexiconExtractor
}

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(ctx context.Context, apiKey, modelID string) (*GeminiExtractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("entities: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("entities: failed to create gemini client: %w", err)
	}

	return &GeminiExtractor{client: client, modelID: modelID}, nil
}

// Extract labels entities in text.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	model := g.client.GenerativeModel(g.modelID)
	model.SetTemperature(0)
	model.SystemInstruction = genai.NewUserContent(genai.Text(extractionPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return g.fallback.Extract(ctx, text)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return g.fallback.Extract(ctx, text)
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			out.WriteString(string(t))
		}
	}
	return parseEntityList(out.String()), nil
}

// Close releases resources held by the Gemini client.
func (g *GeminiExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func parseEntityList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "NONE") {
		return nil
	}

	var (
		found []string
		seen  = make(map[string]struct{})
	)
	for _, part := range strings.Split(raw, ",") {
		entity := strings.ToLower(strings.TrimSpace(part))
		if entity == "" {
			continue
		}
		if _, ok := seen[entity]; ok {
			continue
		}
		seen[entity] = struct{}{}
		found = append(found, entity)
	}
	return found
}
