package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// DefaultModelName is the structured-extraction model used when the config
// does not name one.
const DefaultModelName = "gemini-2.0-flash"

// ModelExtractor sends the raw text to a generative model with a fixed
// instruction and parses the strict-JSON reply. No retry: the caller bounds
// the call with its context and falls back to the heuristic on any error.
type ModelExtractor struct {
	client *genai.Client
	model  string
}

func NewModelExtractor(ctx context.Context, model string) (*ModelExtractor, error) {
	if model == "" {
		model = DefaultModelName
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &ModelExtractor{client: client, model: model}, nil
}

// Model reports the model name in use.
func (m *ModelExtractor) Model() string {
	return m.model
}

func (m *ModelExtractor) Extract(ctx context.Context, rawText string) (Draft, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: extractionPrompt + rawText}},
		},
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, nil)
	if err != nil {
		return Draft{}, fmt.Errorf("generate content: %w", err)
	}

	rawJSON := resp.Text()
	if rawJSON == "" {
		return Draft{}, fmt.Errorf("empty response from model %s", m.model)
	}

	var d Draft
	if err := json.Unmarshal([]byte(cleanModelJSON(rawJSON)), &d); err != nil {
		return Draft{}, fmt.Errorf("unmarshal extraction JSON: %w", err)
	}

	slog.DebugContext(ctx, "Model extraction succeeded",
		"model", m.model,
		"amount", d.Amount,
		"category", d.Category)

	return complete(d, time.Now()), nil
}
