package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

type OpenAILandmarkClient struct {
	client *openai.Client
	model  string
}

func NewOpenAILandmarkClient(apiKey, model string) *OpenAILandmarkClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAILandmarkClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAILandmarkClient) SuggestLandmarks(ctx context.Context, query SuggestionQuery) ([]Suggestion, error) {
	if query.Count < 1 {
		return nil, fmt.Errorf("bad count")
	}
	if strings.TrimSpace(query.Destination) == "" {
		return nil, fmt.Errorf("empty destination")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a travel planner. You answer with JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildSuggestionPrompt(query),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("openai: invalid suggestion payload: %w", err)
	}
	return suggestions, nil
}

func (c *OpenAILandmarkClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAILandmarkClient) Close() error {
	return nil
}
