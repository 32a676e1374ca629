package llmclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// Suggestion is one landmark candidate returned by a generative provider.
type Suggestion struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// SuggestionQuery carries everything a provider needs to produce candidates.
// Day and Anchors give the provider per-day context so each day of a trip
// gets a distinct prompt instead of the same one with a longer exclusion list.
type SuggestionQuery struct {
	Destination     string
	Count           int
	Day             int
	Anchors         []string
	Exclude         []string
	WithKids        bool
	KidsAges        []int
	WithElderly     bool
	SpecialRequests string
}

type LandmarkClientInterface interface {
	SuggestLandmarks(ctx context.Context, query SuggestionQuery) ([]Suggestion, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	Close() error
}

// NewLandmarkClient creates either an OpenAI or Gemini client based on config.
func NewLandmarkClient(provider, apiKey, model string) (LandmarkClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAILandmarkClient(apiKey, model), nil
	case "gemini":
		return NewGeminiLandmarkClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func buildSuggestionPrompt(q SuggestionQuery) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Suggest %d real, well-known tourist landmarks in %s. Return JSON only:\n", q.Count, q.Destination)
	b.WriteString(`[{"name":"...","description":"one or two sentences","duration":"2h","latitude":0.0,"longitude":0.0}]`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- duration is the typical visit length, like \"45m\", \"1h\" or \"1.5h\".\n")
	b.WriteString("- coordinates must be the landmark's real location.\n")
	b.WriteString("- no restaurants, no hotels.\n")

	if q.Day > 0 {
		fmt.Fprintf(&b, "- these are for day %d of the trip.\n", q.Day)
	}
	if len(q.Anchors) > 0 {
		fmt.Fprintf(&b, "- the day already includes %s; suggest places that pair well with them.\n", strings.Join(q.Anchors, "; "))
	}
	if len(q.Exclude) > 0 {
		fmt.Fprintf(&b, "- do NOT suggest any of these (already planned): %s.\n", strings.Join(q.Exclude, "; "))
	}
	if q.WithKids {
		if len(q.KidsAges) > 0 {
			ages := make([]string, len(q.KidsAges))
			for i, a := range q.KidsAges {
				ages[i] = fmt.Sprintf("%d", a)
			}
			fmt.Fprintf(&b, "- traveling with kids aged %s, prefer family-friendly places.\n", strings.Join(ages, ", "))
		} else {
			b.WriteString("- traveling with kids, prefer family-friendly places.\n")
		}
	}
	if q.WithElderly {
		b.WriteString("- traveling with elderly companions, avoid physically demanding places.\n")
	}
	if strings.TrimSpace(q.SpecialRequests) != "" {
		fmt.Fprintf(&b, "- traveler notes: %s\n", q.SpecialRequests)
	}

	b.WriteString("\nReturn JSON only. No comments, no markdown.")
	return b.String()
}

// cleanJSONResponse strips markdown fences and anything outside the outermost
// JSON array. Providers occasionally wrap output despite the instructions.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "[")
	if start == -1 {
		return response
	}
	end := findMatchingBracket(response, start)
	if end == -1 {
		return response
	}
	return strings.TrimSpace(response[start : end+1])
}

func findMatchingBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
