package llmclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponseStripsFences(t *testing.T) {
	raw := "```json\n[{\"name\":\"Louvre\"}]\n```"
	assert.Equal(t, `[{"name":"Louvre"}]`, cleanJSONResponse(raw))
}

func TestCleanJSONResponseStripsProse(t *testing.T) {
	raw := `Here are some ideas:
[{"name":"Louvre","description":"Art museum."}]
Hope this helps!`
	cleaned := cleanJSONResponse(raw)
	assert.Equal(t, `[{"name":"Louvre","description":"Art museum."}]`, cleaned)

	var out []Suggestion
	require.NoError(t, json.Unmarshal([]byte(cleaned), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Louvre", out[0].Name)
}

func TestCleanJSONResponseHandlesBracketsInStrings(t *testing.T) {
	raw := `[{"name":"Arc [de] Triomphe","description":"Monument with \"quoted\" text."}] trailing`
	cleaned := cleanJSONResponse(raw)

	var out []Suggestion
	require.NoError(t, json.Unmarshal([]byte(cleaned), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Arc [de] Triomphe", out[0].Name)
}

func TestCleanJSONResponsePassesThroughNonArray(t *testing.T) {
	assert.Equal(t, `{"name":"Louvre"}`, cleanJSONResponse(`{"name":"Louvre"}`))
}

func TestFindMatchingBracket(t *testing.T) {
	s := `[[1,2],[3,4]] tail`
	assert.Equal(t, 12, findMatchingBracket(s, 0))
	assert.Equal(t, 5, findMatchingBracket(s, 1))
	assert.Equal(t, -1, findMatchingBracket(`[1,2`, 0))
}

func TestBuildSuggestionPromptIncludesConstraints(t *testing.T) {
	prompt := buildSuggestionPrompt(SuggestionQuery{
		Destination:     "Paris",
		Count:           5,
		Day:             2,
		Anchors:         []string{"Sainte-Chapelle"},
		Exclude:         []string{"Louvre", "Eiffel Tower"},
		WithKids:        true,
		KidsAges:        []int{4, 9},
		WithElderly:     true,
		SpecialRequests: "prefer outdoor spots",
	})

	assert.Contains(t, prompt, "Suggest 5 real, well-known tourist landmarks in Paris")
	assert.Contains(t, prompt, "day 2 of the trip")
	assert.Contains(t, prompt, "already includes Sainte-Chapelle")
	assert.Contains(t, prompt, "Louvre; Eiffel Tower")
	assert.Contains(t, prompt, "kids aged 4, 9")
	assert.Contains(t, prompt, "elderly companions")
	assert.Contains(t, prompt, "prefer outdoor spots")
	assert.Contains(t, prompt, "Return JSON only")
}

func TestBuildSuggestionPromptDistinctPerDay(t *testing.T) {
	base := SuggestionQuery{Destination: "Rome", Count: 3, Exclude: []string{"Colosseum"}}

	dayOne, dayTwo := base, base
	dayOne.Day, dayOne.Anchors = 1, []string{"Pantheon"}
	dayTwo.Day, dayTwo.Anchors = 2, []string{"Trastevere"}

	assert.NotEqual(t, buildSuggestionPrompt(dayOne), buildSuggestionPrompt(dayTwo))
}

func TestBuildSuggestionPromptOmitsAbsentConstraints(t *testing.T) {
	prompt := buildSuggestionPrompt(SuggestionQuery{Destination: "Rome", Count: 3})

	assert.NotContains(t, prompt, "already planned")
	assert.NotContains(t, prompt, "already includes")
	assert.NotContains(t, prompt, "day ")
	assert.NotContains(t, prompt, "kids")
	assert.NotContains(t, prompt, "elderly")
}

func TestNewLandmarkClientRejectsUnknownProvider(t *testing.T) {
	_, err := NewLandmarkClient("cohere", "key", "")
	assert.Error(t, err)
}
