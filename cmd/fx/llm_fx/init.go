package llm_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"voyago/pkg/llmclient"
)

var Module = fx.Provide(provideLandmarkClient)

func provideLandmarkClient() llmclient.LandmarkClientInterface {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	client, err := llmclient.NewLandmarkClient(
		provider,
		os.Getenv("LLM_API_KEY"),
		os.Getenv("LLM_MODEL"),
	)
	if err != nil {
		log.Fatalf("Failed to create landmark client: %v", err)
	}
	return client
}
