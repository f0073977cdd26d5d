package factory

import (
	"fmt"

	"ai-study-assistant-be/pkg/llm"
	"ai-study-assistant-be/pkg/llm/groq"
	"ai-study-assistant-be/pkg/llm/ollama"
)

func NewProvider(providerType, modelName, baseURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "groq":
		return groq.NewGroqProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
