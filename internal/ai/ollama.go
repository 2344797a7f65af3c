package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient generates text with a small local model served by Ollama.
// The pipeline uses it for the per-paper summaries, which are numerous and
// cheap, keeping the hosted API budget for the heavier calls.
type OllamaClient struct {
	llm *ollama.LLM
}

// NewOllamaClient connects to an Ollama server for the given model.
func NewOllamaClient(model, serverURL string) (*OllamaClient, error) {
	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaClient{llm: llm}, nil
}

// Generate sends a single prompt and returns the trimmed completion.
func (oc *OllamaClient) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, oc.llm, prompt,
		llms.WithTemperature(float64(temperature)),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(completion), nil
}
