package ai

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

// GeminiEmbedder produces fixed-dimension, unit-normalized embeddings with
// the Gemini embeddings API. The same embedder instance is shared between
// indexing and querying so both sides use one embedding convention.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	dim    int
}

// NewGeminiEmbedder creates an embedder truncated to dim dimensions.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dim int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY for embeddings")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini embeddings client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model, dim: dim}, nil
}

// Embed returns the unit-normalized vector for text, truncated to the
// configured dimension. text-embedding-004 vectors are Matryoshka-trained,
// so a prefix truncation plus renormalization stays a valid embedding.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	model := e.client.EmbeddingModel(e.model)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vec := resp.Embedding.Values
	if len(vec) > e.dim {
		vec = vec[:e.dim]
	}
	return Normalize(vec), nil
}

// Dimension reports the vector size this embedder produces.
func (e *GeminiEmbedder) Dimension() int { return e.dim }

// Close releases the underlying API client.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Normalize scales vec to unit length. A zero vector is returned unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
