// Package services implements the research pipeline stages: topic
// validation, paper fetching, summarization, RAG index building and RAG
// querying, plus the workflow graph that ties them together.
package services

import (
	"context"

	"research-rag-platform/internal/vectorindex"
	"research-rag-platform/models"
)

// TextGenerator is a text-generation collaborator (Gemini, Ollama, or a
// test fake). Implementations contain their own transport concerns; stages
// treat any returned error as a recoverable collaborator failure.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Embedder turns text into a fixed-length, unit-normalized vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// VectorIndex is a namespaced external vector store.
type VectorIndex interface {
	Upsert(ctx context.Context, namespace string, vectors []vectorindex.Vector) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorindex.Match, error)
}

// PaperSearcher is a ranked document search backend.
type PaperSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Paper, error)
}
