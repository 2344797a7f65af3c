package services

import (
	"context"
	"fmt"
	"strings"

	"research-rag-platform/internal/logger"
	"research-rag-platform/models"
)

// RAGQueryEngine answers follow-up questions against a session's vector
// namespace.
type RAGQueryEngine struct {
	embedder Embedder
	index    VectorIndex
	llm      TextGenerator
	topK     int
}

// NewRAGQueryEngine creates a query engine retrieving topK chunks per
// question.
func NewRAGQueryEngine(embedder Embedder, index VectorIndex, llm TextGenerator, topK int) *RAGQueryEngine {
	return &RAGQueryEngine{embedder: embedder, index: index, llm: llm, topK: topK}
}

const (
	answerTemperature = 0.3

	insufficientInfoAnswer = "I don't have enough information in the research papers to answer this question."
)

const groundedPromptTemplate = `You are a careful research assistant.

Answer the question using ONLY the information in the context.
Write a single clear paragraph unless explicitly asked otherwise.

Question:
%s

Context:
%s

If the context is insufficient, clearly say that the answer cannot be determined.

Answer:`

// Query embeds the question, retrieves the nearest chunks from the
// session's namespace and generates a grounded answer. Every failure mode
// resolves to a QueryResult: no matches yields the fixed insufficient
// information answer, and collaborator errors are narrated in the answer
// text with empty sources.
func (e *RAGQueryEngine) Query(ctx context.Context, sessionID, question string) models.QueryResult {
	logger.Info("processing rag query", "session_id", sessionID)

	vector, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return errorResult(err)
	}

	matches, err := e.index.Query(ctx, sessionID, vector, e.topK)
	if err != nil {
		return errorResult(err)
	}

	if len(matches) == 0 {
		return models.QueryResult{Answer: insufficientInfoAnswer, Sources: []models.Source{}}
	}

	var contextParts []string
	var sources []models.Source
	seen := make(map[string]bool)

	for _, match := range matches {
		if text, ok := match.Metadata["text"].(string); ok && text != "" {
			contextParts = append(contextParts, text)
		}

		arxivID, _ := match.Metadata["arxiv_id"].(string)
		if arxivID == "" || seen[arxivID] {
			continue
		}
		seen[arxivID] = true

		title, _ := match.Metadata["title"].(string)
		sources = append(sources, models.Source{
			ArxivID:   arxivID,
			Title:     title,
			Relevance: fmt.Sprintf("Relevance score: %.2f", match.Score),
		})
	}

	prompt := fmt.Sprintf(groundedPromptTemplate, question, strings.Join(contextParts, "\n\n"))
	answer, err := e.llm.Generate(ctx, prompt, answerTemperature)
	if err != nil {
		return errorResult(err)
	}

	return models.QueryResult{Answer: strings.TrimSpace(answer), Sources: sources}
}

func errorResult(err error) models.QueryResult {
	logger.Error("rag query failed", "error", err)
	return models.QueryResult{
		Answer:  fmt.Sprintf("An error occurred while processing your question: %s", err),
		Sources: []models.Source{},
	}
}
