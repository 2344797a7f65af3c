package services

import (
	"context"
	"fmt"

	"research-rag-platform/internal/logger"
	"research-rag-platform/models"
)

// PaperFetcher retrieves the top-K most relevant papers for a topic from a
// ranked search backend.
type PaperFetcher struct {
	searcher   PaperSearcher
	maxResults int
}

// NewPaperFetcher creates a fetcher requesting up to maxResults papers.
func NewPaperFetcher(searcher PaperSearcher, maxResults int) *PaperFetcher {
	return &PaperFetcher{searcher: searcher, maxResults: maxResults}
}

// Fetch returns the ranked papers for topic. A backend failure is reported
// through errMsg with an empty paper list; zero results is not a failure
// but yields the user-visible "no papers found" message.
func (f *PaperFetcher) Fetch(ctx context.Context, topic string) (papers []models.Paper, errMsg string) {
	logger.Info("fetching papers", "topic", topic, "max_results", f.maxResults)

	papers, err := f.searcher.Search(ctx, topic, f.maxResults)
	if err != nil {
		logger.Error("paper fetch failed", "topic", topic, "error", err)
		return nil, fmt.Sprintf("Error fetching papers: %s", err)
	}

	logger.Info("fetched papers", "topic", topic, "count", len(papers))
	if len(papers) == 0 {
		return nil, "No research papers found for this topic."
	}
	return papers, ""
}
