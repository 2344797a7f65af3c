package services

import (
	"context"
	"fmt"
	"sync"

	"research-rag-platform/internal/logger"
	"research-rag-platform/internal/textutil"
	"research-rag-platform/models"
)

// PaperSummarizer generates a short prose summary per paper on a small,
// cheap model. Papers are summarized concurrently; the output list always
// has one entry per input paper, in input order.
type PaperSummarizer struct {
	llm TextGenerator
}

// NewPaperSummarizer creates a per-paper summarizer backed by llm.
func NewPaperSummarizer(llm TextGenerator) *PaperSummarizer {
	return &PaperSummarizer{llm: llm}
}

const (
	paperSummaryTemperature  = 0.5
	abstractFallbackMaxChars = 500
)

const paperSummaryPromptTemplate = `Provide a detailed 5-7 sentence summary of this research paper that covers:
- Main research question/problem
- Methodology used
- Key findings
- Significance of the work

Title: %s
Authors: %s
Abstract: %s

Provide only the summary, no additional text.`

// SummarizeAll summarizes every paper. A failed model call substitutes a
// truncated copy of that paper's abstract, so the result never shrinks.
func (s *PaperSummarizer) SummarizeAll(ctx context.Context, papers []models.Paper) []models.PaperSummary {
	if len(papers) == 0 {
		return nil
	}
	logger.Info("generating per-paper summaries", "papers", len(papers))

	summaries := make([]models.PaperSummary, len(papers))
	var wg sync.WaitGroup

	for i, paper := range papers {
		wg.Add(1)
		go func(i int, paper models.Paper) {
			defer wg.Done()
			summaries[i] = s.summarizeOne(ctx, paper)
		}(i, paper)
	}
	wg.Wait()

	return summaries
}

func (s *PaperSummarizer) summarizeOne(ctx context.Context, paper models.Paper) models.PaperSummary {
	result := models.PaperSummary{
		Title:   paper.Title,
		Authors: paper.Authors,
		ArxivID: paper.ArxivID,
		URL:     paper.URL,
	}

	prompt := fmt.Sprintf(paperSummaryPromptTemplate, paper.Title, paper.Authors, paper.Abstract)
	summary, err := s.llm.Generate(ctx, prompt, paperSummaryTemperature)
	if err != nil || summary == "" {
		logger.Warn("paper summary failed, falling back to abstract", "arxiv_id", paper.ArxivID, "error", err)
		result.Summary = textutil.Truncate(paper.Abstract, abstractFallbackMaxChars)
		return result
	}

	result.Summary = summary
	return result
}
