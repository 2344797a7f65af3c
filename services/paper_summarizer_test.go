package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAllPreservesOrder(t *testing.T) {
	llm := &fakeLLM{generate: func(prompt string, _ float32) (string, error) {
		// Echo the title back so each summary is attributable.
		for _, line := range strings.Split(prompt, "\n") {
			if strings.HasPrefix(line, "Title: ") {
				return "Summary of " + strings.TrimPrefix(line, "Title: "), nil
			}
		}
		return "generic summary", nil
	}}

	papers := testPapers(5)
	s := NewPaperSummarizer(llm)
	summaries := s.SummarizeAll(context.Background(), papers)

	require.Len(t, summaries, len(papers))
	for i, summary := range summaries {
		assert.Equal(t, papers[i].Title, summary.Title)
		assert.Equal(t, papers[i].ArxivID, summary.ArxivID)
		assert.Equal(t, "Summary of "+papers[i].Title, summary.Summary)
	}
}

func TestSummarizeAllFallsBackToAbstract(t *testing.T) {
	papers := testPapers(3)
	s := NewPaperSummarizer(failingLLM("model offline"))
	summaries := s.SummarizeAll(context.Background(), papers)

	require.Len(t, summaries, 3)
	for i, summary := range summaries {
		assert.Equal(t, papers[i].Title, summary.Title)
		assert.NotEmpty(t, summary.Summary)
		assert.True(t, strings.HasSuffix(summary.Summary, "..."))
		assert.True(t, strings.HasPrefix(papers[i].Abstract, strings.TrimSuffix(summary.Summary, "...")))
		assert.Len(t, strings.TrimSuffix(summary.Summary, "..."), abstractFallbackMaxChars)
	}
}

func TestSummarizeAllEmptyOutputFallsBack(t *testing.T) {
	papers := testPapers(1)
	s := NewPaperSummarizer(staticLLM(""))
	summaries := s.SummarizeAll(context.Background(), papers)

	require.Len(t, summaries, 1)
	assert.NotEmpty(t, summaries[0].Summary)
}

func TestSummarizeAllNoPapers(t *testing.T) {
	s := NewPaperSummarizer(staticLLM("unused"))
	assert.Nil(t, s.SummarizeAll(context.Background(), nil))
}
