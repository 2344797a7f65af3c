package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-rag-platform/models"
)

func validSummaryJSON(t *testing.T) string {
	t.Helper()
	summary := models.ComprehensiveSummary{
		Title: "Transformers",
		Sections: []models.Section{
			{Heading: "Overview", Content: "Transformers are sequence models."},
			{Heading: "Background and History", Content: "Introduced in 2017."},
		},
	}
	raw, err := json.Marshal(summary)
	require.NoError(t, err)
	return string(raw)
}

func TestSummarizeParsesStructuredJSON(t *testing.T) {
	s := NewComprehensiveSummarizer(staticLLM(validSummaryJSON(t)))
	summary, errMsg := s.Summarize(context.Background(), "transformers", testPapers(5))

	assert.Empty(t, errMsg)
	require.NotNil(t, summary)
	assert.Equal(t, "Transformers", summary.Title)
	require.Len(t, summary.Sections, 2)
	assert.Equal(t, "Overview", summary.Sections[0].Heading)
	assert.NotNil(t, summary.Sections[0].Subsections)
}

func TestSummarizeStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validSummaryJSON(t) + "\n```"
	s := NewComprehensiveSummarizer(staticLLM(fenced))
	summary, errMsg := s.Summarize(context.Background(), "transformers", testPapers(5))

	assert.Empty(t, errMsg)
	require.Len(t, summary.Sections, 2)
}

func TestSummarizeStripsBareFence(t *testing.T) {
	fenced := "```\n" + validSummaryJSON(t) + "\n```"
	s := NewComprehensiveSummarizer(staticLLM(fenced))
	summary, _ := s.Summarize(context.Background(), "transformers", testPapers(5))
	require.Len(t, summary.Sections, 2)
}

func TestSummarizeMalformedOutputFallsBack(t *testing.T) {
	raw := "Transformers are neural networks based on attention."
	s := NewComprehensiveSummarizer(staticLLM(raw))
	summary, errMsg := s.Summarize(context.Background(), "transformers", testPapers(5))

	assert.Empty(t, errMsg)
	require.Len(t, summary.Sections, 1)
	assert.Equal(t, "Comprehensive Summary", summary.Sections[0].Heading)
	assert.Equal(t, raw, summary.Sections[0].Content)
	assert.Equal(t, "transformers", summary.Title)
}

func TestSummarizeEmptySectionsFallsBack(t *testing.T) {
	raw := `{"title":"Transformers","sections":[]}`
	s := NewComprehensiveSummarizer(staticLLM(raw))
	summary, errMsg := s.Summarize(context.Background(), "transformers", testPapers(5))

	assert.Empty(t, errMsg)
	require.Len(t, summary.Sections, 1)
	assert.Equal(t, "Comprehensive Summary", summary.Sections[0].Heading)
	assert.Equal(t, raw, summary.Sections[0].Content)
}

func TestSummarizeCollaboratorFailure(t *testing.T) {
	s := NewComprehensiveSummarizer(failingLLM("credential missing"))
	summary, errMsg := s.Summarize(context.Background(), "transformers", testPapers(5))

	require.NotNil(t, summary)
	assert.Empty(t, summary.Sections)
	assert.Equal(t, "transformers", summary.Title)
	assert.Contains(t, errMsg, "credential missing")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```{\"a\":1}```", "{\"a\":1}"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in), "input %q", tt.in)
	}
}
