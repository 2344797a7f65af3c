package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"research-rag-platform/internal/logger"
	"research-rag-platform/models"
)

// ComprehensiveSummarizer produces one structured, multi-section summary
// over all fetched papers with a single model call.
type ComprehensiveSummarizer struct {
	llm TextGenerator
}

// NewComprehensiveSummarizer creates a summarizer backed by llm.
func NewComprehensiveSummarizer(llm TextGenerator) *ComprehensiveSummarizer {
	return &ComprehensiveSummarizer{llm: llm}
}

const comprehensiveTemperature = 0.7

// Summarize builds the multi-paper prompt, invokes the model and parses
// the structured response. It always returns a usable summary object:
// malformed model output collapses to a single raw-text section, and a
// collaborator failure yields an empty-sections summary plus errMsg.
func (s *ComprehensiveSummarizer) Summarize(ctx context.Context, topic string, papers []models.Paper) (summary *models.ComprehensiveSummary, errMsg string) {
	logger.Info("generating comprehensive summary", "topic", topic, "papers", len(papers))

	raw, err := s.llm.Generate(ctx, buildComprehensivePrompt(topic, papers), comprehensiveTemperature)
	if err != nil {
		logger.Error("comprehensive summary call failed", "error", err)
		return &models.ComprehensiveSummary{Title: topic, Sections: []models.Section{}},
			fmt.Sprintf("Error generating summary: %s", err)
	}

	return parseComprehensiveSummary(topic, raw), ""
}

func buildComprehensivePrompt(topic string, papers []models.Paper) string {
	var papersContent strings.Builder
	for i, paper := range papers {
		fmt.Fprintf(&papersContent, "Paper %d: %s\nAuthors: %s\nAbstract: %s\n\n",
			i+1, paper.Title, paper.Authors, paper.Abstract)
	}

	return fmt.Sprintf(`You are creating a comprehensive Wikipedia-style summary about '%[1]s' based on these research papers.

Create a detailed, well-structured summary with the following sections:

1. **Overview**: A clear introduction explaining what %[1]s is (2-3 paragraphs)
2. **Background and History**: Origins and evolution of this technology (1-2 paragraphs)
3. **Key Concepts and Techniques**: Core principles, methodologies, and approaches (3-4 paragraphs)
4. **Technical Architecture/Methods**: How it works technically (2-3 paragraphs)
5. **Applications and Use Cases**: Real-world applications and implementations (2-3 paragraphs)
6. **Current Research Trends**: Latest developments based on the papers (2-3 paragraphs)
7. **Challenges and Limitations**: Known problems and areas needing improvement (1-2 paragraphs)
8. **Future Directions**: Promising areas for future research (1-2 paragraphs)

Write in a clear, encyclopedic style similar to Wikipedia.
Base your content on the following research papers:

%[2]s
Return the response as a structured JSON with the following format:
{
  "title": "%[1]s",
  "sections": [
    {
      "heading": "Overview",
      "content": "Your detailed content here...",
      "subsections": []
    }
  ]
}

Make sure each section has substantial content. The JSON should be valid and properly formatted.`, topic, papersContent.String())
}

// parseComprehensiveSummary decodes the model output, tolerating a fenced
// code block wrapper. Decode failures and empty section lists both fall
// back to a single section wrapping the raw text.
func parseComprehensiveSummary(topic, raw string) *models.ComprehensiveSummary {
	content := stripCodeFence(strings.TrimSpace(raw))

	fallback := &models.ComprehensiveSummary{
		Title: topic,
		Sections: []models.Section{
			{Heading: "Comprehensive Summary", Content: content, Subsections: []models.SubSection{}},
		},
	}

	var decoded models.ComprehensiveSummary
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		logger.Warn("summary output is not valid JSON, using fallback section", "error", err)
		return fallback
	}
	if len(decoded.Sections) == 0 {
		logger.Warn("summary JSON has no sections, using fallback section")
		return fallback
	}

	if decoded.Title == "" {
		decoded.Title = topic
	}
	for i := range decoded.Sections {
		if decoded.Sections[i].Subsections == nil {
			decoded.Sections[i].Subsections = []models.SubSection{}
		}
	}

	logger.Info("parsed comprehensive summary", "sections", len(decoded.Sections))
	return &decoded
}

// stripCodeFence removes a surrounding triple-backtick fence, with or
// without a language tag.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence line, if any.
	if idx := strings.Index(s, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine != "" && !strings.HasPrefix(firstLine, "{") && !strings.HasPrefix(firstLine, "[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
