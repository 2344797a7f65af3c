package services

import (
	"context"
	"fmt"
	"strings"

	"research-rag-platform/internal/logger"
)

// TopicValidator classifies a free-text topic as AI-related or not with a
// single deterministic yes/no model call.
type TopicValidator struct {
	llm TextGenerator
}

// NewTopicValidator creates a TopicValidator backed by llm.
func NewTopicValidator(llm TextGenerator) *TopicValidator {
	return &TopicValidator{llm: llm}
}

const validationPromptTemplate = `Determine if the following topic is strictly related to AI/Machine Learning/Deep Learning/Natural Language Processing or any AI technology.
Respond with only 'YES' or 'NO': %s`

// Validate returns whether topic is in domain. When it is not (or the
// collaborator fails), reason carries the user-facing explanation; the
// pipeline never crashes on this step.
func (v *TopicValidator) Validate(ctx context.Context, topic string) (valid bool, reason string) {
	logger.Info("validating topic", "topic", topic)

	answer, err := v.llm.Generate(ctx, fmt.Sprintf(validationPromptTemplate, topic), 0)
	if err != nil {
		logger.Error("topic validation call failed", "error", err)
		return false, fmt.Sprintf("Error validating topic: %s", err)
	}

	if strings.EqualFold(strings.TrimSpace(answer), "YES") {
		return true, ""
	}

	return false, fmt.Sprintf("The topic '%s' is not related to AI/Machine Learning technology. "+
		"Please enter a topic related to Artificial Intelligence, Machine Learning, Deep Learning, "+
		"Natural Language Processing, Computer Vision, or similar AI technologies.", topic)
}
