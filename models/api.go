package models

// ProcessTopicRequest is the body of POST /api/process-topic.
type ProcessTopicRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// ProcessTopicResponse is the full pipeline result for one topic. Fields
// are best-effort: a failed stage leaves its field empty and populates
// Error instead of failing the request.
type ProcessTopicResponse struct {
	IsValidAITopic       bool                  `json:"is_valid_ai_topic"`
	ComprehensiveSummary *ComprehensiveSummary `json:"comprehensive_summary"`
	Papers               []Paper               `json:"papers"`
	PaperSummaries       []PaperSummary        `json:"paper_summaries,omitempty"`
	SessionID            *string               `json:"session_id"`
	RAGReady             bool                  `json:"rag_ready"`
	Error                *string               `json:"error"`
	RAGProgress          *string               `json:"rag_progress"`
}

// QueryRAGRequest is the body of POST /api/query-rag.
type QueryRAGRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

// QueryRAGResponse carries the grounded answer for a follow-up question.
type QueryRAGResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	Error   *string  `json:"error"`
}
