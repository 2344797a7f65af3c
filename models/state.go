package models

// ResearchState is the state flowing through the research workflow graph.
// Parallel branches each return their own copy; the workflow's state merger
// combines them field by field (see services.mergeStates for the per-field
// merge policies).
type ResearchState struct {
	Topic          string
	IsValidAITopic bool
	Papers         []Paper
	Summary        *ComprehensiveSummary
	PaperSummaries []PaperSummary
	SessionID      string
	RAGReady       bool
	RAGProgress    string
	Err            string
}
