package models

// Paper is a single arXiv search result, normalized for the pipeline.
// Papers are created by the fetcher and read-only afterwards.
type Paper struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Abstract string `json:"abstract"`
	ArxivID  string `json:"arxiv_id"`
	URL      string `json:"url"`
	PDFURL   string `json:"pdf_url,omitempty"`
	// Published is the RFC3339 publication timestamp when the feed carries one.
	Published string `json:"published,omitempty"`
}

// SubSection is a nested block inside a summary section.
type SubSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Section is one named block of the comprehensive summary.
type Section struct {
	Heading     string       `json:"heading"`
	Content     string       `json:"content"`
	Subsections []SubSection `json:"subsections"`
}

// ComprehensiveSummary is the structured multi-section summary generated
// over all fetched papers. When structured parsing of the model output
// fails it collapses to a single section wrapping the raw text.
type ComprehensiveSummary struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// PaperSummary is a per-paper prose summary. When generation fails the
// Summary field carries a truncated copy of the abstract instead.
type PaperSummary struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Summary string `json:"summary"`
	ArxivID string `json:"arxiv_id"`
	URL     string `json:"url"`
}

// Source identifies a paper that contributed retrieved context to a RAG
// answer, with a human-readable relevance score.
type Source struct {
	ArxivID   string `json:"arxiv_id"`
	Title     string `json:"title"`
	Relevance string `json:"relevance"`
}

// QueryResult is the outcome of one RAG query: a grounded answer plus the
// contributing papers, deduplicated by arXiv id.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
