package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smallnest/langgraphgo/graph"

	"research-rag-platform/internal/logger"
	"research-rag-platform/models"
)

// Workflow wires the pipeline stages into a state graph:
//
//	validate_topic -> fetch_papers -> dispatch -> { comprehensive_summary,
//	                                               paper_summaries,
//	                                               rag_build } -> END
//
// Validation and fetch gate the rest through conditional edges; the three
// stages after dispatch are independent and run in parallel. No retry
// policy is set anywhere: every external failure degrades in place.
type Workflow struct {
	runnable *graph.StateRunnable[models.ResearchState]
}

// NewWorkflow builds and compiles the research graph.
func NewWorkflow(
	validator *TopicValidator,
	fetcher *PaperFetcher,
	summarizer *ComprehensiveSummarizer,
	paperSummarizer *PaperSummarizer,
	builder *RAGBuilder,
) (*Workflow, error) {
	g := graph.NewStateGraph[models.ResearchState]()

	g.AddNode("validate_topic", "Classify the topic as AI-related or not",
		func(ctx context.Context, state models.ResearchState) (models.ResearchState, error) {
			valid, reason := validator.Validate(ctx, state.Topic)
			state.IsValidAITopic = valid
			state.Err = reason
			return state, nil
		})

	g.AddNode("fetch_papers", "Fetch the top relevant papers",
		func(ctx context.Context, state models.ResearchState) (models.ResearchState, error) {
			papers, errMsg := fetcher.Fetch(ctx, state.Topic)
			state.Papers = papers
			state.Err = errMsg
			return state, nil
		})

	// Fan-out point: its three static edges run the successors in parallel.
	g.AddNode("dispatch", "Dispatch fetched papers to the processing stages",
		func(ctx context.Context, state models.ResearchState) (models.ResearchState, error) {
			return state, nil
		})

	g.AddNode("comprehensive_summary", "Generate the structured multi-paper summary",
		func(ctx context.Context, state models.ResearchState) (models.ResearchState, error) {
			summary, errMsg := summarizer.Summarize(ctx, state.Topic, state.Papers)
			state.Summary = summary
			state.Err = errMsg
			return state, nil
		})

	g.AddNode("paper_summaries", "Generate one short summary per paper",
		func(ctx context.Context, state models.ResearchState) (models.ResearchState, error) {
			state.PaperSummaries = paperSummarizer.SummarizeAll(ctx, state.Papers)
			return state, nil
		})

	g.AddNode("rag_build", "Embed and index the papers for follow-up questions",
		func(ctx context.Context, state models.ResearchState) (models.ResearchState, error) {
			if err := builder.Build(ctx, state.SessionID, state.Papers); err != nil {
				logger.Error("rag build failed", "session_id", state.SessionID, "error", err)
				state.Err = fmt.Sprintf("Error building RAG index: %s", err)
				return state, nil
			}
			state.RAGReady = true
			state.RAGProgress = "ready"
			return state, nil
		})

	g.SetEntryPoint("validate_topic")

	g.AddConditionalEdge("validate_topic", func(ctx context.Context, state models.ResearchState) string {
		if state.IsValidAITopic {
			return "fetch_papers"
		}
		return graph.END
	})

	g.AddConditionalEdge("fetch_papers", func(ctx context.Context, state models.ResearchState) string {
		if len(state.Papers) > 0 {
			return "dispatch"
		}
		return graph.END
	})

	g.AddEdge("dispatch", "comprehensive_summary")
	g.AddEdge("dispatch", "paper_summaries")
	g.AddEdge("dispatch", "rag_build")
	g.AddEdge("comprehensive_summary", graph.END)
	g.AddEdge("paper_summaries", graph.END)
	g.AddEdge("rag_build", graph.END)

	g.SetStateMerger(mergeStates)

	runnable, err := g.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile research graph: %w", err)
	}
	return &Workflow{runnable: runnable}, nil
}

// Run executes the full pipeline for topic under a fresh session id. The
// returned state always reflects best-effort partial results; it never
// carries a fault across the workflow boundary.
func (w *Workflow) Run(ctx context.Context, topic string) models.ResearchState {
	sessionID := uuid.NewString()
	logger.Info("starting research workflow", "topic", topic, "session_id", sessionID)

	initial := models.ResearchState{
		Topic:     topic,
		SessionID: sessionID,
	}

	final, err := w.runnable.Invoke(ctx, initial)
	if err != nil {
		logger.Error("workflow invocation failed", "error", err)
		return models.ResearchState{
			Topic: topic,
			Err:   fmt.Sprintf("Workflow error: %s", err),
		}
	}

	if !final.IsValidAITopic {
		// Rejected topics expose no session: nothing was indexed.
		return models.ResearchState{
			Topic:          topic,
			IsValidAITopic: false,
			Err:            final.Err,
		}
	}
	return final
}

// mergeStates folds the results of one graph step into the current state.
// Per-field merge policies:
//
//	Topic, SessionID, RAGProgress, Err  last non-empty write wins
//	IsValidAITopic, RAGReady            sticky once true
//	Papers, PaperSummaries              prefer non-empty
//	Summary                             prefer the one carrying sections
func mergeStates(_ context.Context, current models.ResearchState, results []models.ResearchState) (models.ResearchState, error) {
	merged := current
	for _, r := range results {
		merged = reduceState(merged, r)
	}
	return merged, nil
}

func reduceState(cur, next models.ResearchState) models.ResearchState {
	if next.Topic != "" {
		cur.Topic = next.Topic
	}
	if next.SessionID != "" {
		cur.SessionID = next.SessionID
	}
	if next.IsValidAITopic {
		cur.IsValidAITopic = true
	}
	if len(next.Papers) > 0 {
		cur.Papers = next.Papers
	}
	if next.Summary != nil && len(next.Summary.Sections) > 0 {
		cur.Summary = next.Summary
	}
	if len(next.PaperSummaries) > 0 {
		cur.PaperSummaries = next.PaperSummaries
	}
	if next.RAGReady {
		cur.RAGReady = true
	}
	if next.RAGProgress != "" {
		cur.RAGProgress = next.RAGProgress
	}
	if next.Err != "" {
		cur.Err = next.Err
	}
	return cur
}
