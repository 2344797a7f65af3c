package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"research-rag-platform/internal/logger"
	"research-rag-platform/internal/session"
	"research-rag-platform/models"
	"research-rag-platform/utils"
)

// WorkflowRunner runs the full research pipeline for one topic.
type WorkflowRunner interface {
	Run(ctx context.Context, topic string) models.ResearchState
}

// QueryEngine answers a follow-up question against a session's index.
type QueryEngine interface {
	Query(ctx context.Context, sessionID, question string) models.QueryResult
}

// SetupResearchRoutes registers the research API endpoints.
func SetupResearchRoutes(router *gin.Engine, wf WorkflowRunner, engine QueryEngine, store session.Store) {
	api := router.Group("/api")

	api.POST("/process-topic", func(c *gin.Context) {
		var req models.ProcessTopicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		state := wf.Run(c.Request.Context(), req.Topic)

		resp := models.ProcessTopicResponse{
			IsValidAITopic:       state.IsValidAITopic,
			ComprehensiveSummary: state.Summary,
			Papers:               state.Papers,
			PaperSummaries:       state.PaperSummaries,
			RAGReady:             state.RAGReady,
			Error:                strPtr(state.Err),
			RAGProgress:          strPtr(state.RAGProgress),
		}
		if resp.Papers == nil {
			resp.Papers = []models.Paper{}
		}

		if state.IsValidAITopic && state.SessionID != "" {
			if err := store.Put(c.Request.Context(), state.SessionID, session.Data{
				Topic:    state.Topic,
				Papers:   state.Papers,
				RAGReady: state.RAGReady,
			}); err != nil {
				logger.Error("failed to persist session", "session_id", state.SessionID, "error", err)
				utils.RespondWithInternalError(c, "Failed to persist research session", nil)
				return
			}
			resp.SessionID = &state.SessionID
		}

		c.JSON(http.StatusOK, resp)
	})

	api.POST("/query-rag", func(c *gin.Context) {
		var req models.QueryRAGRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		data, err := store.Get(c.Request.Context(), req.SessionID)
		if errors.Is(err, session.ErrNotFound) {
			utils.RespondWithNotFound(c, "Session not found or expired. Please process a topic first.")
			return
		}
		if err != nil {
			logger.Error("session lookup failed", "session_id", req.SessionID, "error", err)
			utils.RespondWithInternalError(c, "Failed to load research session", nil)
			return
		}

		if !data.RAGReady {
			msg := "The research index for this session is not ready yet. Please try again in a moment."
			c.JSON(http.StatusOK, models.QueryRAGResponse{
				Answer:  msg,
				Sources: []models.Source{},
				Error:   strPtr("rag index not ready"),
			})
			return
		}

		result := engine.Query(c.Request.Context(), req.SessionID, req.Question)
		if result.Sources == nil {
			result.Sources = []models.Source{}
		}
		c.JSON(http.StatusOK, models.QueryRAGResponse{
			Answer:  result.Answer,
			Sources: result.Sources,
		})
	})
}

// strPtr maps the state convention (empty string means absent) onto the
// response convention (null means absent).
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
