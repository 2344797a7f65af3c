package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-rag-platform/internal/session"
	"research-rag-platform/models"
)

type fakeWorkflow struct {
	state models.ResearchState
}

func (f *fakeWorkflow) Run(_ context.Context, topic string) models.ResearchState {
	state := f.state
	state.Topic = topic
	return state
}

type fakeEngine struct {
	result models.QueryResult
}

func (f *fakeEngine) Query(_ context.Context, sessionID, question string) models.QueryResult {
	return f.result
}

func newTestRouter(wf WorkflowRunner, engine QueryEngine, store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupResearchRoutes(router, wf, engine, store)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProcessTopicSuccess(t *testing.T) {
	store := session.NewMemoryStore(24 * time.Hour)
	wf := &fakeWorkflow{state: models.ResearchState{
		IsValidAITopic: true,
		SessionID:      "sess-42",
		Papers:         []models.Paper{{Title: "Attention Is All You Need", ArxivID: "1706.03762"}},
		Summary: &models.ComprehensiveSummary{
			Title:    "Transformers",
			Sections: []models.Section{{Heading: "Overview", Content: "text"}},
		},
		PaperSummaries: []models.PaperSummary{{ArxivID: "1706.03762", Summary: "short"}},
		RAGReady:       true,
		RAGProgress:    "ready",
	}}

	router := newTestRouter(wf, &fakeEngine{}, store)
	rec := postJSON(t, router, "/api/process-topic", gin.H{"topic": "transformers"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ProcessTopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.IsValidAITopic)
	require.NotNil(t, resp.SessionID)
	assert.Equal(t, "sess-42", *resp.SessionID)
	assert.True(t, resp.RAGReady)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.ComprehensiveSummary)
	assert.Len(t, resp.Papers, 1)
	assert.Len(t, resp.PaperSummaries, 1)

	// The session must be retrievable for follow-up questions.
	data, err := store.Get(context.Background(), "sess-42")
	require.NoError(t, err)
	assert.True(t, data.RAGReady)
	assert.Equal(t, "transformers", data.Topic)
}

func TestProcessTopicRejected(t *testing.T) {
	store := session.NewMemoryStore(24 * time.Hour)
	wf := &fakeWorkflow{state: models.ResearchState{
		IsValidAITopic: false,
		Err:            "The topic 'gardening' is not related to AI/Machine Learning technology.",
	}}

	router := newTestRouter(wf, &fakeEngine{}, store)
	rec := postJSON(t, router, "/api/process-topic", gin.H{"topic": "gardening"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ProcessTopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.IsValidAITopic)
	assert.Nil(t, resp.SessionID)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "gardening")
	assert.NotNil(t, resp.Papers)
	assert.Empty(t, resp.Papers)
	assert.Equal(t, 0, store.Len())
}

func TestProcessTopicMissingBody(t *testing.T) {
	router := newTestRouter(&fakeWorkflow{}, &fakeEngine{}, session.NewMemoryStore(time.Hour))
	rec := postJSON(t, router, "/api/process-topic", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryRAGSuccess(t *testing.T) {
	store := session.NewMemoryStore(24 * time.Hour)
	require.NoError(t, store.Put(context.Background(), "sess-1", session.Data{Topic: "transformers", RAGReady: true}))

	engine := &fakeEngine{result: models.QueryResult{
		Answer: "Self-attention relates all positions.",
		Sources: []models.Source{
			{ArxivID: "1706.03762", Title: "Attention Is All You Need", Relevance: "Relevance score: 0.91"},
		},
	}}

	router := newTestRouter(&fakeWorkflow{}, engine, store)
	rec := postJSON(t, router, "/api/query-rag", gin.H{"session_id": "sess-1", "question": "how does attention work?"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.QueryRAGResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Self-attention relates all positions.", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "1706.03762", resp.Sources[0].ArxivID)
	assert.Nil(t, resp.Error)
}

func TestQueryRAGUnknownSession(t *testing.T) {
	router := newTestRouter(&fakeWorkflow{}, &fakeEngine{}, session.NewMemoryStore(time.Hour))
	rec := postJSON(t, router, "/api/query-rag", gin.H{"session_id": "nope", "question": "anything"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQueryRAGNotReady(t *testing.T) {
	store := session.NewMemoryStore(24 * time.Hour)
	require.NoError(t, store.Put(context.Background(), "sess-1", session.Data{Topic: "transformers", RAGReady: false}))

	router := newTestRouter(&fakeWorkflow{}, &fakeEngine{}, store)
	rec := postJSON(t, router, "/api/query-rag", gin.H{"session_id": "sess-1", "question": "anything"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.QueryRAGResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer, "not ready")
	assert.Empty(t, resp.Sources)
	assert.NotNil(t, resp.Error)
}

func TestQueryRAGMissingFields(t *testing.T) {
	router := newTestRouter(&fakeWorkflow{}, &fakeEngine{}, session.NewMemoryStore(time.Hour))
	rec := postJSON(t, router, "/api/query-rag", gin.H{"session_id": "sess-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
