// Package vectorindex is a minimal REST client for the Pinecone data
// plane. Vectors for different research sessions share one physical index
// and are isolated by namespace.
package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Vector is one embedded chunk plus its retrieval metadata.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Match is a query hit with its similarity score and stored metadata.
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// PineconeIndex talks to one Pinecone index identified by its data-plane
// host.
type PineconeIndex struct {
	host   string
	apiKey string
	client *http.Client
}

// NewPineconeIndex creates a client for the index served at host.
func NewPineconeIndex(host, apiKey string, timeout time.Duration) *PineconeIndex {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &PineconeIndex{
		host:   host,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Upsert writes vectors into the given namespace. Callers batch to at most
// 100 vectors per call, matching the API's request size guidance.
func (p *PineconeIndex) Upsert(ctx context.Context, namespace string, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	body := map[string]any{
		"vectors":   vectors,
		"namespace": namespace,
	}
	return p.postJSON(ctx, p.host+"/vectors/upsert", body, nil)
}

// Query returns the topK nearest vectors in the namespace, with metadata.
func (p *PineconeIndex) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 5
	}
	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"namespace":       namespace,
		"includeMetadata": true,
	}

	var resp struct {
		Matches []Match `json:"matches"`
	}
	if err := p.postJSON(ctx, p.host+"/query", body, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (p *PineconeIndex) postJSON(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("pinecone returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode pinecone response: %w", err)
		}
	}
	return nil
}
