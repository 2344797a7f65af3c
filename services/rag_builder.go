package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"research-rag-platform/internal/logger"
	"research-rag-platform/internal/pdftext"
	"research-rag-platform/internal/textutil"
	"research-rag-platform/internal/vectorindex"
	"research-rag-platform/models"
)

// RAGBuilderConfig carries the indexing parameters.
type RAGBuilderConfig struct {
	ChunkSize       int           // words per chunk
	ChunkOverlap    int           // words shared between neighboring chunks
	MinChunkChars   int           // chunks shorter than this are noise
	UpsertBatchSize int           // vectors per upsert call
	MetadataTextMax int           // chunk text ceiling inside metadata
	PDFFetchTimeout time.Duration // per-document fetch+extract budget
}

// RAGBuilder turns fetched papers into an embedded, namespaced index that
// later questions are answered against. One session maps to exactly one
// namespace.
type RAGBuilder struct {
	embedder Embedder
	index    VectorIndex
	cfg      RAGBuilderConfig

	// extractText resolves a PDF URL to plain text; swapped out in tests.
	extractText func(ctx context.Context, url string) (string, error)
}

// NewRAGBuilder creates a builder writing through embedder into index.
func NewRAGBuilder(embedder Embedder, index VectorIndex, cfg RAGBuilderConfig) *RAGBuilder {
	return &RAGBuilder{
		embedder:    embedder,
		index:       index,
		cfg:         cfg,
		extractText: pdftext.ExtractFromURL,
	}
}

// Build indexes all papers under the sessionID namespace. Vector ids are
// `{session_id}_{counter}` with the counter monotonic across the whole
// session, so ids stay unique even when papers produce equal chunk counts.
func (b *RAGBuilder) Build(ctx context.Context, sessionID string, papers []models.Paper) error {
	if len(papers) == 0 {
		return nil
	}
	logger.Info("building rag index", "session_id", sessionID, "papers", len(papers))

	var vectors []vectorindex.Vector
	chunkCounter := 0

	for _, paper := range papers {
		text := b.resolveText(ctx, paper)

		chunks, err := textutil.ChunkWords(text, b.cfg.ChunkSize, b.cfg.ChunkOverlap)
		if err != nil {
			return fmt.Errorf("chunking failed for %s: %w", paper.ArxivID, err)
		}

		for i, chunk := range chunks {
			if len(strings.TrimSpace(chunk)) < b.cfg.MinChunkChars {
				continue
			}

			embedding, err := b.embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("embedding failed for %s chunk %d: %w", paper.ArxivID, i, err)
			}

			vectors = append(vectors, vectorindex.Vector{
				ID:     fmt.Sprintf("%s_%d", sessionID, chunkCounter),
				Values: embedding,
				Metadata: map[string]any{
					"session_id":  sessionID,
					"arxiv_id":    paper.ArxivID,
					"title":       paper.Title,
					"chunk_index": i,
					"text":        textutil.Clip(chunk, b.cfg.MetadataTextMax),
				},
			})
			chunkCounter++
		}
	}

	for start := 0; start < len(vectors); start += b.cfg.UpsertBatchSize {
		end := start + b.cfg.UpsertBatchSize
		if end > len(vectors) {
			end = len(vectors)
		}
		if err := b.index.Upsert(ctx, sessionID, vectors[start:end]); err != nil {
			return fmt.Errorf("upsert batch starting at %d: %w", start, err)
		}
	}

	logger.Info("rag index built", "session_id", sessionID, "vectors", len(vectors))
	return nil
}

// resolveText prefers the full PDF text; any fetch or extraction failure
// falls back to the abstract so indexing never stalls on one document.
func (b *RAGBuilder) resolveText(ctx context.Context, paper models.Paper) string {
	if paper.PDFURL == "" {
		return paper.Abstract
	}

	fetchCtx, cancel := context.WithTimeout(ctx, b.cfg.PDFFetchTimeout)
	defer cancel()

	text, err := b.extractText(fetchCtx, paper.PDFURL)
	if err != nil {
		logger.Warn("pdf extraction failed, using abstract", "arxiv_id", paper.ArxivID, "error", err)
		return paper.Abstract
	}
	return text
}
