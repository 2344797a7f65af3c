// Package textutil provides the word-window chunking and truncation
// primitives used by the RAG indexing pipeline.
package textutil

import (
	"fmt"
	"strings"
)

// ChunkWords splits text on whitespace and emits overlapping windows of
// chunkSize words, advancing by chunkSize-overlap words per step. Sentence
// and paragraph boundaries are deliberately ignored. An overlap >= chunkSize
// would make the step non-positive and loop forever, so it is rejected.
func ChunkWords(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, chunk size), got overlap=%d chunk size=%d", overlap, chunkSize)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	step := chunkSize - overlap
	chunks := make([]string, 0, (len(words)+step-1)/step)
	for start := 0; start < len(words); start += step {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks, nil
}

// Truncate clips s to maxLen bytes and appends an ellipsis when clipped.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Clip clips s to maxLen bytes without an ellipsis. Used for vector
// metadata, which has a hard size ceiling.
func Clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
