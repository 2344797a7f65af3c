package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"research-rag-platform/internal/vectorindex"
	"research-rag-platform/models"
)

// fakeLLM answers prompts through a routing function, so one fake can
// serve the whole workflow in end-to-end tests.
type fakeLLM struct {
	generate func(prompt string, temperature float32) (string, error)
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, temperature float32) (string, error) {
	return f.generate(prompt, temperature)
}

func staticLLM(response string) *fakeLLM {
	return &fakeLLM{generate: func(string, float32) (string, error) { return response, nil }}
}

func failingLLM(msg string) *fakeLLM {
	return &fakeLLM{generate: func(string, float32) (string, error) { return "", errors.New(msg) }}
}

// fakeEmbedder derives a deterministic tiny vector from the text length.
type fakeEmbedder struct {
	dim  int
	fail bool
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.fail {
		return nil, errors.New("embedding service unavailable")
	}
	vec := make([]float32, f.dim)
	for i := range vec {
		vec[i] = float32(len(text)%(i+2)) / float32(f.dim)
	}
	return vec, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

// fakeIndex records upserts per namespace and serves canned query matches.
type fakeIndex struct {
	mu        sync.Mutex
	upserts   map[string][][]vectorindex.Vector
	matches   []vectorindex.Match
	upsertErr error
	queryErr  error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{upserts: make(map[string][][]vectorindex.Vector)}
}

func (f *fakeIndex) Upsert(_ context.Context, namespace string, vectors []vectorindex.Vector) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	batch := make([]vectorindex.Vector, len(vectors))
	copy(batch, vectors)
	f.upserts[namespace] = append(f.upserts[namespace], batch)
	return nil
}

func (f *fakeIndex) Query(_ context.Context, namespace string, vector []float32, topK int) ([]vectorindex.Match, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

func (f *fakeIndex) allVectors(namespace string) []vectorindex.Vector {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []vectorindex.Vector
	for _, batch := range f.upserts[namespace] {
		all = append(all, batch...)
	}
	return all
}

// fakeSearcher returns canned papers or an error.
type fakeSearcher struct {
	papers []models.Paper
	err    error
}

func (f *fakeSearcher) Search(_ context.Context, query string, maxResults int) ([]models.Paper, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.papers) > maxResults {
		return f.papers[:maxResults], nil
	}
	return f.papers, nil
}

func testPapers(n int) []models.Paper {
	titles := []string{
		"Attention Is All You Need",
		"BERT: Pre-training of Deep Bidirectional Transformers",
		"Language Models are Few-Shot Learners",
		"An Image is Worth 16x16 Words",
		"Scaling Laws for Neural Language Models",
	}
	papers := make([]models.Paper, 0, n)
	for i := 0; i < n; i++ {
		papers = append(papers, models.Paper{
			Title:    titles[i%len(titles)],
			Authors:  "Author One, Author Two",
			Abstract: strings.Repeat("transformer attention mechanism study ", 20),
			ArxivID:  []string{"1706.03762", "1810.04805", "2005.14165", "2010.11929", "2001.08361"}[i%5],
			URL:      "http://arxiv.org/abs/1706.03762",
		})
	}
	return papers
}
