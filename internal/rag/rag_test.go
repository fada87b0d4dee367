package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/llm"
	"docqa/internal/models"
	"docqa/internal/vectorstore"
)

// mockIndex implements vectorstore.Index with per-test behavior.
type mockIndex struct {
	onCount  func(ctx context.Context) (int, error)
	onSearch func(ctx context.Context, query string, k int, filter map[string]string) ([]models.SearchResult, error)

	searchCalls int
}

func (m *mockIndex) Add(context.Context, []models.Chunk) ([]string, error) { return nil, nil }

func (m *mockIndex) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.SearchResult, error) {
	m.searchCalls++
	if m.onSearch != nil {
		return m.onSearch(ctx, query, k, filter)
	}
	return nil, nil
}

func (m *mockIndex) Count(ctx context.Context) (int, error) {
	if m.onCount != nil {
		return m.onCount(ctx)
	}
	return 0, nil
}

func (m *mockIndex) ListFilenames(context.Context) ([]string, error) { return nil, nil }
func (m *mockIndex) Clear(context.Context) error                     { return nil }

type mockProvider struct {
	onGenerate func(ctx context.Context, req llm.Request) (string, error)

	calls   int
	lastReq llm.Request
}

func (m *mockProvider) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.calls++
	m.lastReq = req
	if m.onGenerate != nil {
		return m.onGenerate(ctx, req)
	}
	return "generated answer", nil
}

func results(chunks ...models.Chunk) []models.SearchResult {
	out := make([]models.SearchResult, len(chunks))
	for i, c := range chunks {
		out[i] = models.SearchResult{Chunk: c, Score: 1 - float32(i)*0.1}
	}
	return out
}

func TestQueryEmptyIndexShortCircuits(t *testing.T) {
	index := &mockIndex{onCount: func(context.Context) (int, error) { return 0, nil }}
	provider := &mockProvider{}
	p := NewPipeline(index, provider, 5)

	resp := p.Query(context.Background(), "anything", true)

	assert.Equal(t, noDocumentsMessage, resp.Answer)
	assert.Empty(t, resp.Chunks)
	assert.Zero(t, index.searchCalls, "retrieval must not run against an empty index")
	assert.Zero(t, provider.calls, "generation must not run against an empty index")
}

func TestQueryNoResults(t *testing.T) {
	index := &mockIndex{
		onCount:  func(context.Context) (int, error) { return 3, nil },
		onSearch: func(context.Context, string, int, map[string]string) ([]models.SearchResult, error) { return nil, nil },
	}
	provider := &mockProvider{}
	p := NewPipeline(index, provider, 5)

	resp := p.Query(context.Background(), "anything", true)

	assert.Equal(t, noResultsMessage, resp.Answer)
	assert.Empty(t, resp.Chunks)
	assert.Zero(t, provider.calls)
}

func TestQuerySearchErrorDegradesToNoResults(t *testing.T) {
	index := &mockIndex{
		onCount: func(context.Context) (int, error) { return 3, nil },
		onSearch: func(context.Context, string, int, map[string]string) ([]models.SearchResult, error) {
			return nil, &vectorstore.StoreError{Op: "search", Err: errors.New("disk gone")}
		},
	}
	p := NewPipeline(index, &mockProvider{}, 5)

	resp := p.Query(context.Background(), "anything", true)
	assert.Equal(t, noResultsMessage, resp.Answer)
}

func TestQueryBuildsPromptAndRequest(t *testing.T) {
	chunkA := models.Chunk{
		Content:  "PTO accrues at ten days per year.",
		Metadata: models.Metadata{Filename: "handbook.pdf", Filetype: models.FiletypePDF, Page: 4},
	}
	chunkB := models.Chunk{
		Content:  "Unused days roll over.",
		Metadata: models.Metadata{Filename: "handbook.txt", Filetype: models.FiletypeTXT},
	}
	index := &mockIndex{
		onCount: func(context.Context) (int, error) { return 2, nil },
		onSearch: func(context.Context, string, int, map[string]string) ([]models.SearchResult, error) {
			return results(chunkA, chunkB), nil
		},
	}
	provider := &mockProvider{}
	p := NewPipeline(index, provider, 5)

	resp := p.Query(context.Background(), "How much PTO do I get?", false)

	assert.Equal(t, "generated answer", resp.Answer)
	require.Len(t, resp.Chunks, 2)

	req := provider.lastReq
	assert.Equal(t, "How much PTO do I get?", req.Question)
	assert.Contains(t, req.Context, "[Source: handbook.pdf, Page 4]")
	assert.Contains(t, req.Context, "[Source: handbook.txt]")
	assert.Contains(t, req.Context, models.ContextSeparator)
	assert.Contains(t, req.Prompt, req.Context)
	assert.Contains(t, req.Prompt, "Question: How much PTO do I get?")
	assert.Contains(t, req.Prompt, "Do not make up information")
}

func TestQueryAppendsCitations(t *testing.T) {
	chunk := models.Chunk{
		Content:  "Rent is due on the first.",
		Metadata: models.Metadata{Filename: "lease.pdf", Filetype: models.FiletypePDF, Page: 2},
	}
	index := &mockIndex{
		onCount: func(context.Context) (int, error) { return 1, nil },
		onSearch: func(context.Context, string, int, map[string]string) ([]models.SearchResult, error) {
			return results(chunk), nil
		},
	}
	p := NewPipeline(index, &mockProvider{}, 5)

	withCitations := p.Query(context.Background(), "When is rent due?", true)
	assert.Contains(t, withCitations.Answer, "Sources:")
	assert.Contains(t, withCitations.Answer, "lease.pdf (pages 2)")

	withoutCitations := p.Query(context.Background(), "When is rent due?", false)
	assert.NotContains(t, withoutCitations.Answer, "Sources:")
}

func TestQueryGenerationErrorIsInBand(t *testing.T) {
	chunk := models.Chunk{
		Content:  "some content",
		Metadata: models.Metadata{Filename: "a.txt", Filetype: models.FiletypeTXT},
	}
	index := &mockIndex{
		onCount: func(context.Context) (int, error) { return 1, nil },
		onSearch: func(context.Context, string, int, map[string]string) ([]models.SearchResult, error) {
			return results(chunk), nil
		},
	}
	provider := &mockProvider{onGenerate: func(context.Context, llm.Request) (string, error) {
		return "", errors.New("model exploded")
	}}
	p := NewPipeline(index, provider, 5)

	resp := p.Query(context.Background(), "anything", false)
	assert.Equal(t, "Error generating answer: model exploded", resp.Answer)
	require.Len(t, resp.Chunks, 1)
}

func TestQueryCountErrorTreatedAsEmpty(t *testing.T) {
	index := &mockIndex{onCount: func(context.Context) (int, error) {
		return 0, &vectorstore.StoreError{Op: "count", Err: errors.New("unreachable")}
	}}
	p := NewPipeline(index, &mockProvider{}, 5)

	resp := p.Query(context.Background(), "anything", true)
	assert.Equal(t, noDocumentsMessage, resp.Answer)
}

func TestFormatContextPlaceholder(t *testing.T) {
	assert.Equal(t, models.NoContextPlaceholder, formatContext(nil))
}
