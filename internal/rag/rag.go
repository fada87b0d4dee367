// Package rag ties retrieval to generation: it builds the context block,
// invokes the chat provider and attaches citations.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docqa/internal/citations"
	"docqa/internal/llm"
	"docqa/internal/models"
	"docqa/internal/vectorstore"
)

const (
	noDocumentsMessage = "No documents have been indexed yet. Please upload and index some documents first."
	noResultsMessage   = "I couldn't find any relevant information in the indexed documents. " +
		"Please try rephrasing your question or upload more relevant documents."
)

// Response is what a query returns: the answer text and the chunks it was
// grounded on, in retrieval-rank order.
type Response struct {
	Answer string
	Chunks []models.Chunk
}

// Pipeline orchestrates one question-answering round trip.
type Pipeline struct {
	index    vectorstore.Index
	provider llm.Provider
	topK     int
}

func NewPipeline(index vectorstore.Index, provider llm.Provider, topK int) *Pipeline {
	return &Pipeline{index: index, provider: provider, topK: topK}
}

// Query answers a question from the indexed documents. It always returns a
// conversational answer: retrieval failures degrade to "nothing relevant"
// and generation failures are converted into an in-band error message.
func (p *Pipeline) Query(ctx context.Context, question string, includeCitations bool) Response {
	count, err := p.index.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count indexed chunks")
		count = 0
	}
	if count == 0 {
		return Response{Answer: noDocumentsMessage}
	}

	chunks := p.retrieve(ctx, question)
	if len(chunks) == 0 {
		return Response{Answer: noResultsMessage}
	}

	answer := p.generate(ctx, question, chunks)
	if includeCitations {
		answer += citations.CreateSourcesSection(chunks)
	}

	return Response{Answer: answer, Chunks: chunks}
}

// retrieve runs the similarity search, degrading any store failure to zero
// results: a "nothing found" answer beats a hard failure mid-conversation.
func (p *Pipeline) retrieve(ctx context.Context, question string) []models.Chunk {
	results, err := p.index.Search(ctx, question, p.topK, nil)
	if err != nil {
		log.Error().Err(err).Msg("retrieval failed, answering with no results")
		return nil
	}
	log.Debug().Int("chunks", len(results)).Msg("retrieved chunks for question")
	return models.Chunks(results)
}

func (p *Pipeline) generate(ctx context.Context, question string, chunks []models.Chunk) string {
	contextBlock := formatContext(chunks)
	prompt := fmt.Sprintf(models.RAGPromptTemplate, contextBlock, question)

	answer, err := p.provider.Generate(ctx, llm.Request{
		Prompt:   prompt,
		Question: question,
		Context:  contextBlock,
	})
	if err != nil {
		log.Error().Err(err).Msg("answer generation failed")
		return fmt.Sprintf("Error generating answer: %v", err)
	}
	return strings.TrimSpace(answer)
}

// formatContext renders the chunks, in rank order, as source-tagged blocks
// separated by a divider line.
func formatContext(chunks []models.Chunk) string {
	if len(chunks) == 0 {
		return models.NoContextPlaceholder
	}

	parts := make([]string, len(chunks))
	for i, c := range chunks {
		source := fmt.Sprintf("[Source: %s", c.Metadata.Filename)
		if c.Metadata.Page > 0 {
			source += fmt.Sprintf(", Page %d", c.Metadata.Page)
		}
		source += "]"
		parts[i] = fmt.Sprintf("%s\n%s\n", source, c.Content)
	}
	return strings.Join(parts, models.ContextSeparator)
}
