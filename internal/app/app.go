// Package app assembles the configured components into a ready-to-use
// question answering application.
package app

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"docqa/internal/config"
	"docqa/internal/embedding"
	"docqa/internal/ingest"
	"docqa/internal/llm"
	"docqa/internal/rag"
	"docqa/internal/vectorstore"
)

// App holds the wired pipeline and its supporting components.
type App struct {
	Config   *config.Config
	Ingestor *ingest.Ingestor
	Index    vectorstore.Index
	Pipeline *rag.Pipeline
}

// New validates the configuration and constructs every component.
// Configuration problems surface here, before any document or question
// is processed.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	embedder, err := embedding.NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	index, err := vectorstore.New(ctx, cfg, embedder)
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("provider", cfg.Models.Provider).
		Str("store", cfg.VectorStore.Type).
		Int("top_k", cfg.Retrieval.TopK).
		Msg("application wired")

	return &App{
		Config:   cfg,
		Ingestor: ingest.New(cfg),
		Index:    index,
		Pipeline: rag.NewPipeline(index, provider, cfg.Retrieval.TopK),
	}, nil
}

// IngestFiles parses, chunks and indexes the given files. Per-file parse
// failures are reported without aborting the batch.
func (a *App) IngestFiles(ctx context.Context, paths []string) (int, []ingest.FileError, error) {
	chunks, failures := a.Ingestor.IngestAll(paths)
	for _, f := range failures {
		log.Warn().Str("file", f.Filename).Err(f.Err).Msg("file skipped during ingestion")
	}
	if len(chunks) == 0 {
		return 0, failures, nil
	}
	if _, err := a.Index.Add(ctx, chunks); err != nil {
		return 0, failures, err
	}
	return len(chunks), failures, nil
}

// Ask runs one question through the pipeline using the configured
// citations setting.
func (a *App) Ask(ctx context.Context, question string) rag.Response {
	return a.Pipeline.Query(ctx, question, a.Config.Features.Citations)
}

// Close releases the index backend when it holds external resources.
func (a *App) Close() error {
	if closer, ok := a.Index.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
