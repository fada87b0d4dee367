package vectorstore

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"

	"docqa/internal/config"
)

// New opens the configured index backend.
func New(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder) (Index, error) {
	switch cfg.VectorStore.Type {
	case config.StoreChromem:
		return NewChromem(cfg.VectorStore.PersistDir, cfg.VectorStore.Collection, cfg.Models.Dimension, false, embedder)
	case config.StorePostgres:
		return NewPostgres(ctx, cfg.VectorStore.DSN, cfg.VectorStore.Debug, embedder)
	default:
		return nil, &config.ConfigError{Field: "vectorstore.type", Reason: "unsupported store " + cfg.VectorStore.Type}
	}
}
