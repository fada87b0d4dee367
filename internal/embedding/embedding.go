package embedding

import (
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"docqa/internal/config"
)

// NewEmbedder builds the embedder for the configured provider. The openai
// path is wrapped with the offline fallback; ollama runs locally and gets no
// wrapper.
func NewEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.Models.Provider {
	case config.ProviderOpenAI:
		primary, err := newOpenAIEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("model", cfg.Models.OpenAI.EmbeddingsModel).
			Int("dimension", cfg.Models.Dimension).
			Msg("created openai embedder with offline fallback")
		return NewResilient(primary, cfg.Models.Dimension), nil
	case config.ProviderOllama:
		return newOllamaEmbedder(cfg)
	default:
		return nil, &config.ConfigError{Field: "models.provider", Reason: "unsupported provider " + cfg.Models.Provider}
	}
}

func newOpenAIEmbedder(cfg *config.Config) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.Models.OpenAI.EmbeddingsModel),
		openai.WithEmbeddingModel(cfg.Models.OpenAI.EmbeddingsModel),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

func newOllamaEmbedder(cfg *config.Config) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.Models.Ollama.BaseURL),
		ollama.WithModel(cfg.Models.Ollama.EmbeddingsModel),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}
