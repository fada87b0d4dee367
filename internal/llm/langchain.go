package llm

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"docqa/internal/config"
)

// langchainProvider adapts a langchaingo chat model to the Provider
// interface. Temperature is pinned to zero for reproducible answers.
type langchainProvider struct {
	model llms.Model
}

func (p *langchainProvider) Generate(ctx context.Context, req Request) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, p.model, req.Prompt, llms.WithTemperature(0))
}

// NewProvider builds the chat provider for the configured model provider.
// The openai path is wrapped with the canned fallback; ollama runs locally
// and gets no wrapper.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Models.Provider {
	case config.ProviderOpenAI:
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Models.OpenAI.ChatModel),
		)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("model", cfg.Models.OpenAI.ChatModel).Msg("created openai chat provider with canned fallback")
		return NewResilient(&langchainProvider{model: model}), nil
	case config.ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.Models.Ollama.BaseURL),
			ollama.WithModel(cfg.Models.Ollama.ChatModel),
		)
		if err != nil {
			return nil, err
		}
		return &langchainProvider{model: model}, nil
	default:
		return nil, &config.ConfigError{Field: "models.provider", Reason: "unsupported provider " + cfg.Models.Provider}
	}
}
