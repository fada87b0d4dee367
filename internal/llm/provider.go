package llm

import "context"

// Request carries everything a provider may need to answer. The primary path
// consumes the fully rendered Prompt; the canned fallback keys off the bare
// Question and the retrieved Context instead.
type Request struct {
	Prompt   string
	Question string
	Context  string
}

// Provider produces a natural-language answer for one request.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
