package llm

import (
	"context"

	"github.com/rs/zerolog/log"

	"docqa/internal/resilience"
)

// Resilient wraps a primary chat provider with the canned fallback, latching
// one way on the first connectivity-class failure exactly like the embedding
// wrapper does. The latch is never surfaced in answer text; it is only
// logged.
type Resilient struct {
	primary       Provider
	fallback      *Canned
	usingFallback bool
}

var _ Provider = (*Resilient)(nil)

func NewResilient(primary Provider) *Resilient {
	return &Resilient{
		primary:  primary,
		fallback: NewCanned(),
	}
}

// UsingFallback reports whether the instance has latched into canned mode.
func (r *Resilient) UsingFallback() bool { return r.usingFallback }

func (r *Resilient) Generate(ctx context.Context, req Request) (string, error) {
	if r.usingFallback {
		return r.fallback.Generate(ctx, req)
	}
	answer, err := r.primary.Generate(ctx, req)
	if err == nil {
		return answer, nil
	}
	if resilience.Classify(err) != resilience.Connectivity {
		return "", err
	}
	log.Warn().Err(err).Msg("primary chat provider unreachable, latching into canned fallback")
	r.usingFallback = true
	return r.fallback.Generate(ctx, req)
}
