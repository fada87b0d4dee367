package embedding

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"docqa/internal/resilience"
)

// Resilient wraps a primary embedder with the offline fallback. The first
// connectivity-class failure latches the instance into fallback mode for the
// rest of its lifetime, so established outages don't pay the primary's
// timeout on every call. Non-connectivity errors are propagated unchanged.
type Resilient struct {
	primary       embeddings.Embedder
	fallback      *Offline
	usingFallback bool
}

var _ embeddings.Embedder = (*Resilient)(nil)

// NewResilient wraps primary with an offline fallback of the given dimension.
func NewResilient(primary embeddings.Embedder, dimension int) *Resilient {
	return &Resilient{
		primary:  primary,
		fallback: NewOffline(dimension),
	}
}

// UsingFallback reports whether the instance has latched into offline mode.
func (r *Resilient) UsingFallback() bool { return r.usingFallback }

func (r *Resilient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if r.usingFallback {
		return r.fallback.EmbedDocuments(ctx, texts)
	}
	vectors, err := r.primary.EmbedDocuments(ctx, texts)
	if err == nil {
		return vectors, nil
	}
	if resilience.Classify(err) != resilience.Connectivity {
		return nil, err
	}
	log.Warn().Err(err).Msg("primary embeddings unreachable, latching into offline fallback")
	r.usingFallback = true
	return r.fallback.EmbedDocuments(ctx, texts)
}

func (r *Resilient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if r.usingFallback {
		return r.fallback.EmbedQuery(ctx, text)
	}
	vector, err := r.primary.EmbedQuery(ctx, text)
	if err == nil {
		return vector, nil
	}
	if resilience.Classify(err) != resilience.Connectivity {
		return nil, err
	}
	log.Warn().Err(err).Msg("primary embeddings unreachable, latching into offline fallback")
	r.usingFallback = true
	return r.fallback.EmbedQuery(ctx, text)
}
