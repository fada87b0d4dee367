package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
)

// Offline is a pure, deterministic embedder that needs no network access.
// Identical input text always produces the identical vector, so indexing and
// querying stay mutually consistent once a session has fallen back to it.
type Offline struct {
	dimension int
}

var _ embeddings.Embedder = (*Offline)(nil)

// NewOffline returns an offline embedder producing vectors of the given
// dimension (1536 matches the OpenAI default).
func NewOffline(dimension int) *Offline {
	return &Offline{dimension: dimension}
}

func (o *Offline) Dimension() int { return o.dimension }

func (o *Offline) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = o.vector(text)
	}
	return vectors, nil
}

func (o *Offline) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return o.vector(text), nil
}

// vector hashes the normalized text into a unit-length embedding: one sha256
// digest per 32 dimensions, each digest sliced into 8-byte big-endian words
// mapped onto [-1, 1], zero-padded to the full dimension and L2-normalized.
func (o *Offline) vector(text string) []float32 {
	text = strings.ToLower(strings.TrimSpace(text))

	values := make([]float64, 0, o.dimension)
	numHashes := o.dimension / 32
	for seed := 0; seed < numHashes && len(values) < o.dimension; seed++ {
		digest := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", seed, text)))
		for i := 0; i+8 <= len(digest) && len(values) < o.dimension; i += 8 {
			word := binary.BigEndian.Uint64(digest[i : i+8])
			values = append(values, float64(word)/float64(math.MaxUint64)*2-1)
		}
	}
	for len(values) < o.dimension {
		values = append(values, 0)
	}
	values = values[:o.dimension]

	var norm float64
	for _, v := range values {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, o.dimension)
	for i, v := range values {
		if norm > 0 {
			vec[i] = float32(v / norm)
		}
	}
	return vec
}
