package vectorstore

import (
	"context"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"docqa/internal/models"
)

const chromemCompress = false

// ChromemStore is the embedded chromem-go backend. In persistent mode it
// loads whatever collection already exists under persistDir, so a fresh
// process attaches to a prior session's index.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	name       string
	dimension  int
}

var _ Index = (*ChromemStore)(nil)

// NewChromem opens (or creates) the collection. inMemory selects a
// non-persistent database, used by tests and throwaway sessions.
func NewChromem(persistDir, collectionName string, dimension int, inMemory bool, embedder embeddings.Embedder) (*ChromemStore, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(persistDir, chromemCompress)
		if err != nil {
			return nil, &StoreError{Op: "open", Err: err}
		}
	}

	s := &ChromemStore{
		db:        db,
		embedder:  embedder,
		name:      collectionName,
		dimension: dimension,
	}
	s.collection, err = db.GetOrCreateCollection(collectionName, nil, s.embeddingFunc())
	if err != nil {
		return nil, &StoreError{Op: "open collection", Err: err}
	}

	log.Debug().Str("collection", collectionName).Int("count", s.collection.Count()).Msg("vector store attached")
	return s, nil
}

// embeddingFunc lets chromem embed query text through the injected embedder,
// so retrieval follows the same primary/fallback path as indexing.
func (s *ChromemStore) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return s.embedder.EmbedQuery(ctx, text)
	}
}

func (s *ChromemStore) Add(ctx context.Context, chunks []models.Chunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	// One batch call per Add so a failover happens at most once per batch.
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}

	docs := make([]chromem.Document, len(chunks))
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = uuid.NewString()
		docs[i] = chromem.Document{
			ID:        ids[i],
			Content:   c.Content,
			Metadata:  metadataToMap(c.Metadata),
			Embedding: vectors[i],
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, &StoreError{Op: "add", Err: err}
	}
	log.Debug().Int("chunks", len(docs)).Msg("added chunks to vector store")
	return ids, nil
}

func (s *ChromemStore) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.SearchResult, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, query, k, filter, nil)
	if err != nil {
		return nil, &StoreError{Op: "search", Err: err}
	}

	out := make([]models.SearchResult, len(results))
	for i, r := range results {
		out[i] = models.SearchResult{
			Chunk: models.Chunk{
				Content:  r.Content,
				Metadata: metadataFromMap(r.Metadata),
			},
			Score: r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) Count(_ context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *ChromemStore) ListFilenames(ctx context.Context) ([]string, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}

	// chromem exposes no metadata scan, so rank everything against a fixed
	// probe vector and walk the full result set.
	probe := make([]float32, s.dimension)
	probe[0] = 1
	results, err := s.collection.QueryEmbedding(ctx, probe, count, nil, nil)
	if err != nil {
		return nil, &StoreError{Op: "list filenames", Err: err}
	}

	seen := make(map[string]struct{})
	for _, r := range results {
		if name := r.Metadata["filename"]; name != "" {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *ChromemStore) Clear(_ context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	collection, err := s.db.GetOrCreateCollection(s.name, nil, s.embeddingFunc())
	if err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	s.collection = collection
	log.Debug().Str("collection", s.name).Msg("vector store cleared")
	return nil
}
