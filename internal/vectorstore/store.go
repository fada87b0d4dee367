// Package vectorstore persists chunk text, metadata and embeddings and
// serves k-nearest-neighbor retrieval over them.
package vectorstore

import (
	"context"
	"fmt"
	"strconv"

	"docqa/internal/models"
)

// StoreError wraps a storage read/write failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Index is the vector index contract. Implementations attach to already
// persisted state on construction and delegate concurrency control to the
// underlying storage engine.
type Index interface {
	// Add embeds and persists the chunks, returning one id per chunk.
	// An empty input is a no-op.
	Add(ctx context.Context, chunks []models.Chunk) ([]string, error)
	// Search returns up to k chunks nearest to the query, optionally
	// restricted to chunks whose metadata matches filter.
	Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.SearchResult, error)
	// Count reports the total number of stored chunks.
	Count(ctx context.Context) (int, error)
	// ListFilenames returns the distinct filenames across all stored
	// chunks, sorted.
	ListFilenames(ctx context.Context) ([]string, error)
	// Clear irreversibly deletes all stored chunks and reinitializes an
	// empty, queryable index in the same location.
	Clear(ctx context.Context) error
}

func metadataToMap(m models.Metadata) map[string]string {
	out := map[string]string{
		"filename": m.Filename,
		"filetype": m.Filetype,
	}
	if m.Page > 0 {
		out["page"] = strconv.Itoa(m.Page)
	}
	if m.Rows > 0 {
		out["rows"] = strconv.Itoa(m.Rows)
	}
	if m.Columns > 0 {
		out["columns"] = strconv.Itoa(m.Columns)
	}
	return out
}

func metadataFromMap(m map[string]string) models.Metadata {
	meta := models.Metadata{
		Filename: m["filename"],
		Filetype: m["filetype"],
	}
	if v, err := strconv.Atoi(m["page"]); err == nil {
		meta.Page = v
	}
	if v, err := strconv.Atoi(m["rows"]); err == nil {
		meta.Rows = v
	}
	if v, err := strconv.Atoi(m["columns"]); err == nil {
		meta.Columns = v
	}
	return meta
}
