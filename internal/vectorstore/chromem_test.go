package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/embedding"
	"docqa/internal/models"
)

const testDimension = 128

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromem("", "documents", testDimension, true, embedding.NewOffline(testDimension))
	require.NoError(t, err)
	return store
}

func chunk(content, filename, filetype string, page int) models.Chunk {
	return models.Chunk{
		Content: content,
		Metadata: models.Metadata{
			Filename: filename,
			Filetype: filetype,
			Page:     page,
		},
	}
}

func TestAddAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ids, err := store.Add(ctx, []models.Chunk{
		chunk("PTO accrues monthly.", "handbook.txt", models.FiletypeTXT, 0),
		chunk("Rent is due on the first.", "lease.pdf", models.FiletypePDF, 3),
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddEmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ids, err := store.Add(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSearchReturnsRankedChunks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Add(ctx, []models.Chunk{
		chunk("Vacation policy grants ten days of paid time off.", "handbook.txt", models.FiletypeTXT, 0),
		chunk("The lease requires sixty days notice before termination.", "lease.pdf", models.FiletypePDF, 2),
		chunk("Q4 revenue reached 2.4 million dollars.", "sales.csv", models.FiletypeCSV, 0),
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "Vacation policy grants ten days of paid time off.", 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The query text equals one stored chunk, so the deterministic offline
	// embedding must rank it first.
	assert.Equal(t, "handbook.txt", results[0].Chunk.Metadata.Filename)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchWithMetadataFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Add(ctx, []models.Chunk{
		chunk("Notice periods for termination.", "lease.pdf", models.FiletypePDF, 2),
		chunk("Notice periods for appeals.", "handbook.txt", models.FiletypeTXT, 0),
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "notice periods", 5, map[string]string{"filename": "lease.pdf"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "lease.pdf", results[0].Chunk.Metadata.Filename)
	assert.Equal(t, 2, results[0].Chunk.Metadata.Page)
}

func TestSearchEmptyIndex(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	results, err := store.Search(ctx, "anything", 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchClampsK(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Add(ctx, []models.Chunk{
		chunk("only one chunk", "a.txt", models.FiletypeTXT, 0),
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "one", 10, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestListFilenamesDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Add(ctx, []models.Chunk{
		chunk("first chunk of a", "a.txt", models.FiletypeTXT, 0),
		chunk("only chunk of b", "b.txt", models.FiletypeTXT, 0),
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, []models.Chunk{
		chunk("second chunk of a", "a.txt", models.FiletypeTXT, 0),
	})
	require.NoError(t, err)

	names, err := store.ListFilenames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}

func TestClearResetsIndex(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Add(ctx, []models.Chunk{
		chunk("some content", "a.txt", models.FiletypeTXT, 0),
		chunk("more content", "b.txt", models.FiletypeTXT, 0),
	})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	names, err := store.ListFilenames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	// The cleared index stays usable.
	ids, err := store.Add(ctx, []models.Chunk{
		chunk("fresh content", "c.txt", models.FiletypeTXT, 0),
	})
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestMetadataRoundTrip(t *testing.T) {
	meta := models.Metadata{
		Filename: "sales.csv",
		Filetype: models.FiletypeCSV,
		Rows:     42,
		Columns:  5,
	}
	assert.Equal(t, meta, metadataFromMap(metadataToMap(meta)))

	paged := models.Metadata{Filename: "doc.pdf", Filetype: models.FiletypePDF, Page: 7}
	assert.Equal(t, paged, metadataFromMap(metadataToMap(paged)))
}
