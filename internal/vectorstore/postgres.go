package vectorstore

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"docqa/internal/models"
)

type chunkRow struct {
	bun.BaseModel `bun:"table:chunks,alias:c"`

	ID        string    `bun:"id,pk"`
	Content   string    `bun:"content,notnull"`
	Filename  string    `bun:"filename,notnull"`
	Filetype  string    `bun:"filetype,notnull"`
	Page      int       `bun:"page"`
	RowCount  int       `bun:"row_count"`
	ColCount  int       `bun:"column_count"`
	Embedding []float32 `bun:"embedding,notnull,type:vector(1536)"`
	Score     float32   `bun:"score,scanonly"`
}

// PostgresStore keeps the index in a pgvector-enabled Postgres database,
// for deployments where several processes share one index.
type PostgresStore struct {
	db       *bun.DB
	embedder embeddings.Embedder
}

var _ Index = (*PostgresStore)(nil)

// NewPostgres connects and ensures the chunks table exists, attaching to
// whatever rows a prior process left behind.
func NewPostgres(ctx context.Context, dsn string, debug bool, embedder embeddings.Embedder) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	s := &PostgresStore{db: db, embedder: embedder}
	if err := s.initTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initTable(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*chunkRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return &StoreError{Op: "init", Err: err}
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, chunks []models.Chunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}

	rows := make([]chunkRow, len(chunks))
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = uuid.NewString()
		rows[i] = rowFromChunk(ids[i], c, vectors[i])
	}

	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return nil, &StoreError{Op: "add", Err: err}
	}
	log.Debug().Int("chunks", len(rows)).Msg("added chunks to vector store")
	return ids, nil
}

func (s *PostgresStore) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.SearchResult, error) {
	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &StoreError{Op: "search", Err: err}
	}

	var rows []chunkRow
	q := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("c.*").
		ColumnExpr("1 - (embedding <-> ?) / 2 AS score", queryVec).
		OrderExpr("embedding <-> ?", queryVec).
		Limit(k)
	for key, value := range filter {
		switch key {
		case "filename", "filetype", "page":
			q = q.Where("? = ?", bun.Ident(key), value)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, &StoreError{Op: "search", Err: err}
	}

	out := make([]models.SearchResult, len(rows))
	for i, r := range rows {
		out[i] = rowToResult(r)
	}
	return out, nil
}

func rowFromChunk(id string, c models.Chunk, vector []float32) chunkRow {
	return chunkRow{
		ID:        id,
		Content:   c.Content,
		Filename:  c.Metadata.Filename,
		Filetype:  c.Metadata.Filetype,
		Page:      c.Metadata.Page,
		RowCount:  c.Metadata.Rows,
		ColCount:  c.Metadata.Columns,
		Embedding: vector,
	}
}

func rowToResult(r chunkRow) models.SearchResult {
	return models.SearchResult{
		Chunk: models.Chunk{
			Content: r.Content,
			Metadata: models.Metadata{
				Filename: r.Filename,
				Filetype: r.Filetype,
				Page:     r.Page,
				Rows:     r.RowCount,
				Columns:  r.ColCount,
			},
		},
		Score: r.Score,
	}
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*chunkRow)(nil)).Count(ctx)
	if err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return count, nil
}

func (s *PostgresStore) ListFilenames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.NewSelect().
		Model((*chunkRow)(nil)).
		Column("filename").
		Distinct().
		OrderExpr("filename ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, &StoreError{Op: "list filenames", Err: err}
	}
	return names, nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.NewDropTable().Model((*chunkRow)(nil)).IfExists().Exec(ctx); err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	return s.initTable(ctx)
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }
