// Package ingest converts raw document files into ordered, metadata-tagged
// text chunks ready for vector indexing.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/textsplitter"

	"docqa/internal/config"
	"docqa/internal/models"
)

// ErrUnsupportedFormat marks file extensions outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError wraps a decode/parse failure for a recognized format.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FileError records a per-file failure during batch ingestion.
type FileError struct {
	Filename string
	Err      error
}

var supportedExtensions = map[string]string{
	".pdf":  models.FiletypePDF,
	".docx": models.FiletypeDOCX,
	".txt":  models.FiletypeTXT,
	".md":   models.FiletypeMD,
	".csv":  models.FiletypeCSV,
}

// Ingestor parses and chunks documents according to the configured splitting
// policy.
type Ingestor struct {
	splitter textsplitter.RecursiveCharacter
}

// New builds an ingestor with the configured chunk size and overlap.
func New(cfg *config.Config) *Ingestor {
	return &Ingestor{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.Chunking.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.Chunking.ChunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
		),
	}
}

// IsSupported reports whether the file's extension is in the supported set.
// Dispatch is purely extension-based and case-insensitive.
func IsSupported(filename string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// IngestFile reads and ingests a single file from disk.
func (in *Ingestor) IngestFile(path string) ([]models.Chunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return in.IngestBytes(content, filepath.Base(path))
}

// IngestBytes parses raw content according to the filename's extension and
// returns the resulting chunks. It fails with ErrUnsupportedFormat for
// unrecognized extensions and *ParseError when the content cannot be parsed.
func (in *Ingestor) IngestBytes(content []byte, filename string) ([]models.Chunk, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := supportedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	log.Debug().Str("filename", filename).Msg("ingesting file")

	var (
		chunks []models.Chunk
		err    error
	)
	switch ext {
	case ".pdf":
		chunks, err = in.parsePDF(content, filename)
	case ".docx":
		chunks, err = in.parseDOCX(content, filename)
	case ".txt":
		chunks, err = in.parseText(content, filename, models.FiletypeTXT)
	case ".md":
		chunks, err = in.parseMarkdown(content, filename)
	case ".csv":
		chunks, err = in.parseCSV(content, filename)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Str("filename", filename).Int("chunks", len(chunks)).Msg("created chunks")
	return chunks, nil
}

// IngestAll processes files independently: one file's failure never aborts
// the batch. Failed files come back as (filename, error) pairs alongside the
// chunks of the files that succeeded.
func (in *Ingestor) IngestAll(paths []string) ([]models.Chunk, []FileError) {
	var all []models.Chunk
	var failed []FileError
	for _, path := range paths {
		chunks, err := in.IngestFile(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to ingest file")
			failed = append(failed, FileError{Filename: filepath.Base(path), Err: err})
			continue
		}
		all = append(all, chunks...)
	}
	return all, failed
}

// split runs the recursive character splitter and attaches the metadata to
// every non-empty piece.
func (in *Ingestor) split(text string, meta models.Metadata) ([]models.Chunk, error) {
	pieces, err := in.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}
	var chunks []models.Chunk
	for _, piece := range pieces {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{Content: piece, Metadata: meta})
	}
	return chunks, nil
}
