package models

// Filetype values carried in chunk metadata.
const (
	FiletypePDF  = "pdf"
	FiletypeDOCX = "docx"
	FiletypeTXT  = "txt"
	FiletypeMD   = "md"
	FiletypeCSV  = "csv"
)

// Metadata is the provenance attached to every chunk. Filename and Filetype
// are always set; Page is 1-based and zero for formats without pages. Rows
// and Columns are informational extras for CSV sources.
type Metadata struct {
	Filename string
	Filetype string
	Page     int
	Rows     int
	Columns  int
}

// Chunk is the atomic retrievable unit: a bounded span of source text plus
// its provenance. Chunks are immutable once produced by the ingestor.
type Chunk struct {
	Content  string
	Metadata Metadata
}

// SearchResult pairs a retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Chunks extracts the chunks from a result list, preserving rank order.
func Chunks(results []SearchResult) []Chunk {
	chunks := make([]Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks
}
