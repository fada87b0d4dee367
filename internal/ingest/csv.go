package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"docqa/internal/models"
)

const maxCSVRows = 1000

func (in *Ingestor) parseCSV(content []byte, filename string) ([]models.Chunk, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Filename: filename, Err: errors.New("empty csv")}
	}

	header := records[0]
	rows := records[1:]

	// The index never sees the table itself, only this textual rendering.
	var parts []string
	parts = append(parts,
		fmt.Sprintf("CSV File: %s", filename),
		fmt.Sprintf("Columns: %s", strings.Join(header, ", ")),
		fmt.Sprintf("Rows: %d", len(rows)),
		"\n--- Data ---\n",
	)

	limit := len(rows)
	if limit > maxCSVRows {
		limit = maxCSVRows
	}
	for i := 0; i < limit; i++ {
		fields := make([]string, len(rows[i]))
		for j, val := range rows[i] {
			col := fmt.Sprintf("col%d", j+1)
			if j < len(header) {
				col = header[j]
			}
			fields[j] = fmt.Sprintf("%s: %s", col, val)
		}
		parts = append(parts, fmt.Sprintf("Row %d: %s", i+1, strings.Join(fields, " | ")))
	}
	if len(rows) > limit {
		parts = append(parts, fmt.Sprintf("\n... and %d more rows", len(rows)-limit))
	}

	return in.split(strings.Join(parts, "\n"), models.Metadata{
		Filename: filename,
		Filetype: models.FiletypeCSV,
		Rows:     len(rows),
		Columns:  len(header),
	})
}
