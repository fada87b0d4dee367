package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"docqa/internal/models"
)

type rawPage struct {
	number int
	text   string
}

func (in *Ingestor) parsePDF(content []byte, filename string) (chunks []models.Chunk, err error) {
	// The pdf library panics on some malformed files; surface those as
	// parse errors like any other corrupt input.
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = &ParseError{Filename: filename, Err: fmt.Errorf("corrupt pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	var pages []rawPage
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &ParseError{Filename: filename, Err: err}
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, rawPage{number: i, text: text})
	}

	return in.chunkPages(pages, filename)
}

// chunkPages splits each page independently and tags every resulting chunk
// with that page's 1-based number, even when one page yields several chunks.
func (in *Ingestor) chunkPages(pages []rawPage, filename string) ([]models.Chunk, error) {
	var all []models.Chunk
	for _, page := range pages {
		chunks, err := in.split(page.text, models.Metadata{
			Filename: filename,
			Filetype: models.FiletypePDF,
			Page:     page.number,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, chunks...)
	}
	return all, nil
}
