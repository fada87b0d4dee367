package ingest

import (
	"bytes"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"docqa/internal/models"
)

func (in *Ingestor) parseDOCX(content []byte, filename string) ([]models.Chunk, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	defer r.Close()

	text := extractDocxText(r.Editable().GetContent())

	return in.split(text, models.Metadata{
		Filename: filename,
		Filetype: models.FiletypeDOCX,
	})
}

// extractDocxText pulls the visible text out of WordprocessingML: one line
// per <w:p> paragraph, concatenating that paragraph's <w:t> runs. Empty
// paragraphs are dropped.
func extractDocxText(xmlContent string) string {
	var out []string
	for _, para := range strings.Split(xmlContent, "</w:p>") {
		var text strings.Builder
		rest := para
		for {
			start := strings.Index(rest, "<w:t")
			if start < 0 {
				break
			}
			rest = rest[start+len("<w:t"):]
			// "<w:t" is also the prefix of <w:tab/>, <w:tbl>, <w:tc> and
			// friends; only ">" or an attribute list makes it a text run.
			if len(rest) == 0 || (rest[0] != '>' && rest[0] != ' ') {
				continue
			}
			open := strings.Index(rest, ">")
			if open < 0 {
				break
			}
			selfClosing := strings.HasSuffix(rest[:open], "/")
			rest = rest[open+1:]
			if selfClosing {
				continue
			}
			end := strings.Index(rest, "</w:t>")
			if end < 0 {
				break
			}
			text.WriteString(rest[:end])
			rest = rest[end:]
		}
		if p := strings.TrimSpace(text.String()); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
