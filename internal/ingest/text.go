package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"docqa/internal/models"
)

func (in *Ingestor) parseText(content []byte, filename, filetype string) ([]models.Chunk, error) {
	// Undecodable bytes are replaced rather than failing the file.
	text := strings.ToValidUTF8(string(content), "�")

	return in.split(text, models.Metadata{
		Filename: filename,
		Filetype: filetype,
	})
}

func (in *Ingestor) parseMarkdown(content []byte, filename string) ([]models.Chunk, error) {
	source := []byte(strings.ToValidUTF8(string(content), "�"))

	text, err := markdownToText(source)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	return in.split(text, models.Metadata{
		Filename: filename,
		Filetype: models.FiletypeMD,
	})
}

// markdownToText strips markdown syntax by walking the goldmark AST and
// keeping only the textual content, so heading markers and emphasis don't
// leak into chunk text.
func markdownToText(source []byte) (string, error) {
	root := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	var b strings.Builder
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
